package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shouni/go-narrate-kit/internal/builder"
	"github.com/shouni/go-narrate-kit/internal/config"
	"github.com/shouni/go-narrate-kit/pkg/adapt"
	"github.com/shouni/go-narrate-kit/pkg/domain"
	"github.com/shouni/go-narrate-kit/pkg/segment"
	"github.com/shouni/go-narrate-kit/pkg/textgen"
	"github.com/shouni/go-narrate-kit/pkg/variation"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/remoteio/gcs"
	"github.com/shouni/go-web-exact/v2/extract"
)

// ExecuteGenerate は、エージェント定義とタイトルからジョブ一式を実行するのだ。
// 台本生成 → 多言語適応 → 音声合成 → （任意で）画像生成まで一気通貫で走るのだ！
func ExecuteGenerate(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	agent, err := loadAgentProfile(ctx, appCtx, cfg.Options.AgentFile)
	if err != nil {
		return err
	}

	// --premise-url が指定されたときは、Webページの本文を前提テキストとして合流させるのだ
	if cfg.Options.PremiseURL != "" {
		premise, err := fetchPremise(ctx, appCtx, cfg.Options.PremiseURL)
		if err != nil {
			return err
		}
		agent.PremisePrompt = strings.TrimSpace(agent.PremisePrompt + "\n\n" + premise)
	}

	if cfg.Options.VariationCount > 0 {
		agent.VariationCount = cfg.Options.VariationCount
	}
	if cfg.Options.NoAudio {
		agent.TTSEnabled = false
	}

	mgr, err := builder.BuildManager(ctx, appCtx, agent.TTSEnabled, agent.VisualMediaEnabled)
	if err != nil {
		return fmt.Errorf("Managerの構築に失敗したのだ: %w", err)
	}

	jobID := cfg.Options.JobID
	if jobID == "" {
		jobID = fmt.Sprintf("job-%d", time.Now().Unix())
	}

	result, err := mgr.RunJob(ctx, jobID, cfg.Options.Title, agent)
	if err != nil {
		return err
	}

	slog.Info("ジョブの全工程が完了したのだ！",
		"job", result.JobID,
		"blocks", len(result.Blocks),
		"languages", len(result.Scripts),
		"audio_files", len(result.AudioFiles),
		"duration_sec", result.TotalDurationSec)
	return nil
}

// ExecuteSegment は、テンプレートをブロックへ分割し、結果を JSON で標準出力へ書くのだ。
// 生成呼び出しは一切行わない、ドライラン用のコマンドなのだ。
func ExecuteSegment(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	var text, lang string
	if cfg.Options.AgentFile != "" && cfg.Options.ScriptFile == "" {
		agent, err := loadAgentProfile(ctx, appCtx, cfg.Options.AgentFile)
		if err != nil {
			return err
		}
		text, lang = agent.BlockStructure, agent.PrimaryLanguage
	} else {
		text, err = readSource(ctx, appCtx, cfg.Options.ScriptFile)
		if err != nil {
			return err
		}
		lang = cfg.Options.SourceLanguage
	}

	blocks, err := segment.New().Segment(text, lang)
	if err != nil {
		return fmt.Errorf("分割に失敗したのだ: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(blocks)
}

// ExecuteAdapt は、既存の台本を別言語へ文化的に適応させるのだ。
func ExecuteAdapt(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Options.TargetLanguage == "" {
		return fmt.Errorf("適応先の言語（--target-lang）を指定してほしいのだ")
	}

	script, err := readSource(ctx, appCtx, cfg.Options.ScriptFile)
	if err != nil {
		return err
	}

	var cultural string
	if cfg.Options.AgentFile != "" {
		agent, err := loadAgentProfile(ctx, appCtx, cfg.Options.AgentFile)
		if err != nil {
			return err
		}
		cultural = agent.CulturalPrompt
	}

	gen := newGenerator(appCtx)

	adapted, err := adapt.New(gen).Adapt(ctx, script,
		cfg.Options.SourceLanguage, cfg.Options.TargetLanguage,
		adapt.StyleConfig{CulturalPrompt: cultural})
	if err != nil {
		return fmt.Errorf("適応に失敗したのだ: %w", err)
	}

	kc := cfg.KitConfig()
	jobID := cfg.Options.JobID
	if jobID == "" {
		jobID = fmt.Sprintf("adapt-%d", time.Now().Unix())
	}
	path := fmt.Sprintf("%s/scripts/%s_%s.txt", kc.OutputPrefix, jobID, cfg.Options.TargetLanguage)
	if err := appCtx.Writer.Write(ctx, path, strings.NewReader(adapted), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("適応結果の保存に失敗したのだ: %w", err)
	}

	slog.Info("適応が完了したのだ！", "path", path, "target", cfg.Options.TargetLanguage)
	return nil
}

// ExecuteVariations は、同じタイトルから切り口の異なる台本を複数生成して保存するのだ。
func ExecuteVariations(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	agent, err := loadAgentProfile(ctx, appCtx, cfg.Options.AgentFile)
	if err != nil {
		return err
	}

	count := cfg.Options.VariationCount
	if count <= 0 {
		count = agent.VariationCount
	}

	gen := newGenerator(appCtx)

	scripts, err := variation.New(gen).Generate(ctx, cfg.Options.Title, count, agent)
	if err != nil {
		return fmt.Errorf("バリエーション生成に失敗したのだ: %w", err)
	}

	kc := cfg.KitConfig()
	jobID := cfg.Options.JobID
	if jobID == "" {
		jobID = fmt.Sprintf("var-%d", time.Now().Unix())
	}
	for key, script := range scripts {
		path := fmt.Sprintf("%s/scripts/%s_%s_%s.txt", kc.OutputPrefix, jobID, key, agent.PrimaryLanguage)
		if err := appCtx.Writer.Write(ctx, path, strings.NewReader(script), "text/plain; charset=utf-8"); err != nil {
			return fmt.Errorf("バリエーションの保存に失敗したのだ (%s): %w", key, err)
		}
		slog.Info("バリエーションを保存したのだ", "key", key, "path", path)
	}
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}

func newGenerator(appCtx *builder.AppContext) textgen.Generator {
	return textgen.NewGeminiGenerator(appCtx.AIClient(), appCtx.Config.KitConfig().GeminiModel)
}

// loadAgentProfile はエージェント定義（JSON）を読み込んでパースするのだ。
func loadAgentProfile(ctx context.Context, appCtx *builder.AppContext, path string) (domain.AgentProfile, error) {
	if path == "" {
		return domain.AgentProfile{}, fmt.Errorf("エージェント定義（--agent-file）を指定してほしいのだ")
	}
	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return domain.AgentProfile{}, fmt.Errorf("エージェント定義 '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.AgentProfile{}, err
	}
	agent, err := domain.ParseAgentProfile(data)
	if err != nil {
		return domain.AgentProfile{}, fmt.Errorf("エージェント定義 '%s' の解析に失敗しました: %w", path, err)
	}
	return agent, nil
}

// readSource は '-' を標準入力、それ以外をローカル/GCSパスとして読むのだ。
func readSource(ctx context.Context, appCtx *builder.AppContext, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("入力（--script-file）を指定してほしいのだ")
	}
	if path == "-" {
		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, os.Stdin); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return "", fmt.Errorf("入力 '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, rc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fetchPremise は Webページの本文を抽出して前提テキストとして返すのだ。
func fetchPremise(ctx context.Context, appCtx *builder.AppContext, url string) (string, error) {
	extractor, err := extract.NewExtractor(appCtx.HTTPClient())
	if err != nil {
		return "", fmt.Errorf("エクストラクターの初期化に失敗したのだ: %w", err)
	}
	text, _, err := extractor.FetchAndExtractText(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from URL: %w", err)
	}
	return text, nil
}
