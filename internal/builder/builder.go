package builder

import (
	"context"
	"fmt"
	"log/slog"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	imagekit "github.com/shouni/gemini-image-kit/generator"
	"github.com/shouni/go-gemini-client/gemini"

	kitcfg "github.com/shouni/go-narrate-kit/pkg/config"
	"github.com/shouni/go-narrate-kit/pkg/audio"
	"github.com/shouni/go-narrate-kit/pkg/textgen"
	"github.com/shouni/go-narrate-kit/pkg/workflow"
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.7)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageGenerator は、画像キャッシュを含む ImageGenerator を初期化します。
func InitializeImageGenerator(appCtx *AppContext, kc kitcfg.Config) (imagekit.ImageGenerator, error) {
	imgCache := cache.New(kc.CacheTTL, kc.CacheCleanup)
	core, err := imagekit.NewGeminiImageCore(
		appCtx.aiClient,
		appCtx.Reader,
		appCtx.httpClient,
		imgCache,
		kc.CacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗したのだ: %w", err)
	}
	return imagekit.NewGeminiGenerator(kc.ImageModel, core)
}

// BuildManager は、ワークフロー全体を駆動する workflow.Manager を組み立てます。
//
// 音声合成クライアントと画像生成器は任意の依存で、初期化に失敗した場合は
// 警告を出してその段階を無効化したまま続行します。
func BuildManager(ctx context.Context, appCtx *AppContext, withAudio, withImages bool) (*workflow.Manager, error) {
	kc := appCtx.Config.KitConfig()

	gen := textgen.NewGeminiGenerator(appCtx.aiClient, kc.GeminiModel)

	var synth audio.SpeechSynthesizer
	if withAudio {
		ttsClient, err := texttospeech.NewClient(ctx)
		if err != nil {
			slog.WarnContext(ctx, "TTSクライアントの初期化に失敗しました。音声合成をスキップします", "error", err)
		} else {
			synth = audio.NewGoogleSynthesizer(ttsClient)
		}
	}

	var imgGen imagekit.ImageGenerator
	if withImages {
		g, err := InitializeImageGenerator(appCtx, kc)
		if err != nil {
			slog.WarnContext(ctx, "画像生成器の初期化に失敗しました。画像生成をスキップします", "error", err)
		} else {
			imgGen = g
		}
	}

	return workflow.New(workflow.ManagerArgs{
		Config:         kc,
		Generator:      gen,
		Writer:         appCtx.Writer,
		Synthesizer:    synth,
		ImageGenerator: imgGen,
		Progress: func(jobID string, percent int, message string) {
			slog.Info("進捗", "job", jobID, "percent", percent, "message", message)
		},
	})
}
