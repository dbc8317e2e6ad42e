package workflow

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-narrate-kit/pkg/adapt"
	"github.com/shouni/go-narrate-kit/pkg/domain"
	"github.com/shouni/go-narrate-kit/pkg/script"
)

// RunJob はタイトル1件分のジョブを最後まで実行します。
//
// 流れ: テンプレート分割 → ブロック逐次生成（マスター台本）→ 追加言語への
// 文化的適応（言語間は並列可）→ 言語ごとのチャンク分割と音声合成 →
// 必要ならバリエーション生成と同じ後段処理。ブロック生成の失敗はジョブ全体の
// 失敗であり、部分結果は保存しません。
func (m *Manager) RunJob(ctx context.Context, jobID, title string, agent domain.AgentProfile) (domain.JobResult, error) {
	result := domain.JobResult{
		JobID:      jobID,
		Title:      title,
		Scripts:    make(map[string]string),
		AudioFiles: make(map[string]string),
	}

	// --- Phase 1: テンプレート分割 ---
	m.progress(jobID, 10, "テンプレートを分割しています")
	blocks, err := m.segmenter.Segment(agent.BlockStructure, agent.PrimaryLanguage)
	if err != nil {
		return result, fmt.Errorf("workflow: テンプレートの分割に失敗しました: %w", err)
	}
	result.Blocks = blocks
	slog.Info("テンプレートを分割しました", "job", jobID, "blocks", len(blocks))

	// --- Phase 2: マスター台本の逐次生成 ---
	m.progress(jobID, 20, "マスター台本を生成しています")
	master, err := m.buildMaster(ctx, jobID, title, agent, blocks)
	if err != nil {
		return result, err
	}
	result.MasterScript = master
	result.Scripts[agent.PrimaryLanguage] = master

	m.progress(jobID, 40, "マスター台本を保存しています")
	if err := m.writeScript(ctx, jobID, agent.PrimaryLanguage, master); err != nil {
		return result, err
	}

	// --- Phase 3: 追加言語への文化的適応 ---
	if len(agent.AdditionalLanguages) > 0 {
		m.progress(jobID, 50, "追加言語へ適応しています")
		if err := m.adaptLanguages(ctx, jobID, master, agent, result.Scripts); err != nil {
			return result, err
		}
	}

	// --- Phase 4: 言語ごとの音声合成 ---
	if agent.TTSEnabled && m.renderer != nil {
		m.progress(jobID, 60, "音声を合成しています")
		if err := m.renderLanguages(ctx, jobID, agent, result.Scripts, &result); err != nil {
			return result, err
		}
	}

	// --- Phase 5: バリエーション ---
	if agent.VariationCount > 1 {
		m.progress(jobID, 80, "バリエーションを生成しています")
		vset, err := m.runVariations(ctx, jobID, title, agent)
		if err != nil {
			return result, err
		}
		result.Variations = vset
	}

	// --- Phase 6: ビジュアルメディア ---
	if agent.VisualMediaEnabled && m.imageGen != nil && agent.VisualMedia != nil {
		m.progress(jobID, 90, "画像を生成しています")
		images, err := m.renderImages(ctx, jobID, *agent.VisualMedia)
		if err != nil {
			// 画像は付随成果物なので、失敗してもジョブ自体は完了させます。
			slog.Error("画像生成に失敗しました。ジョブは続行します", "job", jobID, "error", err)
		}
		result.ImageFiles = images
	}

	m.progress(jobID, 100, "完了しました")
	slog.Info("ジョブが完了しました", "job", jobID,
		"languages", len(result.Scripts), "duration_sec", result.TotalDurationSec)
	return result, nil
}

// buildMaster はキャッシュを確認してからマスター台本を生成します。
func (m *Manager) buildMaster(ctx context.Context, jobID, title string, agent domain.AgentProfile, blocks domain.Blocks) (string, error) {
	key := fmt.Sprintf("master|%s|%s|%s", agent.Name, agent.PrimaryLanguage, title)
	if cached, ok := m.cache.Get(key); ok {
		slog.Info("キャッシュ済みのマスター台本を再利用します", "job", jobID)
		return cached.(string), nil
	}

	premise := fmt.Sprintf("%s\n\nTítulo/Premissa: %s", agent.PremisePrompt, title)
	master, err := m.builder.Build(ctx, script.Request{
		Blocks:      blocks,
		Premise:     premise,
		StylePrompt: agent.StylePrompt,
		Language:    agent.PrimaryLanguage,
	})
	if err != nil {
		return "", fmt.Errorf("workflow: マスター台本の生成に失敗しました: %w", err)
	}

	m.cache.Set(key, master, cache.DefaultExpiration)
	return master, nil
}

// adaptLanguages は追加言語への適応を並列で実行し、scripts へ書き込みます。
// 言語間に順序の要求はなく、逐次で処理しても結果は変わらないのだ。
func (m *Manager) adaptLanguages(ctx context.Context, jobID, master string, agent domain.AgentProfile, scripts map[string]string) error {
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)

	var limiter *rate.Limiter
	if m.cfg.AdaptInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(m.cfg.AdaptInterval), 2)
	}

	for _, lang := range agent.AdditionalLanguages {
		if lang == agent.PrimaryLanguage {
			continue
		}
		eg.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(egCtx); err != nil {
					return err
				}
			}
			adapted, err := m.adapter.Adapt(egCtx, master, agent.PrimaryLanguage, lang,
				adapt.StyleConfig{CulturalPrompt: agent.CulturalPrompt})
			if err != nil {
				return err
			}
			if err := m.writeScript(egCtx, jobID, lang, adapted); err != nil {
				return err
			}
			mu.Lock()
			scripts[lang] = adapted
			mu.Unlock()
			return nil
		})
	}
	return eg.Wait()
}

// renderLanguages は言語ごとに台本を音声化し、保存先を result へ記録します。
func (m *Manager) renderLanguages(ctx context.Context, jobID string, agent domain.AgentProfile, scripts map[string]string, result *domain.JobResult) error {
	for _, lang := range agent.Languages() {
		text, ok := scripts[lang]
		if !ok {
			continue
		}
		voice, ok := domain.VoiceFor(lang, agent.TTSVoices)
		if !ok {
			slog.Warn("対応するボイスが見つからないため音声合成をスキップします",
				"job", jobID, "language", lang)
			continue
		}

		data, duration, err := m.renderer.RenderScript(ctx, text, voice)
		if err != nil {
			return fmt.Errorf("workflow: %s の音声合成に失敗しました: %w", lang, err)
		}

		path := fmt.Sprintf("%s/audio/%s_%s.mp3", m.cfg.OutputPrefix, jobID, lang)
		if err := m.writer.Write(ctx, path, bytes.NewReader(data), "audio/mpeg"); err != nil {
			return fmt.Errorf("workflow: 音声ファイルの保存に失敗しました: %w", err)
		}

		result.AudioFiles[lang] = path
		result.TotalDurationSec += duration
	}
	return nil
}

// runVariations はバリエーション一式を生成し、それぞれを適応・音声合成へ通します。
// 各バリエーションの台本は互いに独立で、文脈の共有はありません。
func (m *Manager) runVariations(ctx context.Context, jobID, title string, agent domain.AgentProfile) (*domain.VariationSet, error) {
	varScripts, err := m.varGen.Generate(ctx, title, agent.VariationCount, agent)
	if err != nil {
		return nil, fmt.Errorf("workflow: バリエーション生成に失敗しました: %w", err)
	}

	vset := domain.NewVariationSet()
	for vkey, vscript := range varScripts {
		scripts := map[string]string{agent.PrimaryLanguage: vscript}
		if len(agent.AdditionalLanguages) > 0 {
			if err := m.adaptLanguages(ctx, jobID+"_"+vkey, vscript, agent, scripts); err != nil {
				return nil, err
			}
		}
		vset.Scripts[vkey] = scripts

		if err := m.writeScript(ctx, jobID+"_"+vkey, agent.PrimaryLanguage, vscript); err != nil {
			return nil, err
		}

		if agent.TTSEnabled && m.renderer != nil {
			audioFiles := make(map[string]string)
			for lang, text := range scripts {
				voice, ok := domain.VoiceFor(lang, agent.TTSVoices)
				if !ok {
					continue
				}
				data, _, err := m.renderer.RenderScript(ctx, text, voice)
				if err != nil {
					return nil, fmt.Errorf("workflow: %s/%s の音声合成に失敗しました: %w", vkey, lang, err)
				}
				path := fmt.Sprintf("%s/audio/%s_%s_%s.mp3", m.cfg.OutputPrefix, jobID, vkey, lang)
				if err := m.writer.Write(ctx, path, bytes.NewReader(data), "audio/mpeg"); err != nil {
					return nil, err
				}
				audioFiles[lang] = path
			}
			vset.AudioFiles[vkey] = audioFiles
		}
	}
	return vset, nil
}

func (m *Manager) writeScript(ctx context.Context, jobID, lang, text string) error {
	path := fmt.Sprintf("%s/scripts/%s_%s.txt", m.cfg.OutputPrefix, jobID, lang)
	if err := m.writer.Write(ctx, path, strings.NewReader(text), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("workflow: 台本ファイルの保存に失敗しました (%s): %w", path, err)
	}
	return nil
}
