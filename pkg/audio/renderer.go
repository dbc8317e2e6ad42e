package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-narrate-kit/pkg/chunk"
	"github.com/shouni/go-narrate-kit/pkg/domain"
)

// durationCharsPerSec は概算再生時間の係数です（文字数 ÷ 15 ≒ 秒）。
const durationCharsPerSec = 15

// Renderer は台本1本をチャンク分割し、各チャンクを合成して連結します。
type Renderer struct {
	synth    SpeechSynthesizer
	maxChars int
	interval time.Duration
}

// NewRenderer は Renderer を返します。maxChars が 0 以下ならチャンカーの既定値、
// interval が正なら合成呼び出しにレートリミットがかかります。
func NewRenderer(synth SpeechSynthesizer, maxChars int, interval time.Duration) *Renderer {
	return &Renderer{synth: synth, maxChars: maxChars, interval: interval}
}

// RenderScript は台本全体を1本のMP3バイト列へ合成します。
//
// チャンクごとの合成は並列で走りますが、結果はインデックス固定のスライスへ
// 書き込み、チャンカーの出力順そのままに連結します。音声の順序保証は
// この構造で担保されるのだ。戻り値の int は概算の再生秒数です。
func (r *Renderer) RenderScript(ctx context.Context, scriptText string, voice domain.VoiceConfig) ([]byte, int, error) {
	chunks := chunk.Split(scriptText, r.maxChars)
	if len(chunks) == 0 {
		return nil, 0, fmt.Errorf("audio: 合成対象のテキストが空です")
	}

	slog.Info("音声合成を開始します",
		"chunks", len(chunks), "voice", voice.VoiceID, "language", voice.LanguageCode)

	segments := make([][]byte, len(chunks))
	eg, egCtx := errgroup.WithContext(ctx)

	var limiter *rate.Limiter
	if r.interval > 0 {
		limiter = rate.NewLimiter(rate.Every(r.interval), 2)
	}

	for i, c := range chunks {
		eg.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(egCtx); err != nil {
					return err
				}
			}
			data, err := r.synth.Synthesize(egCtx, c, voice)
			if err != nil {
				return fmt.Errorf("チャンク %d/%d の合成に失敗しました: %w", i+1, len(chunks), err)
			}
			segments[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}

	var out bytes.Buffer
	for _, seg := range segments {
		out.Write(seg)
	}

	duration := utf8.RuneCountInString(scriptText) / durationCharsPerSec
	return out.Bytes(), duration, nil
}
