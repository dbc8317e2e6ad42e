package textgen

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shouni/go-gemini-client/gemini"
)

// リトライ方針の既定値。外部生成呼び出しは3回まで、一定間隔で試します。
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

// GeminiGenerator は go-gemini-client を Generator 契約に適合させます。
// モデル名とリトライ方針はここで固定され、呼び出し側には漏れないのだ。
type GeminiGenerator struct {
	client      gemini.GenerativeModel
	model       string
	maxAttempts int
	retryDelay  time.Duration
}

// NewGeminiGenerator は既定のリトライ方針を持つ GeminiGenerator を返します。
func NewGeminiGenerator(client gemini.GenerativeModel, model string) *GeminiGenerator {
	return &GeminiGenerator{
		client:      client,
		model:       model,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
}

// Generate はプロンプトをモデルに渡し、生成テキストを返します。
// 失敗と空応答は一定間隔でリトライし、使い切ったら GenerationError を返します。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var out string
	attempt := 0

	operation := func() error {
		attempt++
		resp, err := g.client.GenerateContent(ctx, prompt, g.model)
		if err != nil {
			slog.Warn("生成呼び出しに失敗しました。リトライします",
				"attempt", attempt, "max", g.maxAttempts, "error", err)
			return err
		}
		if strings.TrimSpace(resp.Text) == "" {
			slog.Warn("生成結果が空でした。リトライします", "attempt", attempt)
			return ErrEmptyResponse
		}
		out = resp.Text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(g.retryDelay), uint64(g.maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", &GenerationError{Attempts: attempt, Err: err}
	}
	return out, nil
}
