package textgen

import (
	"context"
	"errors"
	"testing"
)

func TestGeneratorFunc(t *testing.T) {
	t.Run("関数がそのまま Generator として振る舞うのだ", func(t *testing.T) {
		gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			return "eco: " + prompt, nil
		})
		out, err := gen.Generate(context.Background(), "olá")
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if out != "eco: olá" {
			t.Errorf("出力が違うのだ: %q", out)
		}
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("元のエラーが errors.Is で辿れるのだ", func(t *testing.T) {
		genErr := &GenerationError{Attempts: 3, Err: ErrEmptyResponse}
		if !errors.Is(genErr, ErrEmptyResponse) {
			t.Error("Unwrap が機能していないのだ")
		}
	})

	t.Run("メッセージに試行回数が含まれるのだ", func(t *testing.T) {
		genErr := &GenerationError{Attempts: 3, Err: ErrEmptyResponse}
		if got := genErr.Error(); got == "" {
			t.Error("メッセージが空なのだ")
		}
	})
}
