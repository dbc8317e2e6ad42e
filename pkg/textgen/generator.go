// Package textgen は、外部のテキスト生成サービスへの境界を定義します。
// コア側のロジックはすべて Generator インターフェースだけに依存し、
// リトライ方針もこの境界の内側で完結させるのだ。
package textgen

import (
	"context"
	"errors"
	"fmt"
)

// Generator は「プロンプトを渡すとテキストが返る」最小の契約です。
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BudgetedGenerator は出力トークン数の上限ヒントを受け取れる生成器です。
// 文化的適応のように出力長の見積もりが立つ呼び出しで使われます。
// 対応しない実装にはヒントは渡らず、通常の Generate が使われます。
type BudgetedGenerator interface {
	Generator
	GenerateBudgeted(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

// GeneratorFunc は関数を Generator として使うためのアダプターです。
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate は f(ctx, prompt) を呼び出します。
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ErrEmptyResponse は生成呼び出しが空のテキストを返したことを示します。
// 空応答はリトライ対象として扱われます。
var ErrEmptyResponse = errors.New("textgen: 生成結果が空でした")

// GenerationError は、リトライ回数を使い切っても生成に失敗したことを表します。
// これが返った時点で進行中の台本ビルド全体が中断されます。
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("textgen: %d回の試行がすべて失敗しました: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
