// Package script は、ブロック列を順番に消化してマスター台本を組み上げる
// シーケンシャル・ビルダーです。各ブロックのプロンプトはそれまでの
// 生成結果に依存するため、ブロック間の並列化は行いません。
package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-narrate-kit/pkg/domain"
	"github.com/shouni/go-narrate-kit/pkg/prompts"
	"github.com/shouni/go-narrate-kit/pkg/textgen"
)

// ContextWindow は次ブロックのプロンプトへ引き継ぐ、生成済み台本末尾の文字数です。
const ContextWindow = 2000

// Request は台本ビルド1回分の入力です。
type Request struct {
	Blocks      domain.Blocks
	Premise     string
	StylePrompt string
	Language    string
}

// Builder はブロック駆動の台本ビルダーです。
type Builder struct {
	gen textgen.Generator
}

// NewBuilder は生成器を注入した Builder を返します。
func NewBuilder(gen textgen.Generator) *Builder {
	return &Builder{gen: gen}
}

// Build はブロックを分割順どおりに1つずつ生成し、結合した台本を返します。
//
// 各ブロックのプロンプトには、直前までの累積台本の末尾 ContextWindow 文字
//（最初のブロックは開始マーカー）が文脈として埋め込まれます。ブロックの
// 出力は検証やトリムをせずそのまま "\n\n" 区切りで積み上げるのだ。
// 台本全体の長さ検証は言語ごとの適応段階（adapt パッケージ）の責務です。
// いずれかのブロックで生成が失敗した場合、部分結果は返さずビルド全体を
// 中断します。
func (b *Builder) Build(ctx context.Context, req Request) (string, error) {
	if len(req.Blocks) == 0 {
		return "", fmt.Errorf("script: ブロック列が空です")
	}

	var accumulated strings.Builder

	for _, block := range req.Blocks {
		prompt := prompts.BuildBlockPrompt(block, prompts.BlockPromptData{
			StylePrompt: req.StylePrompt,
			Language:    req.Language,
			Premise:     req.Premise,
			Context:     tailRunes(accumulated.String(), ContextWindow),
		})

		slog.Info("ブロックを生成します",
			"block", block.Number, "total", len(req.Blocks),
			"demarcation", block.Demarcation, "title", block.Title)

		text, err := b.gen.Generate(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("script: ブロック %d の生成に失敗しました: %w", block.Number, err)
		}

		accumulated.WriteString(text)
		accumulated.WriteString("\n\n")
	}

	return strings.TrimSpace(accumulated.String()), nil
}

// tailRunes は文字数ベースで末尾 n 文字を切り出します。
func tailRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
