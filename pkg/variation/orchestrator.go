// Package variation は、同じタイトルから互いに独立した複数の台本
// バリエーションを生成・抽出するオーケストレーターです。
package variation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shouni/go-narrate-kit/pkg/domain"
	"github.com/shouni/go-narrate-kit/pkg/prompts"
	"github.com/shouni/go-narrate-kit/pkg/textgen"
)

// Angles はバリエーションへ割り当てる「アングル」の固定順リストです。
// この列挙自体が仕様であり、要求数がこれを超えた場合はリスト長で打ち切ります。
var Angles = []string{"emocional", "espiritual", "prático", "histórico", "científico"}

// ErrNoVariations は結合レスポンスから1つもバリエーションを抽出できなかった
// ことを示すハード失敗です。空の結果を黙って返すことはありません。
var ErrNoVariations = errors.New("variation: レスポンスからバリエーションを抽出できませんでした")

// markerRe は "[=== VARIAÇÃO N ===]" 区切りを検出します。大文字・小文字は区別しません。
var markerRe = regexp.MustCompile(`(?i)\[===\s*VARIAÇÃO\s*(\d+)\s*===\]`)

// trailerRe はレスポンス末尾に付きがちな完了マーカー（"[=== FIM ===]" など）を除去します。
var trailerRe = regexp.MustCompile(`(?is)\[===[^\]]*===\]\s*$`)

// Orchestrator はバリエーション生成の実行体です。
type Orchestrator struct {
	gen textgen.Generator
}

// New は生成器を注入した Orchestrator を返します。
func New(gen textgen.Generator) *Orchestrator {
	return &Orchestrator{gen: gen}
}

// Generate は count 個のバリエーション台本を生成し、
// "variacao_1" のようなキーから台本テキストへのマップを返します。
//
// 生成呼び出しは count 個をまとめて要求する1回だけです。count が
// Angles の長さを超えた場合はリスト長に切り詰めます。マーカーが1つも
// 見つからないレスポンスは、文字数で等分するフォールバックで救済します。
// 抽出数が count に満たない不足は受け入れてログに残し、0件だけを
// ハード失敗として返すのだ。
func (o *Orchestrator) Generate(ctx context.Context, title string, count int, agent domain.AgentProfile) (map[string]string, error) {
	if count < 1 {
		count = 1
	}
	if count > len(Angles) {
		slog.Warn("要求されたバリエーション数がアングル数を超えています。切り詰めます",
			"requested", count, "max", len(Angles))
		count = len(Angles)
	}

	prompt := prompts.BuildVariationPrompt(title, agent.StylePrompt, agent.PremisePrompt, Angles[:count])

	raw, err := o.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("variation: 結合生成呼び出しに失敗しました: %w", err)
	}

	scripts := parseVariations(raw, count)
	if len(scripts) == 0 {
		return nil, ErrNoVariations
	}
	if len(scripts) < count {
		slog.Warn("抽出できたバリエーションが要求数に届きませんでした",
			"requested", count, "extracted", len(scripts))
	}
	return scripts, nil
}

// parseVariations は結合レスポンスをマーカー位置で切り分けます。
// マーカーが存在しない場合は等分フォールバックに切り替えるのだ。
func parseVariations(raw string, count int) map[string]string {
	locs := markerRe.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return splitEvenly(raw, count)
	}

	scripts := make(map[string]string, len(locs))
	n := 0
	for i, loc := range locs {
		start := loc[1]
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(trailerRe.ReplaceAllString(raw[start:end], ""))
		if content == "" {
			continue
		}
		n++
		scripts[fmt.Sprintf("variacao_%d", n)] = content
	}
	return scripts
}

// splitEvenly はレスポンス全体を count 個のほぼ等しい長さに切り分ける
// 劣化モードの回復パスです。常に利用可能であることを優先します。
func splitEvenly(raw string, count int) map[string]string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	runes := []rune(trimmed)
	if count > len(runes) {
		count = len(runes)
	}
	size := len(runes) / count

	scripts := make(map[string]string, count)
	for i := 0; i < count; i++ {
		start := i * size
		end := start + size
		if i == count-1 {
			end = len(runes)
		}
		scripts[fmt.Sprintf("variacao_%d", i+1)] = string(runes[start:end])
	}
	return scripts
}
