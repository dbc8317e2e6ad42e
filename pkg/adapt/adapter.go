// Package adapt は、マスター台本を対象言語へ「文化的適応」させる段階です。
// 単なる翻訳ではなく、長さ契約（元の±10%）付きの再生成として扱います。
package adapt

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/shouni/go-narrate-kit/pkg/prompts"
	"github.com/shouni/go-narrate-kit/pkg/textgen"
)

// 出力長の比率（元の長さに対する%）のしきい値。
const (
	// ratioWarnLow/High を外れたら警告ログ。結果は受け入れます。
	ratioWarnLow  = 90
	ratioWarnHigh = 110
	// ratioErrLow/High を外れたらエラーログ。それでも結果は受け入れます。
	ratioErrLow  = 80
	ratioErrHigh = 120
	// ratioRetryFloor を下回る出力は品質不良とみなし、1回だけ強調リトライします。
	ratioRetryFloor = 50
)

// トークン見積もりの係数と上下限。正しさの不変条件ではなく資源サイズの目安なのだ。
const (
	tokenBudgetFactor = 0.3
	tokenBudgetBase   = 1000
	tokenBudgetMin    = 8192
	tokenBudgetMax    = 32768
)

// StyleConfig は適応プロンプトに影響するエージェント側の設定です。
type StyleConfig struct {
	// CulturalPrompt は前置き指示。空なら既定文が使われます。
	CulturalPrompt string
}

// Adapter は台本1本を対象言語へ適応させます。
type Adapter struct {
	gen textgen.Generator
}

// New は生成器を注入した Adapter を返します。
func New(gen textgen.Generator) *Adapter {
	return &Adapter{gen: gen}
}

// Adapt はマスター台本を targetLanguage へ適応した台本を返します。
//
// 元言語と対象言語が同じ場合は生成呼び出しを行わず、入力をそのまま返します。
// 出力が元の長さの半分未満だったときだけ、「要約禁止」を強調したプロンプトで
// ちょうど1回リトライし、その結果は比率を問わず採用します。利用可能性を
// 厳密な正しさより優先する設計なのだ。生成呼び出し自体の失敗はそのまま
// 呼び出し元へ伝播します。
func (a *Adapter) Adapt(ctx context.Context, masterScript, sourceLanguage, targetLanguage string, style StyleConfig) (string, error) {
	if sourceLanguage == targetLanguage {
		return masterScript, nil
	}

	originalLen := utf8.RuneCountInString(masterScript)
	budget := tokenBudget(originalLen)

	output, err := a.generate(ctx, masterScript, sourceLanguage, targetLanguage, style, budget, false)
	if err != nil {
		return "", fmt.Errorf("adapt: %s への適応に失敗しました: %w", targetLanguage, err)
	}

	ratio := lengthRatio(output, originalLen)
	if ratio < ratioRetryFloor {
		slog.Warn("適応結果が極端に短いため強調リトライします",
			"target", targetLanguage, "ratio", ratio)

		output, err = a.generate(ctx, masterScript, sourceLanguage, targetLanguage, style, budget, true)
		if err != nil {
			return "", fmt.Errorf("adapt: %s への強調リトライに失敗しました: %w", targetLanguage, err)
		}

		// リトライ後の結果は比率を問わず採用。まだ短ければ記録だけ残します。
		if retryRatio := lengthRatio(output, originalLen); retryRatio < ratioRetryFloor {
			slog.Error("強調リトライ後も適応結果が短いままです。結果をそのまま返します",
				"target", targetLanguage, "ratio", retryRatio)
		}
		return output, nil
	}

	switch {
	case ratio < ratioErrLow || ratio > ratioErrHigh:
		slog.Error("適応結果の長さが許容帯を大きく外れています",
			"target", targetLanguage, "ratio", ratio)
	case ratio < ratioWarnLow || ratio > ratioWarnHigh:
		slog.Warn("適応結果の長さが目標帯を外れています",
			"target", targetLanguage, "ratio", ratio)
	}
	return output, nil
}

func (a *Adapter) generate(ctx context.Context, script, sourceLang, targetLang string, style StyleConfig, budget int, emphatic bool) (string, error) {
	prompt, err := prompts.BuildAdaptPrompt(prompts.AdaptPromptData{
		CulturalPrompt: style.CulturalPrompt,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		Script:         script,
		Emphatic:       emphatic,
	})
	if err != nil {
		return "", err
	}

	if bg, ok := a.gen.(textgen.BudgetedGenerator); ok {
		return bg.GenerateBudgeted(ctx, prompt, budget)
	}
	return a.gen.Generate(ctx, prompt)
}

// lengthRatio は出力長を元の長さに対する%で返します。
func lengthRatio(output string, originalLen int) int {
	if originalLen == 0 {
		return 100
	}
	return utf8.RuneCountInString(output) * 100 / originalLen
}

// tokenBudget は入力長に比例した出力トークンの見積もりを返します。
func tokenBudget(inputLen int) int {
	budget := int(tokenBudgetFactor*float64(inputLen)) + tokenBudgetBase
	if budget < tokenBudgetMin {
		return tokenBudgetMin
	}
	if budget > tokenBudgetMax {
		return tokenBudgetMax
	}
	return budget
}
