package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

func TestBuildBlockPrompt(t *testing.T) {
	t.Run("manual ブロックはメタとルールがそのまま埋め込まれるのだ", func(t *testing.T) {
		block := domain.Block{
			Number:      2,
			Title:       "Desenvolvimento",
			Demarcation: domain.DemarcationManual,
			Meta:        "aprofundar o tema",
			Rules:       "cerca de 1500 caracteres",
		}
		prompt := BuildBlockPrompt(block, BlockPromptData{
			Language: "pt-BR",
			Premise:  "premissa",
			Context:  "trecho anterior",
		})

		if !strings.Contains(prompt, "META DO BLOCO:\naprofundar o tema") {
			t.Error("メタが埋め込まれていないのだ")
		}
		if !strings.Contains(prompt, "REGRAS DO BLOCO:\ncerca de 1500 caracteres") {
			t.Error("ルールが埋め込まれていないのだ")
		}
		if !strings.Contains(prompt, "### BLOCO 2: Desenvolvimento ###") {
			t.Error("ブロック見出しが違うのだ")
		}
	})

	t.Run("auto ブロックは本文冒頭がテーマ指針になるのだ", func(t *testing.T) {
		longContent := strings.Repeat("a", 800)
		block := domain.Block{Number: 1, Title: "Abertura", Content: longContent, Demarcation: domain.DemarcationAuto}
		prompt := BuildBlockPrompt(block, BlockPromptData{Language: "pt-BR"})

		if !strings.Contains(prompt, "GUIA TEMÁTICO") {
			t.Error("テーマ指針の見出しがないのだ")
		}
		if strings.Contains(prompt, longContent) {
			t.Error("本文全体が埋め込まれているのだ。冒頭500文字だけのはずなのだ")
		}
		if !strings.Contains(prompt, strings.Repeat("a", 500)) {
			t.Error("冒頭500文字が埋め込まれていないのだ")
		}
	})

	t.Run("文脈が空なら開始マーカーが入るのだ", func(t *testing.T) {
		block := domain.Block{Number: 1, Demarcation: domain.DemarcationAuto}
		prompt := BuildBlockPrompt(block, BlockPromptData{})
		if !strings.Contains(prompt, ContextStartMarker) {
			t.Error("開始マーカーがないのだ")
		}
	})
}

func TestBuildAdaptPrompt(t *testing.T) {
	script := strings.Repeat("x", 1000)

	t.Run("長さ契約が数値としてプロンプトに入るのだ", func(t *testing.T) {
		prompt, err := BuildAdaptPrompt(AdaptPromptData{
			SourceLanguage: "pt-BR",
			TargetLanguage: "en-US",
			Script:         script,
		})
		if err != nil {
			t.Fatalf("構築に失敗したのだ: %v", err)
		}
		if !strings.Contains(prompt, "entre 900 e 1100 caracteres") {
			t.Error("±10%の長さ契約が埋め込まれていないのだ")
		}
		if !strings.Contains(prompt, DefaultCulturalPrompt) {
			t.Error("既定の前置き指示が使われていないのだ")
		}
		if strings.Contains(prompt, "NÃO RESUMA") {
			t.Error("通常モードに強調指示が混ざっているのだ")
		}
	})

	t.Run("強調モードでは要約禁止の指示が追加されるのだ", func(t *testing.T) {
		prompt, err := BuildAdaptPrompt(AdaptPromptData{
			SourceLanguage: "pt-BR",
			TargetLanguage: "en-US",
			Script:         script,
			Emphatic:       true,
		})
		if err != nil {
			t.Fatalf("構築に失敗したのだ: %v", err)
		}
		if !strings.Contains(prompt, "NÃO RESUMA") {
			t.Error("強調指示がないのだ")
		}
	})
}

func TestBuildVariationPrompt(t *testing.T) {
	t.Run("アングル一覧と区切りマーカーの書式が入るのだ", func(t *testing.T) {
		angles := []string{"emocional", "prático"}
		prompt := BuildVariationPrompt("título", "estilo", "premissa", angles)

		if !strings.Contains(prompt, "Gere 2 roteiros") {
			t.Error("要求数が違うのだ")
		}
		if !strings.Contains(prompt, "ângulo emocional") || !strings.Contains(prompt, "ângulo prático") {
			t.Error("アングル一覧が埋め込まれていないのだ")
		}
		if !strings.Contains(prompt, fmt.Sprintf(VariationMarker, 1)) {
			t.Error("区切りマーカーの書式が入っていないのだ")
		}
	})
}
