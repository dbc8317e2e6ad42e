package prompts

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// DefaultCulturalPrompt はエージェント設定に前置き指示がないときの既定文です。
const DefaultCulturalPrompt = "Adapte culturalmente o roteiro a seguir, preservando a essência mas ajustando referências culturais, expressões e contexto para o público local."

// 適応プロンプトの骨格。メタ指示は出力に混入させないことを明示するのだ。
const adaptTemplateText = `{{.CulturalPrompt}}

INSTRUÇÕES (estas instruções NÃO devem aparecer na saída):
- Idioma de origem: {{.SourceLanguage}}
- Idioma alvo: {{.TargetLanguage}}
- O texto adaptado deve ter entre {{.MinChars}} e {{.MaxChars}} caracteres (±10% do original, que tem {{.OriginalChars}} caracteres).
- Mantenha a ordem narrativa e a estrutura de parágrafos do original.
- Responda SOMENTE com o roteiro adaptado, sem comentários ou cabeçalhos.
{{if .Emphatic}}- ATENÇÃO: NÃO RESUMA o roteiro. A adaptação anterior ficou curta demais. Traduza e adapte o texto COMPLETO, parágrafo por parágrafo, mantendo o tamanho original.
{{end}}
ROTEIRO ORIGINAL:
{{.Script}}`

var adaptTemplate = template.Must(template.New("adapt").Parse(adaptTemplateText))

// AdaptPromptData は文化的適応プロンプトの素材です。
type AdaptPromptData struct {
	CulturalPrompt string
	SourceLanguage string
	TargetLanguage string
	Script         string
	// Emphatic は品質リトライ時の「要約禁止」強調モードです。
	Emphatic bool
}

// BuildAdaptPrompt は文化的適応の単発プロンプトを構築します。
// 長さ契約（元の±10%）は数値としてプロンプトに埋め込まれます。
func BuildAdaptPrompt(data AdaptPromptData) (string, error) {
	if data.CulturalPrompt == "" {
		data.CulturalPrompt = DefaultCulturalPrompt
	}

	length := utf8.RuneCountInString(data.Script)
	payload := struct {
		AdaptPromptData
		OriginalChars int
		MinChars      int
		MaxChars      int
	}{
		AdaptPromptData: data,
		OriginalChars:   length,
		MinChars:        length * 90 / 100,
		MaxChars:        length * 110 / 100,
	}

	var sb strings.Builder
	if err := adaptTemplate.Execute(&sb, payload); err != nil {
		return "", fmt.Errorf("適応プロンプトの構築に失敗しました: %w", err)
	}
	return sb.String(), nil
}
