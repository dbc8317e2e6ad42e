package prompts

import (
	"fmt"
	"strings"
)

// VariationMarker は結合レスポンス内の区切りマーカーの書式です。
// パーサー側の正規表現（variation パッケージ）と対になっています。
const VariationMarker = "[=== VARIAÇÃO %d ===]"

// BuildVariationPrompt は、N個の独立したバリエーションを1回の呼び出しで
// 生成させる結合プロンプトを構築します。各バリエーションには固有の
// 「アングル」（感情的・霊的など）を割り当てるのだ。
func BuildVariationPrompt(title, stylePrompt, premise string, angles []string) string {
	var sb strings.Builder

	sb.WriteString(stylePrompt)
	sb.WriteString("\n\n")
	sb.WriteString("PREMISSA:\n")
	sb.WriteString(premise)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("TÍTULO: %s\n\n", title))

	sb.WriteString(fmt.Sprintf(
		"Gere %d roteiros COMPLETOS e GENUINAMENTE DIFERENTES para o título acima.\n", len(angles)))
	sb.WriteString("Cada variação deve abordar o tema por um ângulo distinto:\n")
	for i, angle := range angles {
		sb.WriteString(fmt.Sprintf("  %d. ângulo %s\n", i+1, angle))
	}
	sb.WriteString("\nSepare cada variação EXATAMENTE com o marcador:\n")
	sb.WriteString(fmt.Sprintf(VariationMarker, 1))
	sb.WriteString("\n(e assim por diante, incrementando o número)\n")

	return sb.String()
}
