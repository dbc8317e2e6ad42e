// Package prompts は、台本生成・文化的適応・バリエーション生成の
// 各段階でAIへ渡すプロンプトを組み立てます。
package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

const (
	// ContextStartMarker は最初のブロックで「直前の文脈」の代わりに埋め込む印です。
	ContextStartMarker = "(início do roteiro)"

	// guideWindow は auto ブロックの本文からテーマ指針として埋め込む先頭文字数です。
	guideWindow = 500
)

// BlockPromptData はブロック1つ分の生成プロンプトに流し込む素材です。
type BlockPromptData struct {
	StylePrompt string
	Language    string
	Premise     string
	// Context は直前までに生成済みの台本の末尾（呼び出し側で切り出し済み）です。
	Context string
}

// BuildBlockPrompt はブロックの区切り方式に応じた生成プロンプトを構築します。
// manual ブロックはメタとルールをそのまま埋め込み、auto ブロックは本文の
// 冒頭をテーマ指針として渡します。いずれも直前の文脈を引き継ぐのだ。
func BuildBlockPrompt(block domain.Block, data BlockPromptData) string {
	var sb strings.Builder

	sb.WriteString(data.StylePrompt)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("IDIOMA: escreva exclusivamente em %s.\n\n", data.Language))
	sb.WriteString("PREMISSA:\n")
	sb.WriteString(data.Premise)
	sb.WriteString("\n\n")

	sb.WriteString("CONTEXTO (trecho final do roteiro já escrito):\n")
	if data.Context == "" {
		sb.WriteString(ContextStartMarker)
	} else {
		sb.WriteString(data.Context)
	}
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("### BLOCO %d: %s ###\n", block.Number, block.Title))

	if block.IsManual() {
		sb.WriteString("META DO BLOCO:\n")
		sb.WriteString(block.Meta)
		sb.WriteString("\n\nREGRAS DO BLOCO:\n")
		sb.WriteString(block.Rules)
		sb.WriteString("\n\n")
		sb.WriteString("Escreva a continuação do roteiro cumprindo a meta e as regras acima. ")
		sb.WriteString("Seja expansivo: desenvolva o bloco até atingir o tamanho indicado nas regras.\n")
		return sb.String()
	}

	sb.WriteString("GUIA TEMÁTICO (não copie literalmente, use como direção):\n")
	sb.WriteString(headRunes(block.Content, guideWindow))
	sb.WriteString("\n\n")
	sb.WriteString("Escreva a continuação do roteiro seguindo o guia temático acima, ")
	sb.WriteString("com aproximadamente 1200 a 1600 caracteres.\n")
	return sb.String()
}

// headRunes は文字数ベースで先頭 n 文字を切り出します。
func headRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
