// Package chunk は、音声合成APIの入力上限に合わせてテキストを
// 文を壊さずに分割するためのパッケージです。
package chunk

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars は音声合成1回分のチャンクの既定上限（文字数）です。
const DefaultMaxChars = 4000

var whitespaceRe = regexp.MustCompile(`\s+`)

// Split はテキストを maxChars 以下のチャンク列に分割します。
// maxChars が 0 以下なら DefaultMaxChars を使います。
//
// 改行を含むすべての空白は単一スペースへ畳まれます。ナレーション音声は
// 構成上の整形で区切らず連続して読み上げるべきだからです。文は ". " 境界で
// 切り出し、1文単独で上限を超える場合はその文を丸ごと1チャンクにします。
// 文の途中で切るより意味の完全性を優先するのだ。
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if collapsed == "" {
		return nil
	}

	sentences := splitSentences(collapsed)

	var chunks []string
	current := ""
	currentLen := 0

	for _, sentence := range sentences {
		sLen := utf8.RuneCountInString(sentence)
		if current != "" && currentLen+sLen+1 <= maxChars {
			current += " " + sentence
			currentLen += sLen + 1
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current = sentence
		currentLen = sLen
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	// 文ベースの分割が何も生まなかった病的な入力は固定幅で切り出します。
	if len(chunks) == 0 {
		return sliceFixedWidth(collapsed, maxChars)
	}
	return chunks
}

// splitSentences は ". " 境界で文を切り出し、境界で失われたピリオドを戻します。
// 最後の断片は元の末尾（"."とは限らない）をそのまま保ちます。
func splitSentences(text string) []string {
	parts := strings.Split(text, ". ")
	var sentences []string
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i < len(parts)-1 {
			p += "."
		}
		sentences = append(sentences, p)
	}
	return sentences
}

// sliceFixedWidth は文字数ベースの固定幅でテキストを切り出します。
func sliceFixedWidth(text string, maxChars int) []string {
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
