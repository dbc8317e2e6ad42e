package segment

import (
	"regexp"
	"strings"
)

const (
	// titleWordLimit はタイトルに採用する先頭の語数です。
	titleWordLimit = 15
	// titleRuneLimit はタイトルの最終的な文字数上限です。
	titleRuneLimit = 120
	// titlePlaceholder は空コンテンツに対する固定タイトルです。
	titlePlaceholder = "Sem título"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractTitle はブロック本文から短い見出しを導出します。
// 空白の連なりを単一スペースへ畳み、先頭15語をつないで、
// 語が余れば "..." を付けます。語数に関係なく120文字で強制的に切り詰めるのだ。
// 非空の入力に対して空のタイトルを返すことはありません。
func ExtractTitle(content string) string {
	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(content, " "))
	if collapsed == "" {
		return titlePlaceholder
	}

	words := strings.Split(collapsed, " ")
	title := collapsed
	if len(words) > titleWordLimit {
		title = strings.Join(words[:titleWordLimit], " ") + "..."
	}

	if runes := []rune(title); len(runes) > titleRuneLimit {
		title = string(runes[:titleRuneLimit-3]) + "..."
	}
	return title
}
