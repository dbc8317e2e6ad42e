package segment

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractTitle(t *testing.T) {
	t.Run("空のコンテンツはプレースホルダーになるのだ", func(t *testing.T) {
		if got := ExtractTitle("   \n\t  "); got != "Sem título" {
			t.Errorf("期待: %q, 実際: %q", "Sem título", got)
		}
	})

	t.Run("15語以下はそのまま採用されるのだ", func(t *testing.T) {
		if got := ExtractTitle("Uma breve abertura"); got != "Uma breve abertura" {
			t.Errorf("タイトルが変形されたのだ: %q", got)
		}
	})

	t.Run("改行やタブは単一スペースへ畳まれるのだ", func(t *testing.T) {
		if got := ExtractTitle("Uma\n\tbreve   abertura"); got != "Uma breve abertura" {
			t.Errorf("空白の正規化が効いていないのだ: %q", got)
		}
	})

	t.Run("15語を超えたら先頭15語と省略記号になるのだ", func(t *testing.T) {
		words := make([]string, 20)
		for i := range words {
			words[i] = "p"
		}
		got := ExtractTitle(strings.Join(words, " "))
		want := strings.TrimSuffix(strings.Repeat("p ", 15), " ") + "..."
		if got != want {
			t.Errorf("期待: %q, 実際: %q", want, got)
		}
	})

	t.Run("語数に関係なく120文字で切り詰めるのだ", func(t *testing.T) {
		got := ExtractTitle(strings.Repeat("ã", 300))
		if utf8.RuneCountInString(got) != 120 {
			t.Errorf("タイトル長が違うのだ: %d文字", utf8.RuneCountInString(got))
		}
		if !strings.HasSuffix(got, "...") {
			t.Error("省略記号が付いていないのだ")
		}
	})
}
