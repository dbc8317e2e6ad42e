package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit(t *testing.T) {
	t.Run("空の入力は空のチャンク列になるのだ", func(t *testing.T) {
		if got := Split("  \n\t ", 100); got != nil {
			t.Errorf("空入力からチャンクが生まれたのだ: %v", got)
		}
	})

	t.Run("上限に収まるテキストは1チャンクになるのだ", func(t *testing.T) {
		chunks := Split("Primeira frase. Segunda frase.", 100)
		if len(chunks) != 1 {
			t.Fatalf("チャンク数が違うのだ: %d", len(chunks))
		}
		if chunks[0] != "Primeira frase. Segunda frase." {
			t.Errorf("内容が変形されたのだ: %q", chunks[0])
		}
	})

	t.Run("全チャンクが上限以下で、結合すると元に戻るのだ", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 40; i++ {
			sb.WriteString("Esta é uma frase de tamanho razoável para o teste. ")
		}
		text := sb.String()
		collapsed := strings.TrimSpace(text)

		chunks := Split(text, 200)
		if len(chunks) < 2 {
			t.Fatalf("複数チャンクに分かれるはずなのだ: %d", len(chunks))
		}
		for i, c := range chunks {
			if utf8.RuneCountInString(c) > 200 {
				t.Errorf("チャンク%dが上限を超えているのだ: %d文字", i+1, utf8.RuneCountInString(c))
			}
		}
		if rejoined := strings.Join(chunks, " "); rejoined != collapsed {
			t.Error("チャンクを結合しても元のテキストに戻らないのだ")
		}
	})

	t.Run("改行は単一スペースへ畳まれるのだ", func(t *testing.T) {
		chunks := Split("Linha um.\nLinha dois.\n\nLinha três.", 100)
		if len(chunks) != 1 || strings.Contains(chunks[0], "\n") {
			t.Errorf("改行が残っているのだ: %v", chunks)
		}
	})

	t.Run("1文だけで上限を超える場合は丸ごと1チャンクにするのだ", func(t *testing.T) {
		long := strings.Repeat("palavra ", 40) // ピリオドなしの1文
		chunks := Split(long, 50)
		if len(chunks) != 1 {
			t.Fatalf("文の途中で切られたのだ: %d", len(chunks))
		}
		if utf8.RuneCountInString(chunks[0]) <= 50 {
			t.Error("上限超過の文がそのまま保持されていないのだ")
		}
	})

	t.Run("maxCharsが0以下なら既定値が使われるのだ", func(t *testing.T) {
		chunks := Split("Frase curta.", 0)
		if len(chunks) != 1 {
			t.Fatalf("チャンク数が違うのだ: %d", len(chunks))
		}
	})
}
