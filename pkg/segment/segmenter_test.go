package segment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

// makeParagraph は転換語を含まない、およそ n 文字の段落を作るのだ。
func makeParagraph(n int) string {
	const sentence = "A vida segue o seu curso tranquilo pela manhã. "
	var sb strings.Builder
	for utf8.RuneCountInString(sb.String()) < n {
		sb.WriteString(sentence)
	}
	return strings.TrimSpace(sb.String())
}

func TestSegment_ShortText(t *testing.T) {
	s := New()

	t.Run("1000文字未満の入力は分割せず単一ブロックになるのだ", func(t *testing.T) {
		text := "Primeiro parágrafo.\n\nSegundo parágrafo.\n\nTerceiro parágrafo."
		blocks, err := s.Segment(text, "pt-BR")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		if len(blocks) != 1 {
			t.Fatalf("ブロック数が違うのだ。期待: 1, 実際: %d", len(blocks))
		}
		b := blocks[0]
		if b.Number != 1 || b.Demarcation != domain.DemarcationAuto {
			t.Errorf("ブロックの属性が違うのだ: %+v", b)
		}
		if b.Content != text {
			t.Error("短文ショートカットは本文を無加工で保持するはずなのだ")
		}
		if b.EndOffset != utf8.RuneCountInString(text) {
			t.Errorf("終了オフセットが文字数と一致しないのだ: %d", b.EndOffset)
		}
	})

	t.Run("空の入力も単一ブロックとして正常に扱うのだ", func(t *testing.T) {
		blocks, err := s.Segment("", "pt-BR")
		if err != nil {
			t.Fatalf("空入力でエラーになったのだ: %v", err)
		}
		if len(blocks) != 1 {
			t.Fatalf("ブロック数が違うのだ: %d", len(blocks))
		}
		if blocks[0].Title != "Sem título" {
			t.Errorf("空コンテンツのタイトルが違うのだ: %q", blocks[0].Title)
		}
	})
}

func TestSegment_Manual(t *testing.T) {
	s := New()

	filler := makeParagraph(600)
	template := "PARTE 1: Introdução\n" +
		"META: apresentar o tema ao público\n" +
		"REGRAS: cerca de 1500 caracteres, tom acolhedor\n" +
		filler + "\n\n" +
		"PARTE 2: Desenvolvimento\n" +
		"META: aprofundar o argumento central\n" +
		"REGRAS: cerca de 1600 caracteres\n" +
		filler

	t.Run("完全な三つ組が2つあれば manual ブロック2つになるのだ", func(t *testing.T) {
		blocks, err := s.Segment(template, "pt-BR")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		if len(blocks) != 2 {
			t.Fatalf("ブロック数が違うのだ。期待: 2, 実際: %d", len(blocks))
		}

		for i, b := range blocks {
			if b.Demarcation != domain.DemarcationManual {
				t.Errorf("ブロック%dが manual ではないのだ: %s", i+1, b.Demarcation)
			}
			if b.Number != i+1 {
				t.Errorf("連番が崩れているのだ: %d", b.Number)
			}
			if b.Meta == "" || b.Rules == "" {
				t.Errorf("ブロック%dのメタ/ルールが空なのだ", i+1)
			}
		}
		if blocks[0].Title != "Introdução" {
			t.Errorf("ブロック1のタイトルが違うのだ: %q", blocks[0].Title)
		}
		if blocks[1].Title != "Desenvolvimento" {
			t.Errorf("ブロック2のタイトルが違うのだ: %q", blocks[1].Title)
		}
		if !strings.HasPrefix(blocks[0].Meta, "apresentar o tema") {
			t.Errorf("メタの内容が違うのだ: %q", blocks[0].Meta)
		}
		if !strings.Contains(blocks[1].Rules, "1600") {
			t.Errorf("ルールの内容が違うのだ: %q", blocks[1].Rules)
		}
	})

	t.Run("ルールを欠いたパートは完全な三つ組だけが採用されるのだ", func(t *testing.T) {
		broken := "PARTE 1: Introdução\n" +
			"META: apresentar o tema\n" +
			filler + "\n\n" +
			"PARTE 2: Desenvolvimento\n" +
			"META: aprofundar\n" +
			"REGRAS: cerca de 1600 caracteres\n" +
			filler

		blocks, err := s.Segment(broken, "pt-BR")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		if len(blocks) != 1 {
			t.Fatalf("ブロック数が違うのだ。期待: 1, 実際: %d", len(blocks))
		}
		if blocks[0].Demarcation != domain.DemarcationManual {
			t.Error("残った三つ組は manual として扱われるはずなのだ")
		}
		if blocks[0].Title != "Desenvolvimento" {
			t.Errorf("採用されたパートが違うのだ: %q", blocks[0].Title)
		}
	})

	t.Run("英語のマーカーキーワードでも解析できるのだ", func(t *testing.T) {
		enTemplate := "PART 1: Opening\n" +
			"META: introduce the theme\n" +
			"RULES: about 1500 characters\n" +
			filler
		blocks, err := s.Segment(enTemplate, "en-US")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		if len(blocks) != 1 || blocks[0].Demarcation != domain.DemarcationManual {
			t.Fatalf("英語テンプレートが manual として解析されないのだ: %+v", blocks)
		}
	})
}

func TestSegment_AutoParagraphs(t *testing.T) {
	s := New()

	t.Run("段落ベースの自動分割はサイズ規律を守るのだ", func(t *testing.T) {
		paras := make([]string, 10)
		for i := range paras {
			paras[i] = makeParagraph(400)
		}
		text := strings.Join(paras, "\n\n")

		blocks, err := s.Segment(text, "pt-BR")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		if len(blocks) < 2 {
			t.Fatalf("複数ブロックに分かれるはずなのだ: %d", len(blocks))
		}

		for i, b := range blocks {
			size := utf8.RuneCountInString(b.Content)
			if size >= BlockHardCap {
				t.Errorf("ブロック%dが上限を超えているのだ: %d文字", i+1, size)
			}
			if i < len(blocks)-1 && size < BlockFloor {
				t.Errorf("末尾以外のブロック%dがフロア未満なのだ: %d文字", i+1, size)
			}
			if b.Demarcation != domain.DemarcationAuto {
				t.Errorf("ブロック%dが auto ではないのだ", i+1)
			}
			if b.Number != i+1 {
				t.Errorf("連番が崩れているのだ: %d", b.Number)
			}
		}

		if blocks[0].StartOffset != 0 {
			t.Errorf("先頭ブロックの開始オフセットが違うのだ: %d", blocks[0].StartOffset)
		}
		for i := 1; i < len(blocks); i++ {
			if blocks[i].StartOffset < blocks[i-1].EndOffset {
				t.Errorf("ブロック%dのオフセットが逆行しているのだ", i+1)
			}
		}
	})

	t.Run("フロア以降は転換語が出た時点でブロックを閉じるのだ", func(t *testing.T) {
		p1 := makeParagraph(650)
		p2 := makeParagraph(650)
		p3 := "Entretanto, tudo mudou naquele dia. " + makeParagraph(160)
		p4 := makeParagraph(650)
		text := strings.Join([]string{p1, p2, p3, p4}, "\n\n")

		blocks, err := s.Segment(text, "pt-BR")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		if len(blocks) != 2 {
			t.Fatalf("ブロック数が違うのだ。期待: 2, 実際: %d", len(blocks))
		}
		if !strings.HasPrefix(blocks[1].Content, "Entretanto") {
			t.Errorf("2つ目のブロックは転換語から始まるはずなのだ: %q", blocks[1].Content[:40])
		}
	})
}

func TestSegment_SentenceFallback(t *testing.T) {
	s := New()

	t.Run("空行のないテキストは文ベースで束ねるのだ", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 80; i++ {
			sb.WriteString("O narrador continua a história sem pausas visíveis. ")
		}
		text := strings.TrimSpace(sb.String())

		blocks, err := s.Segment(text, "pt-BR")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		if len(blocks) < 2 {
			t.Fatalf("複数ブロックに分かれるはずなのだ: %d", len(blocks))
		}
		for i, b := range blocks {
			if b.Demarcation != domain.DemarcationAuto {
				t.Errorf("ブロック%dが auto ではないのだ", i+1)
			}
			if strings.Contains(b.Content, "\n") {
				t.Errorf("文ベースのブロックに改行が残っているのだ")
			}
		}
	})
}

func TestSegment_Exclusivity(t *testing.T) {
	s := New()

	t.Run("manual が選ばれた入力に auto ブロックは混ざらないのだ", func(t *testing.T) {
		filler := makeParagraph(600)
		text := "PARTE 1: Abertura\n" +
			"META: abrir com impacto\n" +
			"REGRAS: cerca de 1400 caracteres\n" +
			filler + "\n\n" +
			filler + "\n\n" + // マーカーを持たない自由段落が続いても
			"PARTE 2: Final\n" +
			"META: encerrar\n" +
			"REGRAS: cerca de 1200 caracteres\n" +
			filler

		blocks, err := s.Segment(text, "pt-BR")
		if err != nil {
			t.Fatalf("分割に失敗したのだ: %v", err)
		}
		for i, b := range blocks {
			if b.Demarcation != domain.DemarcationManual {
				t.Errorf("ブロック%dに %s が混ざっているのだ", i+1, b.Demarcation)
			}
		}
	})
}
