package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

var paragraphSepRe = regexp.MustCompile(`\n[ \t]*\n+`)

// paragraph は元テキスト内の位置情報付きの段落です。オフセットは文字（rune）単位。
type paragraph struct {
	text  string
	start int
	end   int
}

// splitParagraphs は空行（2つ以上の連続改行）でテキストを段落に分けます。
// トリム後に空になった段落はここで除外されるのだ。
func splitParagraphs(text string) []paragraph {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paras []paragraph
	byteStart := 0
	runeStart := 0
	seps := paragraphSepRe.FindAllStringIndex(normalized, -1)
	seps = append(seps, []int{len(normalized), len(normalized)})

	for _, sep := range seps {
		raw := normalized[byteStart:sep[0]]
		runeLen := utf8.RuneCountInString(raw)
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			paras = append(paras, paragraph{
				text:  trimmed,
				start: runeStart,
				end:   runeStart + runeLen,
			})
		}
		runeStart += runeLen + utf8.RuneCountInString(normalized[sep[0]:sep[1]])
		byteStart = sep[1]
	}
	return paras
}

// segmentParagraphs は段落を目標サイズのブロックへ貪欲に束ねます。
//
// 開いているブロックのサイズ c が BlockFloor 以上で、かつ
// 次の段落を足すと BlockTarget に届く・段落が転換語で始まる・最後の段落である、の
// いずれかならブロックを閉じます。BlockHardCap に達する結合はフロアと無関係に拒否します。
func (s *Segmenter) segmentParagraphs(paras []paragraph, languageHint string) domain.Blocks {
	var blocks domain.Blocks
	var open []paragraph
	c := 0

	for i, p := range paras {
		pLen := utf8.RuneCountInString(p.text)
		wouldBe := c + pLen
		if c > 0 {
			// 結合時の "\n\n" も本文長に含めて数えます。
			wouldBe += 2
		}
		cue := s.hasTransitionCue(p.text, languageHint)
		last := i == len(paras)-1

		closeHere := c > 0 &&
			((c >= BlockFloor && (wouldBe >= BlockTarget || cue || last)) ||
				wouldBe >= BlockHardCap)

		if closeHere {
			blocks = append(blocks, flushAutoBlock(open))
			open = nil
			c = 0
		}

		if c > 0 {
			c += 2
		}
		open = append(open, p)
		c += pLen
	}

	if len(open) > 0 {
		blocks = append(blocks, flushAutoBlock(open))
	}
	return blocks
}

// flushAutoBlock は束ねた段落群を1つの auto ブロックに畳み込みます。
func flushAutoBlock(paras []paragraph) domain.Block {
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.text
	}
	content := strings.Join(texts, "\n\n")
	return domain.Block{
		Title:       ExtractTitle(content),
		Content:     content,
		StartOffset: paras[0].start,
		EndOffset:   paras[len(paras)-1].end,
		Demarcation: domain.DemarcationAuto,
	}
}
