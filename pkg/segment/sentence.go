package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

var sentenceEndRe = regexp.MustCompile(`[.!?…]\s+`)

// sentenceFragment は文末記号までの断片です。オフセットは文字（rune）単位。
type sentenceFragment struct {
	text  string
	start int
	end   int
}

// segmentSentences は段落構造を持たないテキスト向けの最終フォールバックです。
// 文末記号＋空白で切り、断片を2つずつ結合してから BlockTarget だけを
// しきい値に貪欲に束ねます。フロアや転換語の判定は意図的に持たないのだ。
func (s *Segmenter) segmentSentences(text string) domain.Blocks {
	frags := splitSentences(text)
	if len(frags) == 0 {
		return nil
	}
	pairs := recombinePairwise(frags)

	var blocks domain.Blocks
	var open []sentenceFragment
	c := 0

	for _, f := range pairs {
		fLen := utf8.RuneCountInString(f.text)
		wouldBe := c + fLen
		if c > 0 {
			wouldBe++ // 結合スペースの分
		}

		if c > 0 && wouldBe >= BlockTarget {
			blocks = append(blocks, flushSentenceBlock(open))
			open = nil
			c = 0
		}

		if c > 0 {
			c++
		}
		open = append(open, f)
		c += fLen
	}

	if len(open) > 0 {
		blocks = append(blocks, flushSentenceBlock(open))
	}
	return blocks
}

// splitSentences は文末記号（＋後続空白）の位置でテキストを断片化します。
// 記号そのものは直前の断片に残します。
func splitSentences(text string) []sentenceFragment {
	var frags []sentenceFragment
	byteStart := 0
	runeStart := 0

	ends := sentenceEndRe.FindAllStringIndex(text, -1)
	ends = append(ends, []int{len(text), len(text)})

	for _, loc := range ends {
		// loc[0]+1 文字目（記号の直後）までが1断片。最終要素は残り全部。
		cut := loc[1]
		if loc[0] < len(text) && loc[0] != loc[1] {
			_, size := utf8.DecodeRuneInString(text[loc[0]:])
			cut = loc[0] + size
		}
		raw := text[byteStart:cut]
		runeLen := utf8.RuneCountInString(raw)
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			frags = append(frags, sentenceFragment{
				text:  trimmed,
				start: runeStart,
				end:   runeStart + runeLen,
			})
		}
		runeStart += runeLen + utf8.RuneCountInString(text[cut:loc[1]])
		byteStart = loc[1]
	}
	return frags
}

// recombinePairwise は隣り合う断片を2つずつつなぎ直します。
// 細切れの断片をそのまま束ねると不自然に短いブロックができやすいためです。
func recombinePairwise(frags []sentenceFragment) []sentenceFragment {
	var pairs []sentenceFragment
	for i := 0; i < len(frags); i += 2 {
		if i+1 < len(frags) {
			pairs = append(pairs, sentenceFragment{
				text:  frags[i].text + " " + frags[i+1].text,
				start: frags[i].start,
				end:   frags[i+1].end,
			})
			continue
		}
		pairs = append(pairs, frags[i])
	}
	return pairs
}

func flushSentenceBlock(frags []sentenceFragment) domain.Block {
	texts := make([]string, len(frags))
	for i, f := range frags {
		texts[i] = f.text
	}
	content := strings.Join(texts, " ")
	return domain.Block{
		Title:       ExtractTitle(content),
		Content:     content,
		StartOffset: frags[0].start,
		EndOffset:   frags[len(frags)-1].end,
		Demarcation: domain.DemarcationAuto,
	}
}
