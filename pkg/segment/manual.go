package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

// syntheticWindow は、マッチ位置の復元に失敗した場合に当てる代替ウィンドウの幅です。
const syntheticWindow = 1000

// MarkerSet は手動区切りテンプレートのヘッダーキーワード（大文字・小文字を区別）です。
// テンプレートは次の繰り返し構造を想定しています。
//
//	PARTE 1: 導入
//	META: このパートで達成したいこと
//	REGRAS: 文字数やトーンの制約
type MarkerSet struct {
	Part  string
	Meta  string
	Rules string
}

// defaultMarkerSets は元システムが扱っていた4言語のキーワード定義です。
// 未収録の言語はポルトガル語の定義で代用されます（既知の制限）。
func defaultMarkerSets() map[string]MarkerSet {
	return map[string]MarkerSet{
		"pt": {Part: "PARTE", Meta: "META", Rules: "REGRAS"},
		"en": {Part: "PART", Meta: "META", Rules: "RULES"},
		"es": {Part: "PARTE", Meta: "META", Rules: "REGLAS"},
		"fr": {Part: "PARTIE", Meta: "META", Rules: "RÈGLES"},
	}
}

func (s *Segmenter) markersFor(hint string) MarkerSet {
	if ms, ok := s.markers[normalizeLang(hint)]; ok {
		return ms
	}
	return s.markers["pt"]
}

// parseManual はパート/メタ/ルールの三つ組を探し、見つかれば manual ブロック列を返します。
// ヘッダーキーワードはテンプレート言語のリテラルを大文字・小文字込みで照合するのだ。
func (s *Segmenter) parseManual(text, languageHint string) (domain.Blocks, bool) {
	ms := s.markersFor(languageHint)

	headerRe := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(ms.Part) + `[ \t]+(\d+)[ \t]*[:\-–—][ \t]*(.*)$`)
	metaRe := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(ms.Meta) + `[ \t]*:`)
	rulesRe := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(ms.Rules) + `[ \t]*:`)

	headers := headerRe.FindAllStringSubmatchIndex(text, -1)
	if len(headers) == 0 {
		return nil, false
	}

	var blocks domain.Blocks
	for i, h := range headers {
		spanStart := h[0]
		spanEnd := len(text)
		if i+1 < len(headers) {
			spanEnd = headers[i+1][0]
		}
		span := text[spanStart:spanEnd]

		// メタとルールが両方そろったヘッダーだけが完全な三つ組です。
		metaLoc := metaRe.FindStringIndex(span)
		rulesLoc := rulesRe.FindStringIndex(span)
		if metaLoc == nil || rulesLoc == nil || rulesLoc[0] < metaLoc[0] {
			continue
		}

		meta := strings.TrimSpace(span[metaLoc[1]:rulesLoc[0]])
		rules := strings.TrimSpace(span[rulesLoc[1]:])
		name := strings.TrimSpace(text[h[4]:h[5]])
		content := strings.TrimSpace(span)

		start, end := recoverOffsets(text, spanStart, spanEnd, len(blocks))
		title := name
		if title == "" {
			title = ExtractTitle(content)
		}

		blocks = append(blocks, domain.Block{
			Title:       title,
			Content:     content,
			StartOffset: start,
			EndOffset:   end,
			Demarcation: domain.DemarcationManual,
			Meta:        meta,
			Rules:       rules,
		})
	}

	if len(blocks) == 0 {
		return nil, false
	}
	blocks.Renumber()
	return blocks, true
}

// recoverOffsets はバイト位置を文字（rune）オフセットへ変換します。
// 位置が復元できない場合は連番ベースの 1000 文字ウィンドウで代用するのだ。
func recoverOffsets(text string, byteStart, byteEnd, index int) (int, int) {
	if byteStart < 0 || byteEnd < byteStart || byteEnd > len(text) {
		total := utf8.RuneCountInString(text)
		start := index * syntheticWindow
		if start > total {
			start = total
		}
		end := start + syntheticWindow
		if end > total {
			end = total
		}
		return start, end
	}
	start := utf8.RuneCountInString(text[:byteStart])
	return start, start + utf8.RuneCountInString(text[byteStart:byteEnd])
}
