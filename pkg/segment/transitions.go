package segment

import (
	"regexp"
	"strings"
)

// TransitionWords は段落冒頭の転換語・接続語の言語別リストです。
// 元システムが収録していたのはこの4言語だけで、未収録の言語は
// ポルトガル語（参照言語）のリストを流用します。これは仕様上の既知の
// 不完全さであり、WithTransitionWords で外から差し替え可能なのだ。
var TransitionWords = map[string][]string{
	"pt": {
		"entretanto", "no entanto", "porém", "contudo", "além disso",
		"por outro lado", "enquanto isso", "em seguida", "então",
		"dessa forma", "portanto", "por fim", "finalmente", "de repente",
	},
	"en": {
		"however", "meanwhile", "moreover", "furthermore", "on the other hand",
		"nevertheless", "afterwards", "then", "therefore", "finally",
		"suddenly", "in addition",
	},
	"es": {
		"sin embargo", "mientras tanto", "además", "por otro lado",
		"no obstante", "entonces", "por lo tanto", "finalmente",
		"de repente", "luego",
	},
	"fr": {
		"cependant", "pendant ce temps", "en outre", "par ailleurs",
		"néanmoins", "ensuite", "donc", "enfin", "soudain", "toutefois",
	},
}

type transitionTable map[string]*regexp.Regexp

func defaultTransitionTable() transitionTable {
	table := make(transitionTable, len(TransitionWords))
	for lang, words := range TransitionWords {
		table[lang] = compileTransitions(words)
	}
	return table
}

// compileTransitions は転換語リストを1本の検索パターンに畳み込みます。
// 語は段落冒頭、または空白・句読点の直後に現れたときだけ一致します。
func compileTransitions(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(?:^|[\s,.;:—-])(?:` + strings.Join(quoted, "|") + `)`)
}

// hasTransitionCue は段落の冒頭 cueWindow 文字に転換語が含まれるかを調べます。
func (s *Segmenter) hasTransitionCue(text, languageHint string) bool {
	re, ok := s.transitions[normalizeLang(languageHint)]
	if !ok {
		re = s.transitions["pt"]
	}
	if re == nil {
		return false
	}

	head := []rune(text)
	if len(head) > cueWindow {
		head = head[:cueWindow]
	}
	return re.MatchString(string(head))
}
