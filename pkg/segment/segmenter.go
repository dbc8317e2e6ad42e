// Package segment は、台本の構成テンプレートや生成済みナレーションを
// 一貫した「ブロック」列に分割するエンジンです。
//
// 分割戦略は3種類あり、1回の Segment 呼び出しにつき必ずどれか1つだけが選ばれます。
//  1. manual  — テンプレート作者が明示したパート/メタ/ルールのマーカーを解析する
//  2. auto    — 空行区切りの段落を目標サイズへ貪欲に束ねる
//  3. auto(文) — 段落構造を持たないテキストを文単位で束ねる最終フォールバック
package segment

import (
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

// 分割サイズの各種しきい値（文字数 = rune 数）。
const (
	// ShortTextLimit 未満の入力は分割せず単一ブロックとして扱います。
	ShortTextLimit = 1000
	// BlockFloor はブロックを閉じてよい最低サイズです。
	BlockFloor = 1200
	// BlockTarget は1ブロックの目標サイズです。
	BlockTarget = 1600
	// BlockHardCap はこれを超える結合を無条件に禁止する上限です。
	BlockHardCap = 2000
	// SizeWarnLimit を超える入力は処理自体は続行しつつ警告を出します。
	SizeWarnLimit = 50000
	// cueWindow は転換語を探す段落冒頭の文字数です。
	cueWindow = 100
)

// ErrNoBlocks は、非空の入力からブロックを1つも構成できなかったことを示します。
// 短文ショートカットがあるため実際には到達しないはずですが、
// 空の結果を黙って返さないための防衛的なシグナルなのだ。
var ErrNoBlocks = errors.New("segment: 入力からブロックを構成できませんでした")

// Segmenter はブロック分割エンジン本体です。
// 転換語リストとマーカーキーワードは言語コードをキーにした設定データとして持ちます。
type Segmenter struct {
	transitions transitionTable
	markers     map[string]MarkerSet
}

// Option は Segmenter の生成時設定です。
type Option func(*Segmenter)

// WithTransitionWords は言語コードに対する転換語リストを差し替えます。
// 未収録の言語を足す用途を想定しています。
func WithTransitionWords(lang string, words []string) Option {
	return func(s *Segmenter) {
		s.transitions[normalizeLang(lang)] = compileTransitions(words)
	}
}

// WithMarkerSet は言語コードに対する手動マーカーのキーワードを差し替えます。
func WithMarkerSet(lang string, ms MarkerSet) Option {
	return func(s *Segmenter) {
		s.markers[normalizeLang(lang)] = ms
	}
}

// New は既定の転換語・マーカー定義を持つ Segmenter を返します。
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		transitions: defaultTransitionTable(),
		markers:     defaultMarkerSets(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment はテキストを順序付きのブロック列に分割します。
// languageHint はマーカーキーワードと転換語リストの選択にだけ使われ、
// 本文そのものの言語判定は行いません。空の入力も短文として正常に扱うのだ。
func (s *Segmenter) Segment(text, languageHint string) (domain.Blocks, error) {
	length := utf8.RuneCountInString(text)

	// 1. 短文ショートカット：分割の価値がないサイズは丸ごと1ブロック。
	if length < ShortTextLimit {
		return domain.Blocks{singleAutoBlock(text, length)}, nil
	}

	if length > SizeWarnLimit {
		slog.Warn("入力テキストが想定サイズを超えています。処理は続行します",
			"length", length, "limit", SizeWarnLimit)
	}

	// 2. 手動マーカーの検出。1つでも完全な組があれば全体を manual として扱い、
	//    auto へのフォールバックは行いません。
	if blocks, ok := s.parseManual(text, languageHint); ok {
		return blocks, nil
	}

	// 3. 段落ベースの自動分割。空行が1つもないテキストは文ベースへ委譲します。
	paras := splitParagraphs(text)
	var blocks domain.Blocks
	if len(paras) <= 1 {
		blocks = s.segmentSentences(text)
	} else {
		blocks = s.segmentParagraphs(paras, languageHint)
	}

	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	blocks.Renumber()
	return blocks, nil
}

// singleAutoBlock は入力全体を包む auto ブロックを作ります。
func singleAutoBlock(text string, length int) domain.Block {
	return domain.Block{
		Number:      1,
		Title:       ExtractTitle(text),
		Content:     text,
		StartOffset: 0,
		EndOffset:   length,
		Demarcation: domain.DemarcationAuto,
	}
}

// normalizeLang は "pt-BR" のような言語コードを設定テーブルのキー（"pt"）へ丸めます。
func normalizeLang(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if i := strings.IndexAny(hint, "-_"); i > 0 {
		hint = hint[:i]
	}
	return hint
}
