package domain

// DemarcationKind はブロックの区切り方式を表します。
// 一度の分割処理で生成されたブロック列は、必ず単一の方式で統一されます。
type DemarcationKind string

const (
	// DemarcationManual はテンプレート作者が明示的に区切った方式です。
	DemarcationManual DemarcationKind = "manual"
	// DemarcationAuto は段落・文の構造から推定した自動区切り方式です。
	DemarcationAuto DemarcationKind = "auto"
)

// Block はナレーション台本（またはその構成テンプレート）の連続した1区間を表すのだ。
// Number は 1 始まりの連番で、欠番は存在しない。
type Block struct {
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	StartOffset int             `json:"start_offset"`
	EndOffset   int             `json:"end_offset"`
	Demarcation DemarcationKind `json:"demarcation_kind"`

	// Meta / Rules は manual 区切りのときだけ値を持ちます。
	Meta  string `json:"meta,omitempty"`
	Rules string `json:"rules,omitempty"`
}

// IsManual は manual 区切りのブロックかどうかを返します。
func (b Block) IsManual() bool {
	return b.Demarcation == DemarcationManual
}

// Blocks はブロック列のヘルパー型です。
type Blocks []Block

// Renumber は 1 始まりの連番を振り直します。
// 分割戦略の実装内でフィルタ処理を挟んだあとの整合性確保に使うのだ。
func (bs Blocks) Renumber() {
	for i := range bs {
		bs[i].Number = i + 1
	}
}

// TotalContentLen は全ブロックの本文長（文字数）の合計を返します。
func (bs Blocks) TotalContentLen() int {
	total := 0
	for _, b := range bs {
		total += len([]rune(b.Content))
	}
	return total
}
