package domain

// JobResult はジョブ1件の最終成果物です。
type JobResult struct {
	JobID string
	Title string

	// Blocks は分割エンジンが生成したブロック列です。
	Blocks Blocks

	// MasterScript はマスター言語で生成された完全な台本です。
	MasterScript string

	// Scripts は言語コード → 台本テキストのマップです（マスター言語を含む）。
	Scripts map[string]string

	// AudioFiles は言語コード → 保存先パスのマップです。
	AudioFiles map[string]string

	// TotalDurationSec は生成した全音声の概算合計秒数です。
	TotalDurationSec int

	// Variations はバリエーション生成を行った場合のみ値を持ちます。
	Variations *VariationSet

	// ImageFiles は画像生成を行った場合の保存先パスです。
	ImageFiles []string
}

// VariationSet はバリエーションID → 言語ごとの台本・音声のマッピングなのだ。
// 全バリエーションの生成が終わった時点で確定し、以後は書き換えない。
type VariationSet struct {
	// Scripts は variation key → (言語コード → 台本) のマップです。
	Scripts map[string]map[string]string
	// AudioFiles は variation key → (言語コード → 保存先パス) のマップです。
	AudioFiles map[string]map[string]string
}

// NewVariationSet は空のバリエーション集合を返します。
func NewVariationSet() *VariationSet {
	return &VariationSet{
		Scripts:    make(map[string]map[string]string),
		AudioFiles: make(map[string]map[string]string),
	}
}
