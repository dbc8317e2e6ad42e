package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"

	kitcfg "github.com/shouni/go-narrate-kit/pkg/config"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = kitcfg.DefaultGeminiModel
	DefaultImageModel  = kitcfg.DefaultImageModel
	DefaultHTTPTimeout = 30 * time.Second
	DefaultAgentFile   = "examples/agent.json"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID        string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	OutputPrefix     string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:        envutil.GetEnv("PROJECT_ID", ""),
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		OutputPrefix:     envutil.GetEnv("OUTPUT_PREFIX", kitcfg.DefaultOutputPrefix),
	}
	return cfg
}

// KitConfig は環境設定を pkg/config.Config へ写し取るのだ。
func (c *Config) KitConfig() kitcfg.Config {
	kc := kitcfg.DefaultConfig()
	kc.GeminiAPIKey = c.GeminiAPIKey
	kc.GeminiModel = c.GeminiModel
	kc.ImageModel = c.GeminiImageModel
	if c.Options.OutputPrefix != "" {
		kc.OutputPrefix = c.Options.OutputPrefix
	} else if c.OutputPrefix != "" {
		kc.OutputPrefix = c.OutputPrefix
	}
	return kc
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	AgentFile  string // --agent-file: エージェントプロファイル(JSON)のパス
	Title      string // --title: 生成対象のタイトル
	PremiseURL string // --premise-url: 前提テキストを抽出するWebページ
	ScriptFile string // --script-file: 既存台本の入力パス（'-'で標準入力）

	// 生成結果の出力設定
	OutputPrefix string // --output-prefix

	// 適応・バリエーション関連
	SourceLanguage string // --source-lang
	TargetLanguage string // --target-lang
	VariationCount int    // --variations

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	JobID       string        // --job-id
	HTTPTimeout time.Duration // --http-timeout
	NoAudio     bool          // --no-audio: 音声合成を行わない
}
