package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultGeminiModel = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"

	// DefaultChunkMaxChars は音声合成1回分のチャンク上限（文字数）です。
	DefaultChunkMaxChars = 4000

	// DefaultTTSInterval は音声合成呼び出しのレート間隔です。
	DefaultTTSInterval = 2 * time.Second
	// DefaultAdaptInterval は言語別適応呼び出しのレート間隔です。
	DefaultAdaptInterval = 10 * time.Second

	// DefaultCacheTTL は生成済みマスター台本のキャッシュ保持期間です。
	DefaultCacheTTL = 30 * 24 * time.Hour
	// DefaultCacheCleanup は期限切れキャッシュの掃除間隔です。
	DefaultCacheCleanup = 1 * time.Hour

	// DefaultMaxImages はジョブ1件で生成する画像数の上限です。
	DefaultMaxImages = 20

	DefaultOutputPrefix = "output"
)

// Config は go-narrate-kit の各コンポーネントを動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	GeminiModel  string
	ImageModel   string

	// --- Synthesis Settings ---
	ChunkMaxChars int
	TTSInterval   time.Duration

	// --- Adaptation Settings ---
	AdaptInterval time.Duration

	// --- Output Settings ---
	OutputPrefix string
	MaxImages    int

	// --- Cache Settings ---
	CacheTTL     time.Duration
	CacheCleanup time.Duration
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:   DefaultGeminiModel,
		ImageModel:    DefaultImageModel,
		ChunkMaxChars: DefaultChunkMaxChars,
		TTSInterval:   DefaultTTSInterval,
		AdaptInterval: DefaultAdaptInterval,
		OutputPrefix:  DefaultOutputPrefix,
		MaxImages:     DefaultMaxImages,
		CacheTTL:      DefaultCacheTTL,
		CacheCleanup:  DefaultCacheCleanup,
	}
}
