// Package workflow は、分割 → 逐次生成 → 文化的適応 → チャンク合成という
// ジョブ1件分の流れを束ねるオーケストレーション層です。
package workflow

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-remote-io/remoteio"

	"github.com/shouni/go-narrate-kit/pkg/adapt"
	"github.com/shouni/go-narrate-kit/pkg/audio"
	"github.com/shouni/go-narrate-kit/pkg/config"
	"github.com/shouni/go-narrate-kit/pkg/script"
	"github.com/shouni/go-narrate-kit/pkg/segment"
	"github.com/shouni/go-narrate-kit/pkg/textgen"
	"github.com/shouni/go-narrate-kit/pkg/variation"

	imagekit "github.com/shouni/gemini-image-kit/generator"
)

// ProgressFunc はジョブの進捗を外へ通知するフックです。
// 通知の内容と配送手段はこのキットの契約外で、nil なら何もしません。
type ProgressFunc func(jobID string, percent int, message string)

// ManagerArgs は Manager の構築に必要な依存一式です。
type ManagerArgs struct {
	Config    config.Config
	Generator textgen.Generator
	Writer    remoteio.OutputWriter

	// Synthesizer が nil の場合、音声段階は常にスキップされます。
	Synthesizer audio.SpeechSynthesizer
	// ImageGenerator が nil の場合、画像段階は常にスキップされます。
	ImageGenerator imagekit.ImageGenerator

	Progress ProgressFunc
}

// Manager は、ワークフローの各工程を担うコンポーネント群を構築・管理します。
type Manager struct {
	cfg       config.Config
	segmenter *segment.Segmenter
	builder   *script.Builder
	adapter   *adapt.Adapter
	varGen    *variation.Orchestrator
	renderer  *audio.Renderer
	imageGen  imagekit.ImageGenerator
	writer    remoteio.OutputWriter
	cache     *cache.Cache
	progress  ProgressFunc
}

// New は、設定と依存を基に新しい Manager を初期化します。
func New(args ManagerArgs) (*Manager, error) {
	if args.Generator == nil {
		return nil, fmt.Errorf("Generator は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}

	var renderer *audio.Renderer
	if args.Synthesizer != nil {
		renderer = audio.NewRenderer(args.Synthesizer, args.Config.ChunkMaxChars, args.Config.TTSInterval)
	}

	progress := args.Progress
	if progress == nil {
		progress = func(string, int, string) {}
	}

	return &Manager{
		cfg:       args.Config,
		segmenter: segment.New(),
		builder:   script.NewBuilder(args.Generator),
		adapter:   adapt.New(args.Generator),
		varGen:    variation.New(args.Generator),
		renderer:  renderer,
		imageGen:  args.ImageGenerator,
		writer:    args.Writer,
		cache:     cache.New(args.Config.CacheTTL, args.Config.CacheCleanup),
		progress:  progress,
	}, nil
}
