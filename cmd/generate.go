package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-narrate-kit/internal/config"
	"github.com/shouni/go-narrate-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、タイトルからナレーション台本・音声・画像の一式を生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "タイトルから長編ナレーション台本と音声を生成しますなのだ。",
	Long: `エージェント定義のテンプレートをブロックへ分割し、ブロックごとに台本を積み上げ、
追加言語への文化的適応と音声合成まで一気通貫で実行するのだ。`,
	RunE: generateCommand,
}

func init() {
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.Title == "" {
		return fmt.Errorf("タイトル（--title）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("台本生成パイプラインを起動するのだ！",
		"title", opts.Title,
		"text_model", cfg.GeminiModel,
		"agent", opts.AgentFile)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	err := pipeline.ExecuteGenerate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
