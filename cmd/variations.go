package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-narrate-kit/internal/config"
	"github.com/shouni/go-narrate-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// variationsCmd は、同じタイトルから切り口の異なる台本を複数生成するのだ。
var variationsCmd = &cobra.Command{
	Use:   "variations",
	Short: "同じタイトルから切り口違いの台本を複数生成するのだ。",
	Long: `感情・実践・歴史といった切り口を変えながら、同じタイトルの台本を
1回の生成呼び出しでまとめて作るのだ。各台本は個別のファイルに保存されるのだよ。`,
	RunE: variationsCommand,
}

func init() {
}

func variationsCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Title == "" {
		return fmt.Errorf("タイトル（--title）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("バリエーション生成モードを起動するのだ！",
		"title", opts.Title, "count", opts.VariationCount)

	if err := pipeline.ExecuteVariations(ctx, cfg); err != nil {
		return fmt.Errorf("バリエーション生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
