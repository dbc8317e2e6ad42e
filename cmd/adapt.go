package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-narrate-kit/internal/config"
	"github.com/shouni/go-narrate-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// adaptCmd は、既存の台本を別言語へ文化的に適応させるのだ。
var adaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "既存の台本を別言語へ文化的に適応させるのだ。",
	Long: `入力台本を読み込み、直訳ではなく文化的な言い換えを優先した適応を行うのだ。
適応後の長さが原文から大きく外れた場合は警告やリトライが走るのだよ。`,
	RunE: adaptCommand,
}

func init() {
}

func adaptCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ScriptFile == "" && !isStdin() {
		return fmt.Errorf("入力台本（--script-file）を指定してほしいのだ")
	}
	if opts.ScriptFile == "" {
		opts.ScriptFile = "-"
	}

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("適応モードを起動するのだ！",
		"source", opts.SourceLanguage, "target", opts.TargetLanguage)

	if err := pipeline.ExecuteAdapt(ctx, cfg); err != nil {
		return fmt.Errorf("適応中にエラーが発生したのだ: %w", err)
	}
	return nil
}
