package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-narrate-kit/internal/config"
	"github.com/shouni/go-narrate-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// segmentCmd は、テンプレートの分割結果だけを確認するドライラン用コマンドなのだ。
var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "テンプレートをブロックへ分割して表示するのだ。",
	Long: `エージェント定義のテンプレート、または入力ファイルをブロックへ分割し、
結果をJSONで標準出力へ書くのだ。生成API呼び出しは一切行わないのだよ。`,
	RunE: segmentCommand,
}

func init() {
}

func segmentCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.AgentFile == "" && opts.ScriptFile == "" && !isStdin() {
		return fmt.Errorf("ソース（--agent-file または --script-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("分割モードを起動するのだ！", "agent", opts.AgentFile, "file", opts.ScriptFile)

	if err := pipeline.ExecuteSegment(ctx, cfg); err != nil {
		return fmt.Errorf("分割中にエラーが発生したのだ: %w", err)
	}
	return nil
}
