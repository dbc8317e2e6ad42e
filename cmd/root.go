package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-narrate-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.AgentFile, "agent-file", "a", config.DefaultAgentFile, "エージェント定義（JSON）のパスなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Title, "title", "t", "", "生成対象のタイトルなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.PremiseURL, "premise-url", "u", "", "前提テキストを抽出するWebページのURLなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ScriptFile, "script-file", "f", "", "入力ファイルのパス（'-'で標準入力なのだ）。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputPrefix, "output-prefix", "o", "", "保存先プレフィックス（ローカル or gs://...）なのだ。")

	// --- 適応・バリエーション設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.SourceLanguage, "source-lang", "pt-BR", "入力台本の言語コードなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.TargetLanguage, "target-lang", "", "適応先の言語コードなのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.VariationCount, "variations", "n", 0, "生成するバリエーション数なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成用の Gemini モデル名なのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().StringVar(&opts.JobID, "job-id", "", "ジョブIDなのだ。省略時は自動採番なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.NoAudio, "no-audio", false, "音声合成を行わないのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-narrate-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		segmentCmd,
		adaptCmd,
		variationsCmd,
	)
}
