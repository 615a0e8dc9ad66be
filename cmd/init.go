package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/douhashi/labeler/internal/config"
	"github.com/spf13/cobra"
)

// モック用の関数変数
var (
	statFunc              = os.Stat
	defaultConfigPathFunc = config.DefaultPath
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "設定ファイルを作成",
		Long: `labelerのデフォルト設定ファイルを作成します。
既に設定ファイルが存在する場合は変更しません。認証情報は書き込みません。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprint(out, "🔧 設定ファイルを作成中... ")
			if err := setupConfigFile(out); err != nil {
				fmt.Fprintln(out, "❌")
				return err
			}

			showNextSteps(out)
			return nil
		},
	}

	return cmd
}

func setupConfigFile(out io.Writer) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = defaultConfigPathFunc()
	}
	if configPath == "" {
		return fmt.Errorf("設定ファイルのパスを決定できません")
	}

	// 既存ファイルの確認
	if _, err := statFunc(configPath); err == nil {
		fmt.Fprintf(out, "✅ (既存: %s)\n", configPath)
		return nil
	}

	if err := config.NewConfig().Save(configPath); err != nil {
		return fmt.Errorf("設定ファイルの作成に失敗しました: %w", err)
	}

	fmt.Fprintf(out, "✅ (%s)\n", configPath)
	return nil
}

func showNextSteps(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "📋 次のステップ:")
	fmt.Fprintln(out, "   1. export LINEAR_API_KEY=lin_api_...  (または .env に記載)")
	fmt.Fprintln(out, "   2. labeler apply <labelName> <issueId>")
}
