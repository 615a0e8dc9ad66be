package cmd

import (
	"fmt"
	"strings"

	"github.com/douhashi/labeler/internal/labeler"
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var (
		skipIfPresent bool
		trackerName   string
	)

	cmd := &cobra.Command{
		Use:   "apply <labelName> <issueId>",
		Short: "課題にラベルを付与する",
		Long: `指定した課題にワークスペースのラベルを名前（大文字小文字を区別しない）で付与します。
認証情報は環境変数（LINEAR_API_KEY など）、.env、設定ファイルから読み込みます。`,
		Example: `  labeler apply Bug ENG-123
  labeler apply --skip-if-present "Executed by Codex" ENG-123
  labeler apply --tracker github bug douhashi/labeler#42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := currentConfig()
			if trackerName != "" {
				cfg.Tracker = strings.ToLower(trackerName)
			}
			log := currentLogger()

			in := labeler.Input{
				LabelName:     args[0],
				IssueID:       args[1],
				SkipIfPresent: skipIfPresent,
			}
			if err := in.Validate(); err != nil {
				return err
			}

			t, err := newTrackerFunc(&cfg, log)
			if err != nil {
				return err
			}

			// 以降の失敗は実行時エラーなのでusageは表示しない
			cmd.SilenceUsage = true

			res, err := labeler.New(t, log).Apply(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipIfPresent, "skip-if-present", false, "既にラベルが付与されている場合は更新しない")
	cmd.Flags().StringVar(&trackerName, "tracker", "", "使用するトラッカー (linear|github)")

	return cmd
}
