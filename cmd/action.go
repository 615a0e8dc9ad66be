package cmd

import (
	"github.com/douhashi/labeler/internal/action"
	"github.com/douhashi/labeler/internal/config"
	"github.com/douhashi/labeler/internal/tracker"
	"github.com/spf13/cobra"
)

func newActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "CIパイプラインのステップとして実行する",
		Long: `GitHub Actionsのステップ入力（INPUT_LABEL-NAME, INPUT_ISSUE-ID, INPUT_API-KEY など）を読み込み、
課題にラベルを付与します。既に付与済みの場合は更新しません。
失敗時は ::error:: コマンドを出力して終了コード1で終了します。`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initApp(cmd.ErrOrStderr()); err != nil {
				action.NewStep(cmd.OutOrStdout(), getEnvFunc).Error(err)
				return &exitError{code: 1}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			step := action.NewStep(cmd.OutOrStdout(), getEnvFunc)
			in := step.Inputs()
			step.Mask(in.APIKey)

			cfg := currentConfig()
			log := currentLogger()
			runner := &action.Runner{
				NewTracker: func(in action.Inputs) (tracker.Tracker, error) {
					c := stepConfig(cfg, in)
					return newTrackerFunc(&c, log)
				},
				Aliases:  cfg.Labels.Aliases,
				Prefixes: cfg.Branch.Prefixes,
				Logger:   log,
			}

			out, err := runner.Run(cmd.Context(), in)
			if err != nil {
				step.Error(err)
				return &exitError{code: 1}
			}

			step.Report(out)
			return nil
		},
	}

	return cmd
}

// stepConfig overlays the step inputs on the loaded config.
func stepConfig(cfg config.Config, in action.Inputs) config.Config {
	if in.Tracker != "" {
		cfg.Tracker = in.Tracker
	}
	if in.APIKey != "" {
		switch cfg.Tracker {
		case config.TrackerGitHub:
			cfg.GitHub.Token = in.APIKey
		default:
			cfg.Linear.APIKey = in.APIKey
		}
	}
	return cfg
}
