package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/douhashi/labeler/internal/config"
	"github.com/douhashi/labeler/internal/logger"
	"github.com/douhashi/labeler/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	verbose   bool
	rootCmd   *cobra.Command
	appLog    logger.Logger
	appConfig *config.Config
)

// モック用の関数変数
var (
	getEnvFunc     = os.Getenv
	loadDotEnvFunc = config.LoadDotEnv
)

// dotEnvFile is read from the working directory before the config is loaded.
const dotEnvFile = ".env"

func init() {
	rootCmd = newRootCmd()

	// サブコマンドの追加
	addCommands(rootCmd)
}

func addCommands(cmd *cobra.Command) {
	cmd.AddCommand(newApplyCmd())
	cmd.AddCommand(newActionCmd())
	cmd.AddCommand(newInitCmd())
}

// NewRootCmd creates a new root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	addCommands(cmd)
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labeler",
		Short: "課題管理サービスの課題にラベルを付与する",
		Long: `labelerは、Linear（またはGitHub Issues）の課題に
ワークスペースのラベルを名前で付与するCLIツールです。
単体コマンドとしても、CIパイプラインのステップとしても動作します。`,
		Version:       version.Get().String(),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")

	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	return cmd
}

// exitError reports an exit code for a failure that was already written out.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initApp loads .env, the config file and the environment, then builds the logger.
func initApp(logOut io.Writer) error {
	if err := loadDotEnvFunc(dotEnvFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", dotEnvFile, err)
	}

	cfg := config.NewConfig()
	path, err := cfg.LoadOrDefault(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	logCfg := logger.ConfigFromEnv()
	if verbose {
		logCfg.Level = "debug"
	}
	appLog, err = logger.New(
		logger.WithLevel(logCfg.Level),
		logger.WithFormat(logCfg.Format),
		logger.WithOutput(logOut),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if path != "" {
		appLog.Debug("config_loaded", "path", path)
	}
	appConfig = cfg
	return nil
}

// currentConfig returns a copy of the loaded config, or the defaults before initApp ran.
func currentConfig() config.Config {
	if appConfig == nil {
		return *config.NewConfig()
	}
	return *appConfig
}

func currentLogger() logger.Logger {
	if appLog == nil {
		return logger.NewNop()
	}
	return appLog
}
