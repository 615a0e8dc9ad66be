package logger

import (
	"os"
	"strings"
)

// ConfigFromEnv は環境変数から設定を読み込む
//
// レベル: LABELER_LOG_LEVEL > LOG_LEVEL > デバッグ指定 (DEBUG, RUNNER_DEBUG, ACTIONS_STEP_DEBUG) > info
// 形式: LABELER_LOG_FORMAT > LOG_FORMAT > text
// 出力先は常に標準エラー。標準出力はワークフローコマンドと結果表示に使う。
func ConfigFromEnv() *Config {
	return configFromLookup(os.Getenv)
}

func configFromLookup(getenv func(string) string) *Config {
	config := &Config{
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}

	if debugRequested(getenv) {
		config.Level = "debug"
	}
	if level := firstSet(getenv, "LABELER_LOG_LEVEL", "LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}
	if format := firstSet(getenv, "LABELER_LOG_FORMAT", "LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}

	return config
}

// debugRequested はローカル(DEBUG)またはGitHub Actionsの再実行時のデバッグ指定を判定する
func debugRequested(getenv func(string) string) bool {
	return isTrue(getenv("DEBUG")) ||
		getenv("RUNNER_DEBUG") == "1" ||
		isTrue(getenv("ACTIONS_STEP_DEBUG"))
}

func firstSet(getenv func(string) string, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func isTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
