package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/douhashi/labeler/internal/action"
	"github.com/douhashi/labeler/internal/config"
	"github.com/douhashi/labeler/internal/testutil/helpers"
	"github.com/douhashi/labeler/internal/testutil/mocks"
	"github.com/douhashi/labeler/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stepEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestActionCmd(t *testing.T) {
	issue := &tracker.Issue{ID: "uuid-1", Identifier: "ABC-123", Title: "Fix bug"}
	catalog := []tracker.Label{
		{ID: "L1", Name: "Bug"},
		{ID: "L2", Name: "Executed by Codex"},
	}

	t.Run("正常系: ラベルを付与してステップ出力を書き込む", func(t *testing.T) {
		setupTestEnv(t)
		outputPath := filepath.Join(t.TempDir(), "github_output")
		getEnvFunc = stepEnv(map[string]string{
			"INPUT_LABEL-NAME":  "codex",
			"INPUT_API-KEY":     "lin_api_step",
			"INPUT_PR-TITLE":    "Fix bug ABC-123",
			"INPUT_BRANCH-NAME": "codex/fix-bug",
			"GITHUB_OUTPUT":     outputPath,
		})

		m := mocks.NewMockTracker().
			WithIssue(issue, []tracker.Label{{ID: "L1", Name: "Bug"}}).
			WithCatalog(catalog)
		m.On("SetIssueLabels", mock.Anything, issue, []string{"L1", "L2"}).Return(nil)

		var got config.Config
		stubTracker(m, &got)

		stdout, _, err := executeCommand("action")
		require.NoError(t, err)
		assert.Contains(t, stdout, "::add-mask::lin_api_step")
		assert.Contains(t, stdout, `::notice::label "Executed by Codex" added to issue ABC-123`)
		assert.Equal(t, "lin_api_step", got.Linear.APIKey)

		assert.Equal(t, map[string]string{
			"result":    "updated",
			"label-ids": "L1,L2",
		}, helpers.ReadStepOutputs(t, outputPath))
		m.AssertExpectations(t)
	})

	t.Run("正常系: 付与済みの場合はskipped", func(t *testing.T) {
		setupTestEnv(t)
		outputPath := filepath.Join(t.TempDir(), "github_output")
		getEnvFunc = stepEnv(map[string]string{
			"INPUT_LABEL-NAME": "Bug",
			"INPUT_ISSUE-ID":   "ABC-123",
			"INPUT_API-KEY":    "lin_api_step",
			"GITHUB_OUTPUT":    outputPath,
		})

		m := mocks.NewMockTracker().WithIssue(issue, []tracker.Label{{ID: "L1", Name: "Bug"}})
		stubTracker(m, nil)

		stdout, _, err := executeCommand("action")
		require.NoError(t, err)
		assert.Contains(t, stdout, "already present")

		assert.Equal(t, "skipped", helpers.ReadStepOutputs(t, outputPath)["result"])
		m.AssertNotCalled(t, "SetIssueLabels", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常系: 対象外ブランチはignored", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv("LABELER_BRANCH_PREFIXES", "codex/,cursor/")
		outputPath := filepath.Join(t.TempDir(), "github_output")
		getEnvFunc = stepEnv(map[string]string{
			"INPUT_LABEL-NAME":  "codex",
			"INPUT_ISSUE-ID":    "ABC-123",
			"INPUT_BRANCH-NAME": "feature/x",
			"GITHUB_OUTPUT":     outputPath,
		})

		m := mocks.NewMockTracker()
		stubTracker(m, nil)

		stdout, _, err := executeCommand("action")
		require.NoError(t, err)
		assert.Contains(t, stdout, "skipping label addition")
		assert.Empty(t, m.Calls)

		assert.Equal(t, "ignored", helpers.ReadStepOutputs(t, outputPath)["result"])
	})

	t.Run("異常系: エラーは::error::で出力し終了コード1", func(t *testing.T) {
		setupTestEnv(t)
		getEnvFunc = stepEnv(map[string]string{
			"INPUT_LABEL-NAME": "Nonexistent",
			"INPUT_ISSUE-ID":   "ABC-123",
			"INPUT_API-KEY":    "lin_api_step",
		})

		m := mocks.NewMockTracker().WithIssue(issue, nil).WithCatalog(catalog)
		stubTracker(m, nil)

		stdout, stderr, err := executeCommand("action")
		require.Error(t, err)
		var ee *exitError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, 1, ee.code)
		assert.Contains(t, stdout, `::error::label "Nonexistent" not found`)
		assert.NotContains(t, stdout+stderr, "Usage:")
		assert.NotContains(t, stdout+stderr, "goroutine")
	})

	t.Run("異常系: 認証情報なしは設定エラー", func(t *testing.T) {
		setupTestEnv(t)
		getEnvFunc = stepEnv(map[string]string{
			"INPUT_LABEL-NAME": "Bug",
			"INPUT_ISSUE-ID":   "ABC-123",
		})

		stdout, _, err := executeCommand("action")
		require.Error(t, err)
		assert.Contains(t, stdout, "::error::Linear API key is required")
	})

	t.Run("異常系: 設定ファイルの読み込み失敗も::error::で出力する", func(t *testing.T) {
		setupTestEnv(t)
		getEnvFunc = stepEnv(nil)
		path := filepath.Join(t.TempDir(), "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("tracker: [broken\n"), 0644))

		stdout, _, err := executeCommand("--config", path, "action")
		require.Error(t, err)
		var ee *exitError
		require.True(t, errors.As(err, &ee))
		assert.Contains(t, stdout, "::error::failed to initialize config")
	})
}

func TestStepConfig(t *testing.T) {
	base := *config.NewConfig()

	t.Run("api-keyはLinearのAPIキーになる", func(t *testing.T) {
		cfg := stepConfig(base, action.Inputs{APIKey: "lin_api_x"})
		assert.Equal(t, config.TrackerLinear, cfg.Tracker)
		assert.Equal(t, "lin_api_x", cfg.Linear.APIKey)
	})

	t.Run("tracker=githubの場合はGitHubトークンになる", func(t *testing.T) {
		cfg := stepConfig(base, action.Inputs{APIKey: "ghp_x", Tracker: "github"})
		assert.Equal(t, config.TrackerGitHub, cfg.Tracker)
		assert.Equal(t, "ghp_x", cfg.GitHub.Token)
		assert.Empty(t, cfg.Linear.APIKey)
	})

	t.Run("入力が無い場合は設定をそのまま使う", func(t *testing.T) {
		c := base
		c.Linear.APIKey = "lin_api_env"
		cfg := stepConfig(c, action.Inputs{})
		assert.Equal(t, "lin_api_env", cfg.Linear.APIKey)
	})
}
