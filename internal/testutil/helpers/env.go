package helpers

import (
	"os"
	"testing"
)

// CredentialEnv lists the variables labeler reads credentials and tracker settings from.
var CredentialEnv = []string{
	"LINEAR_API_KEY",
	"LINEAR_OAUTH_TOKEN",
	"GITHUB_TOKEN",
	"GITHUB_REPOSITORY",
	"GITHUB_API_URL",
	"LABELER_TRACKER",
	"LABELER_LINEAR_API_KEY",
	"LABELER_LINEAR_OAUTH_TOKEN",
	"LABELER_LINEAR_ENDPOINT",
	"LABELER_GITHUB_TOKEN",
	"LABELER_GITHUB_REPOSITORY",
	"LABELER_GITHUB_BASE_URL",
	"LABELER_BRANCH_PREFIXES",
}

// ClearEnv unsets names for the duration of the test; t.Setenv restores them afterwards.
func ClearEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("failed to unset env var %s: %v", name, err)
		}
	}
}
