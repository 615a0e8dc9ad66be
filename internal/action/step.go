// Package action runs labeler as a CI pipeline step (GitHub Actions conventions).
package action

import (
	"io"
	"os"
	"strings"

	"github.com/douhashi/labeler/internal/pullrequest"
	"github.com/sethvargo/go-githubactions"
)

// inputFallbacks lists the plain variables each input falls back to.
var inputFallbacks = map[string][]string{
	"label-name":  {"LINEAR_LABEL"},
	"pr-title":    {"PR_TITLE"},
	"branch-name": {"BRANCH_NAME", "GITHUB_HEAD_REF"},
}

// Step is the runner side of a CI step: inputs, workflow commands and outputs.
type Step struct {
	gha    *githubactions.Action
	getenv func(string) string
}

// NewStep creates a Step writing workflow commands to out.
// getenv resolves inputs and GITHUB_OUTPUT; nil means os.Getenv.
func NewStep(out io.Writer, getenv func(string) string) *Step {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Step{
		gha: githubactions.New(
			githubactions.WithWriter(out),
			githubactions.WithGetenv(getenv),
		),
		getenv: getenv,
	}
}

// Input returns the step input name (INPUT_<NAME>), then its plain fallback variables.
func (s *Step) Input(name string) string {
	if v := s.gha.GetInput(name); v != "" {
		return v
	}
	for _, fallback := range inputFallbacks[name] {
		if v := strings.TrimSpace(s.getenv(fallback)); v != "" {
			return v
		}
	}
	return ""
}

// Inputs binds every step input.
func (s *Step) Inputs() Inputs {
	return Inputs{
		LabelName:      s.Input("label-name"),
		IssueID:        s.Input("issue-id"),
		APIKey:         s.Input("api-key"),
		Tracker:        strings.ToLower(s.Input("tracker")),
		PRTitle:        s.Input("pr-title"),
		BranchName:     s.Input("branch-name"),
		BranchPrefixes: pullrequest.SplitList(s.Input("branch-prefixes")),
	}
}

// Mask registers value as a secret so the runner redacts it from the log.
func (s *Step) Mask(value string) {
	if value == "" {
		return
	}
	s.gha.AddMask(value)
}

// Error emits an ::error:: command with err's message.
func (s *Step) Error(err error) {
	s.gha.Errorf("%s", err.Error())
}

// Report emits the outcome message as a notice and writes the result and label-ids outputs.
func (s *Step) Report(out *Outcome) {
	s.gha.Noticef("%s", out.Message)
	s.gha.SetOutput("result", out.Result)
	s.gha.SetOutput("label-ids", strings.Join(out.LabelIDs, ","))
}
