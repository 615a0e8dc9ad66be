package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/douhashi/labeler/internal/labeler"
	"github.com/douhashi/labeler/internal/logger"
	"github.com/douhashi/labeler/internal/pullrequest"
	"github.com/douhashi/labeler/internal/tracker"
)

// ResultIgnored means the branch gate rejected the run; nothing was fetched or written.
const ResultIgnored = "ignored"

// Inputs is the step's input binding.
type Inputs struct {
	LabelName      string
	IssueID        string
	APIKey         string
	Tracker        string
	PRTitle        string
	BranchName     string
	BranchPrefixes []string
}

// Outcome is the result of a step run.
type Outcome struct {
	// Result is "updated", "skipped" or "ignored".
	Result   string
	LabelIDs []string
	Message  string
}

// TrackerFactory builds the tracker for a run. It validates credentials and makes no request.
type TrackerFactory func(in Inputs) (tracker.Tracker, error)

// Runner executes the CI step.
type Runner struct {
	NewTracker TrackerFactory
	// Aliases maps short label names to catalog names.
	Aliases map[string]string
	// Prefixes is the branch gate used when the step sets no branch-prefixes input.
	Prefixes []string
	Logger   logger.Logger
}

// Run gates on the branch, resolves issue id and label name, then applies the label
// with the already-present short-circuit enabled.
func (r *Runner) Run(ctx context.Context, in Inputs) (*Outcome, error) {
	log := r.Logger
	if log == nil {
		log = logger.NewNop()
	}

	prefixes := in.BranchPrefixes
	if len(prefixes) == 0 {
		prefixes = r.Prefixes
	}
	if !pullrequest.BranchMatches(in.BranchName, prefixes) {
		log.Info("branch_ignored", "branch", in.BranchName, "prefixes", prefixes)
		return &Outcome{
			Result:  ResultIgnored,
			Message: fmt.Sprintf("branch %q does not start with %s; skipping label addition", in.BranchName, strings.Join(prefixes, ", ")),
		}, nil
	}

	issueID := in.IssueID
	if issueID == "" && in.PRTitle != "" {
		issueID = pullrequest.ExtractIssueID(in.PRTitle)
		log.Debug("issue_id_from_title", "title", in.PRTitle, "issue_id", issueID)
	}

	req := labeler.Input{
		LabelName:     pullrequest.ResolveLabel(in.LabelName, r.Aliases),
		IssueID:       issueID,
		SkipIfPresent: true,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := r.NewTracker(in)
	if err != nil {
		return nil, err
	}

	res, err := labeler.New(t, log).Apply(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Result:   string(res.Status),
		LabelIDs: res.LabelIDs,
		Message:  res.Message,
	}, nil
}
