// Package labeler ensures a named label is present on an issue of a remote tracker.
//
// Both command surfaces (the standalone apply command and the CI action step) share
// Applier.Apply; they differ only in how they collect input and report the outcome.
package labeler

import (
	"context"
	"fmt"
	"strings"

	"github.com/douhashi/labeler/internal/logger"
	"github.com/douhashi/labeler/internal/tracker"
)

// Status is the terminal state of a successful Apply.
type Status string

const (
	// StatusUpdated means the issue's label set was written
	StatusUpdated Status = "updated"
	// StatusSkipped means the label was already present and nothing was written
	StatusSkipped Status = "skipped"
)

// Input is the request handled by Apply.
type Input struct {
	LabelName string
	IssueID   string
	// SkipIfPresent enables the short-circuit that avoids a write when the issue
	// already carries the label.
	SkipIfPresent bool
}

// Result describes a successful Apply.
type Result struct {
	Status    Status
	LabelName string
	IssueID   string
	// LabelIDs is the label set written to the issue, or the current set when skipped.
	LabelIDs []string
	Message  string
}

// Applier applies labels through a Tracker.
type Applier struct {
	tracker tracker.Tracker
	logger  logger.Logger
}

// New creates a new Applier
func New(t tracker.Tracker, log logger.Logger) *Applier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Applier{
		tracker: t,
		logger:  log.WithFields("component", "labeler"),
	}
}

// Validate checks that the input carries everything Apply needs.
func (in Input) Validate() error {
	var missing []string
	if strings.TrimSpace(in.LabelName) == "" {
		missing = append(missing, "label name")
	}
	if strings.TrimSpace(in.IssueID) == "" {
		missing = append(missing, "issue id")
	}
	if len(missing) > 0 {
		return tracker.ConfigurationError("missing required input(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// Apply makes sure in.LabelName is on issue in.IssueID.
//
// The sequence is: fetch issue, fetch its labels, optionally short-circuit, fetch the
// workspace catalog, match the name case-insensitively and write the union of ids once.
// The first failing step aborts the operation and its error is returned unmodified;
// nothing is retried.
func (a *Applier) Apply(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	log := a.logger.WithFields("label", in.LabelName, "issue_id", in.IssueID)

	issue, err := a.tracker.GetIssue(ctx, in.IssueID)
	if err != nil {
		log.Error("get_issue_failed", "error", err)
		return nil, err
	}
	if issue == nil {
		return nil, tracker.NotFoundError("issue %s not found", in.IssueID)
	}
	log.Debug("issue_found", "issue_uuid", issue.ID, "title", issue.Title)

	current, err := a.tracker.IssueLabels(ctx, issue)
	if err != nil {
		log.Error("list_issue_labels_failed", "error", err)
		return nil, err
	}
	currentIDs := tracker.LabelIDs(current)

	if in.SkipIfPresent {
		if existing, ok := tracker.FindLabel(current, in.LabelName); ok {
			msg := fmt.Sprintf("label %q already present on issue %s", existing.Name, in.IssueID)
			log.Info("label_already_present", "label_id", existing.ID)
			return &Result{
				Status:    StatusSkipped,
				LabelName: in.LabelName,
				IssueID:   in.IssueID,
				LabelIDs:  currentIDs,
				Message:   msg,
			}, nil
		}
	}

	catalog, err := a.tracker.ListLabels(ctx)
	if err != nil {
		log.Error("list_labels_failed", "error", err)
		return nil, err
	}

	label, ok := tracker.FindLabel(catalog, in.LabelName)
	if !ok {
		return nil, tracker.NotFoundError("label %q not found", in.LabelName)
	}
	log.Debug("label_found", "label_id", label.ID, "catalog_size", len(catalog))

	labelIDs := appendUnique(currentIDs, label.ID)

	if err := a.tracker.SetIssueLabels(ctx, issue, labelIDs); err != nil {
		log.Error("update_issue_labels_failed", "error", err)
		return nil, err
	}

	msg := fmt.Sprintf("label %q added to issue %s", in.LabelName, in.IssueID)
	log.Info("label_applied", "label_ids", labelIDs)

	return &Result{
		Status:    StatusUpdated,
		LabelName: in.LabelName,
		IssueID:   in.IssueID,
		LabelIDs:  labelIDs,
		Message:   msg,
	}, nil
}

// appendUnique returns ids with id appended unless already present. ids is not modified.
func appendUnique(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	for _, existing := range ids {
		if existing == id {
			return out
		}
	}
	return append(out, id)
}
