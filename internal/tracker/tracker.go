// Package tracker defines the issue-tracker port used by the label applier,
// its transient data model and the error taxonomy shared by every backend.
package tracker

import (
	"context"
	"strings"
)

// Label is a named tag that can be attached to issues.
// ID is opaque to callers; each backend decides what it contains.
type Label struct {
	ID   string
	Name string
}

// Issue is a work item in the remote service.
type Issue struct {
	// ID is the backend's internal identifier used for follow-up calls.
	ID string
	// Identifier is the human readable key (e.g. "ENG-123" or "owner/repo#12").
	Identifier string
	Title      string
}

// Tracker is the remote surface the label applier consumes.
type Tracker interface {
	// GetIssue returns the issue or a not found error.
	GetIssue(ctx context.Context, issueID string) (*Issue, error)
	// IssueLabels returns the labels currently applied to the issue, in order.
	IssueLabels(ctx context.Context, issue *Issue) ([]Label, error)
	// ListLabels returns every label defined in the workspace.
	ListLabels(ctx context.Context) ([]Label, error)
	// SetIssueLabels replaces the issue's label set with labelIDs.
	SetIssueLabels(ctx context.Context, issue *Issue, labelIDs []string) error
}

// FindLabel returns the first label whose name matches name case-insensitively.
func FindLabel(labels []Label, name string) (Label, bool) {
	for _, l := range labels {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Label{}, false
}

// LabelIDs returns the ids of labels, preserving order.
func LabelIDs(labels []Label) []string {
	ids := make([]string, 0, len(labels))
	for _, l := range labels {
		ids = append(ids, l.ID)
	}
	return ids
}
