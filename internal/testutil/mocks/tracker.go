package mocks

import (
	"context"

	"github.com/douhashi/labeler/internal/tracker"
	"github.com/stretchr/testify/mock"
)

// MockTracker is a mock implementation of tracker.Tracker interface
type MockTracker struct {
	mock.Mock
}

// NewMockTracker creates a new instance of MockTracker
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// WithIssue sets up GetIssue and IssueLabels for a single issue
func (m *MockTracker) WithIssue(issue *tracker.Issue, labels []tracker.Label) *MockTracker {
	m.On("GetIssue", mock.Anything, issue.Identifier).Return(issue, nil)
	m.On("IssueLabels", mock.Anything, issue).Return(labels, nil)
	return m
}

// WithCatalog sets up ListLabels to return the given workspace catalog
func (m *MockTracker) WithCatalog(labels []tracker.Label) *MockTracker {
	m.On("ListLabels", mock.Anything).Return(labels, nil)
	return m
}

// GetIssue mocks the GetIssue method
func (m *MockTracker) GetIssue(ctx context.Context, issueID string) (*tracker.Issue, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Issue), args.Error(1)
}

// IssueLabels mocks the IssueLabels method
func (m *MockTracker) IssueLabels(ctx context.Context, issue *tracker.Issue) ([]tracker.Label, error) {
	args := m.Called(ctx, issue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracker.Label), args.Error(1)
}

// ListLabels mocks the ListLabels method
func (m *MockTracker) ListLabels(ctx context.Context) ([]tracker.Label, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracker.Label), args.Error(1)
}

// SetIssueLabels mocks the SetIssueLabels method
func (m *MockTracker) SetIssueLabels(ctx context.Context, issue *tracker.Issue, labelIDs []string) error {
	args := m.Called(ctx, issue, labelIDs)
	return args.Error(0)
}

// Ensure MockTracker implements tracker.Tracker interface
var _ tracker.Tracker = (*MockTracker)(nil)
