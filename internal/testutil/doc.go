// Package testutil provides common test utilities for labeler components.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify mock of tracker.Tracker
//   - helpers: observable logger and environment isolation
//
// # Example
//
//	m := mocks.NewMockTracker().
//	    WithIssue(&tracker.Issue{ID: "uuid-1", Identifier: "ENG-1"}, nil).
//	    WithCatalog([]tracker.Label{{ID: "L1", Name: "Bug"}})
//	m.On("SetIssueLabels", mock.Anything, mock.Anything, []string{"L1"}).Return(nil)
//
//	log, recorded := helpers.NewObservedLogger(zapcore.DebugLevel)
package testutil
