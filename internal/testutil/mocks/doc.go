// Package mocks provides testify/mock implementations of the interfaces used across labeler.
//
// # Available Mocks
//
//   - MockTracker: Mock for tracker.Tracker interface
//
// # Example
//
//	func TestSomething(t *testing.T) {
//	    issue := &tracker.Issue{ID: "uuid-1", Identifier: "ENG-1"}
//	    m := mocks.NewMockTracker().
//	        WithIssue(issue, []tracker.Label{{ID: "L1", Name: "bug"}}).
//	        WithCatalog([]tracker.Label{{ID: "L2", Name: "priority"}})
//	    m.On("SetIssueLabels", mock.Anything, issue, []string{"L1", "L2"}).Return(nil)
//
//	    applier := labeler.New(m, logger.NewNop())
//	    // ...
//	    m.AssertExpectations(t)
//	}
package mocks
