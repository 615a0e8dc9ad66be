package labeler

import (
	"context"
	"errors"
	"testing"

	"github.com/douhashi/labeler/internal/testutil/helpers"
	"github.com/douhashi/labeler/internal/testutil/mocks"
	"github.com/douhashi/labeler/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestApplier_Apply(t *testing.T) {
	issue1 := &tracker.Issue{ID: "uuid-1", Identifier: "ISSUE-1", Title: "first"}
	issue2 := &tracker.Issue{ID: "uuid-2", Identifier: "ISSUE-2", Title: "second"}

	tests := []struct {
		name       string
		input      Input
		setupMocks func(*mocks.MockTracker)
		wantStatus Status
		wantIDs    []string
		wantMsg    []string
		wantWrites int
		checkErr   func(*testing.T, error)
	}{
		{
			name:  "正常系: ラベルを追加して既存のラベルを保持する",
			input: Input{LabelName: "Priority", IssueID: "ISSUE-1"},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue1, []tracker.Label{{ID: "L1", Name: "bug"}}).
					WithCatalog([]tracker.Label{{ID: "L1", Name: "bug"}, {ID: "L2", Name: "priority"}})
				m.On("SetIssueLabels", mock.Anything, issue1, []string{"L1", "L2"}).Return(nil).Once()
			},
			wantStatus: StatusUpdated,
			wantWrites: 1,
			wantIDs:    []string{"L1", "L2"},
			wantMsg:    []string{"Priority", "ISSUE-1"},
		},
		{
			name:  "正常系: 大文字小文字を区別せずにマッチする",
			input: Input{LabelName: "Bug", IssueID: "ISSUE-1"},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue1, nil).
					WithCatalog([]tracker.Label{{ID: "L9", Name: "bug"}})
				m.On("SetIssueLabels", mock.Anything, issue1, []string{"L9"}).Return(nil).Once()
			},
			wantStatus: StatusUpdated,
			wantWrites: 1,
			wantIDs:    []string{"L9"},
		},
		{
			name:  "正常系: short-circuitなしでは既存ラベルでも重複なしで書き込む",
			input: Input{LabelName: "URGENT", IssueID: "ISSUE-2"},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue2, []tracker.Label{{ID: "L3", Name: "urgent"}}).
					WithCatalog([]tracker.Label{{ID: "L3", Name: "urgent"}})
				m.On("SetIssueLabels", mock.Anything, issue2, []string{"L3"}).Return(nil).Once()
			},
			wantStatus: StatusUpdated,
			wantWrites: 1,
			wantIDs:    []string{"L3"},
		},
		{
			name:  "正常系: short-circuitで書き込みをスキップする",
			input: Input{LabelName: "URGENT", IssueID: "ISSUE-2", SkipIfPresent: true},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue2, []tracker.Label{{ID: "L3", Name: "urgent"}})
			},
			wantStatus: StatusSkipped,
			wantIDs:    []string{"L3"},
			wantMsg:    []string{"urgent", "ISSUE-2"},
		},
		{
			name:  "正常系: short-circuit有効でもラベルがなければ書き込む",
			input: Input{LabelName: "Priority", IssueID: "ISSUE-1", SkipIfPresent: true},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue1, []tracker.Label{{ID: "L1", Name: "bug"}}).
					WithCatalog([]tracker.Label{{ID: "L2", Name: "priority"}})
				m.On("SetIssueLabels", mock.Anything, issue1, []string{"L1", "L2"}).Return(nil).Once()
			},
			wantStatus: StatusUpdated,
			wantWrites: 1,
			wantIDs:    []string{"L1", "L2"},
		},
		{
			name:  "異常系: Issueが見つからない",
			input: Input{LabelName: "bug", IssueID: "NOPE-1"},
			setupMocks: func(m *mocks.MockTracker) {
				m.On("GetIssue", mock.Anything, "NOPE-1").Return(nil, tracker.NotFoundError("issue NOPE-1 not found"))
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, tracker.IsNotFoundError(err))
				assert.Contains(t, err.Error(), "NOPE-1")
			},
		},
		{
			name:  "異常系: Issueがnilで返された場合もnot found",
			input: Input{LabelName: "bug", IssueID: "NOPE-2"},
			setupMocks: func(m *mocks.MockTracker) {
				m.On("GetIssue", mock.Anything, "NOPE-2").Return(nil, nil)
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, tracker.IsNotFoundError(err))
			},
		},
		{
			name:  "異常系: ラベルがカタログにない",
			input: Input{LabelName: "missing", IssueID: "ISSUE-1"},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue1, nil).WithCatalog([]tracker.Label{{ID: "L1", Name: "bug"}})
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, tracker.IsNotFoundError(err))
				assert.Contains(t, err.Error(), `"missing"`)
			},
		},
		{
			name:  "異常系: 通信エラーはそのまま返される",
			input: Input{LabelName: "bug", IssueID: "ISSUE-1"},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue1, nil)
				m.On("ListLabels", mock.Anything).Return(nil, tracker.TransportError(errors.New("401 Unauthorized")))
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, tracker.IsTransportError(err))
				assert.Equal(t, "401 Unauthorized", err.Error())
			},
		},
		{
			name:  "異常系: 書き込みの失敗",
			input: Input{LabelName: "bug", IssueID: "ISSUE-1"},
			setupMocks: func(m *mocks.MockTracker) {
				m.WithIssue(issue1, nil).WithCatalog([]tracker.Label{{ID: "L1", Name: "bug"}})
				m.On("SetIssueLabels", mock.Anything, issue1, []string{"L1"}).
					Return(tracker.TransportError(errors.New("service unavailable"))).Once()
			},
			wantWrites: 1,
			checkErr: func(t *testing.T, err error) {
				assert.True(t, tracker.IsTransportError(err))
				assert.Equal(t, "service unavailable", err.Error())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockTracker()
			tt.setupMocks(m)

			applier := New(m, nil)
			result, err := applier.Apply(context.Background(), tt.input)

			if tt.checkErr != nil {
				require.Error(t, err)
				assert.Nil(t, result)
				tt.checkErr(t, err)
				m.AssertNumberOfCalls(t, "SetIssueLabels", tt.wantWrites)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantIDs, result.LabelIDs)
			assert.Equal(t, tt.input.LabelName, result.LabelName)
			assert.Equal(t, tt.input.IssueID, result.IssueID)
			for _, want := range tt.wantMsg {
				assert.Contains(t, result.Message, want)
			}
			m.AssertExpectations(t)
			m.AssertNumberOfCalls(t, "SetIssueLabels", tt.wantWrites)
			if tt.wantStatus == StatusSkipped {
				m.AssertNotCalled(t, "ListLabels", mock.Anything)
			}
		})
	}
}

func TestApplier_Apply_MissingInput(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{name: "label name", input: Input{IssueID: "ISSUE-1"}},
		{name: "issue id", input: Input{LabelName: "bug"}},
		{name: "whitespace only", input: Input{LabelName: "  ", IssueID: "\t"}},
		{name: "both", input: Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockTracker()

			_, err := New(m, nil).Apply(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, tracker.IsConfigurationError(err))
			// リモート呼び出しは一切行われない
			assert.Empty(t, m.Calls)
		})
	}
}

func TestApplier_Apply_Logging(t *testing.T) {
	t.Run("成功時にinfoログが出力される", func(t *testing.T) {
		log, recorded := helpers.NewObservedLogger(zapcore.DebugLevel)
		issue := &tracker.Issue{ID: "uuid-1", Identifier: "ISSUE-1"}
		m := mocks.NewMockTracker().
			WithIssue(issue, nil).
			WithCatalog([]tracker.Label{{ID: "L2", Name: "priority"}})
		m.On("SetIssueLabels", mock.Anything, issue, []string{"L2"}).Return(nil)

		_, err := New(m, log).Apply(context.Background(), Input{LabelName: "priority", IssueID: "ISSUE-1"})
		require.NoError(t, err)

		fields := helpers.Fields(recorded, "label_applied")
		require.NotNil(t, fields)
		assert.Equal(t, "labeler", fields["component"])
		assert.Equal(t, "ISSUE-1", fields["issue_id"])
		assert.Equal(t, "priority", fields["label"])
	})
}

func TestAppendUnique(t *testing.T) {
	ids := []string{"a", "b"}

	assert.Equal(t, []string{"a", "b", "c"}, appendUnique(ids, "c"))
	assert.Equal(t, []string{"a", "b"}, appendUnique(ids, "a"))
	assert.Equal(t, []string{"x"}, appendUnique(nil, "x"))
	assert.Equal(t, []string{"a", "b"}, ids)
}
