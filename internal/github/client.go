// Package github implements tracker.Tracker on top of GitHub issues.
//
// GitHub addresses labels by name, so the label ids handled by this backend are label names.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/douhashi/labeler/internal/logger"
	"github.com/douhashi/labeler/internal/tracker"
	"github.com/douhashi/labeler/internal/transport"
	"github.com/google/go-github/v50/github"
	"golang.org/x/oauth2"
)

// IssueService defines the subset of the GitHub Issues API used by Client
type IssueService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
	ListLabelsByIssue(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	ReplaceLabelsForIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
}

// Config はGitHubバックエンドの設定
type Config struct {
	Token string
	// Repository is the default "owner/repo" for issue ids without one.
	Repository string
	// BaseURL is the API root for GitHub Enterprise Server; empty means github.com.
	BaseURL string
	Logger  logger.Logger
}

// Client はGitHub Issuesを対象にしたtracker.Tracker実装
type Client struct {
	issues      IssueService
	defaultRepo *repoRef
	// catalogRepo is the repository of the last fetched issue; its labels form the catalog.
	catalogRepo *repoRef
	logger      logger.Logger
}

// NewClient は新しいGitHubクライアントを作成する
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, tracker.ConfigurationError("GitHub token is required (set GITHUB_TOKEN)")
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   transport.NewLoggingRoundTripper(http.DefaultTransport, log, "github_api"),
		},
	}

	gh := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		var err error
		gh, err = github.NewEnterpriseClient(cfg.BaseURL, cfg.BaseURL, httpClient)
		if err != nil {
			return nil, tracker.ConfigurationError("invalid GitHub base URL %q: %v", cfg.BaseURL, err)
		}
	}

	return NewClientWithService(gh.Issues, cfg.Repository, log)
}

// NewClientWithService creates a Client over an arbitrary IssueService.
func NewClientWithService(issues IssueService, repository string, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Client{issues: issues, logger: log}
	if repository != "" {
		owner, repo, ok := splitRepository(repository)
		if !ok {
			return nil, tracker.ConfigurationError("invalid GitHub repository %q (want owner/repo)", repository)
		}
		c.defaultRepo = &repoRef{owner: owner, repo: repo}
	}
	return c, nil
}

// GetIssue fetches an issue by "owner/repo#123", "#123" or "123".
func (c *Client) GetIssue(ctx context.Context, issueID string) (*tracker.Issue, error) {
	ref, err := c.parseIssueRef(issueID)
	if err != nil {
		return nil, err
	}

	issue, resp, err := c.issues.Get(ctx, ref.owner, ref.repo, ref.number)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, tracker.NotFoundError("issue %s not found", issueID)
		}
		return nil, tracker.TransportError(err)
	}
	if issue == nil {
		return nil, tracker.NotFoundError("issue %s not found", issueID)
	}
	if issue.IsPullRequest() {
		c.logger.Debug("github_issue_is_pull_request", "issue", ref.String())
	}
	c.catalogRepo = &repoRef{owner: ref.owner, repo: ref.repo}

	return &tracker.Issue{
		ID:         ref.String(),
		Identifier: ref.String(),
		Title:      issue.GetTitle(),
	}, nil
}

// IssueLabels fetches the labels currently applied to the issue.
func (c *Client) IssueLabels(ctx context.Context, issue *tracker.Issue) ([]tracker.Label, error) {
	ref, err := c.parseIssueRef(issue.ID)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: 100}
	var labels []tracker.Label
	for {
		page, resp, err := c.issues.ListLabelsByIssue(ctx, ref.owner, ref.repo, ref.number, opts)
		if err != nil {
			if isNotFound(resp, err) {
				return nil, tracker.NotFoundError("issue %s not found", issue.Identifier)
			}
			return nil, tracker.TransportError(err)
		}
		labels = appendLabels(labels, page)
		if resp == nil || resp.NextPage == 0 {
			return labels, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListLabels fetches every label of the repository of the last fetched issue,
// falling back to the default repository.
func (c *Client) ListLabels(ctx context.Context) ([]tracker.Label, error) {
	switch {
	case c.catalogRepo != nil:
		return c.listRepoLabels(ctx, *c.catalogRepo)
	case c.defaultRepo != nil:
		return c.listRepoLabels(ctx, *c.defaultRepo)
	default:
		return nil, tracker.ConfigurationError("GitHub repository is required to list labels (set GITHUB_REPOSITORY)")
	}
}

// SetIssueLabels replaces the issue's labels. labelIDs are label names.
func (c *Client) SetIssueLabels(ctx context.Context, issue *tracker.Issue, labelIDs []string) error {
	ref, err := c.parseIssueRef(issue.ID)
	if err != nil {
		return err
	}
	if labelIDs == nil {
		labelIDs = []string{}
	}

	if _, _, err := c.issues.ReplaceLabelsForIssue(ctx, ref.owner, ref.repo, ref.number, labelIDs); err != nil {
		return tracker.TransportError(err)
	}
	return nil
}

func (c *Client) listRepoLabels(ctx context.Context, ref repoRef) ([]tracker.Label, error) {
	opts := &github.ListOptions{PerPage: 100}
	var labels []tracker.Label
	for {
		page, resp, err := c.issues.ListLabels(ctx, ref.owner, ref.repo, opts)
		if err != nil {
			return nil, tracker.TransportError(err)
		}
		labels = appendLabels(labels, page)
		if resp == nil || resp.NextPage == 0 {
			return labels, nil
		}
		opts.Page = resp.NextPage
	}
}

// repoRef identifies a repository and, for issues, a number within it.
type repoRef struct {
	owner  string
	repo   string
	number int
}

func (r repoRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.owner, r.repo, r.number)
}

// parseIssueRef parses "owner/repo#123", "#123" or "123".
func (c *Client) parseIssueRef(issueID string) (repoRef, error) {
	id := strings.TrimSpace(issueID)

	var ref repoRef
	numPart := id
	if i := strings.LastIndex(id, "#"); i >= 0 {
		numPart = id[i+1:]
		if repoPart := id[:i]; repoPart != "" {
			owner, repo, ok := splitRepository(repoPart)
			if !ok {
				return repoRef{}, tracker.ConfigurationError("invalid GitHub issue id %q (want owner/repo#number)", issueID)
			}
			ref.owner, ref.repo = owner, repo
		}
	}

	number, err := strconv.Atoi(numPart)
	if err != nil || number <= 0 {
		return repoRef{}, tracker.ConfigurationError("invalid GitHub issue id %q (want owner/repo#number)", issueID)
	}
	ref.number = number

	if ref.owner == "" {
		if c.defaultRepo == nil {
			return repoRef{}, tracker.ConfigurationError("GitHub repository is required for issue id %q (set GITHUB_REPOSITORY)", issueID)
		}
		ref.owner, ref.repo = c.defaultRepo.owner, c.defaultRepo.repo
	}
	return ref, nil
}

func splitRepository(s string) (owner, repo string, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// isNotFound checks whether a go-github call failed with 404
func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode == http.StatusNotFound
	}
	return false
}

func appendLabels(dst []tracker.Label, labels []*github.Label) []tracker.Label {
	for _, l := range labels {
		if l == nil {
			continue
		}
		dst = append(dst, tracker.Label{ID: l.GetName(), Name: l.GetName()})
	}
	return dst
}

var _ tracker.Tracker = (*Client)(nil)
