// Package linear implements tracker.Tracker on top of the Linear GraphQL API.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/douhashi/labeler/internal/logger"
	"github.com/douhashi/labeler/internal/tracker"
	"github.com/douhashi/labeler/internal/transport"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"golang.org/x/oauth2"
)

// DefaultEndpoint is the Linear GraphQL endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

// defaultPageSize matches the page size Linear's own tooling requests for label lists.
const defaultPageSize = 50

// Credentials holds exactly one of a personal API key or an OAuth access token.
type Credentials struct {
	// APIKey is sent as the raw Authorization header value.
	APIKey string
	// OAuthToken is sent as a Bearer token.
	OAuthToken string
}

// Client is a Linear API client implementing tracker.Tracker.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     logger.Logger
	pageSize   int
}

// Option configures a Client.
type Option func(*options)

type options struct {
	endpoint string
	base     http.RoundTripper
	logger   logger.Logger
	pageSize int
}

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithBaseTransport sets the transport under the auth and logging layers.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithLogger sets the logger used for request logging.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithPageSize sets the page size of paginated label queries.
func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// NewClient creates a new Linear client. Missing credentials are a configuration
// error and no request is made.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	o := &options{
		endpoint: DefaultEndpoint,
		base:     http.DefaultTransport,
		logger:   logger.NewNop(),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(o)
	}

	apiKey := strings.TrimSpace(creds.APIKey)
	oauthToken := strings.TrimSpace(creds.OAuthToken)
	if apiKey == "" && oauthToken == "" {
		return nil, tracker.ConfigurationError("Linear API key is required (set LINEAR_API_KEY)")
	}
	if o.endpoint == "" {
		o.endpoint = DefaultEndpoint
	}
	if o.pageSize <= 0 {
		o.pageSize = defaultPageSize
	}

	var rt http.RoundTripper = transport.NewLoggingRoundTripper(o.base, o.logger, "linear_api")
	if apiKey != "" {
		rt = transport.NewHeaderRoundTripper(rt, "Authorization", apiKey)
	} else {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: oauthToken}),
			Base:   rt,
		}
	}

	return &Client{
		endpoint:   o.endpoint,
		httpClient: &http.Client{Transport: rt},
		logger:     o.logger,
		pageSize:   o.pageSize,
	}, nil
}

// GetIssue fetches an issue by UUID or identifier (e.g. "ENG-123").
func (c *Client) GetIssue(ctx context.Context, issueID string) (*tracker.Issue, error) {
	var resp issueResponse
	err := c.do(ctx, issueQuery, map[string]interface{}{"id": issueID}, &resp)
	if err != nil {
		if tracker.IsNotFoundError(err) {
			return nil, tracker.NotFoundError("issue %s not found", issueID)
		}
		return nil, err
	}
	if resp.Issue == nil || resp.Issue.ID == "" {
		return nil, tracker.NotFoundError("issue %s not found", issueID)
	}

	return &tracker.Issue{
		ID:         resp.Issue.ID,
		Identifier: resp.Issue.Identifier,
		Title:      resp.Issue.Title,
	}, nil
}

// IssueLabels fetches every label currently applied to the issue.
func (c *Client) IssueLabels(ctx context.Context, issue *tracker.Issue) ([]tracker.Label, error) {
	var labels []tracker.Label
	var after string
	for {
		vars := map[string]interface{}{"id": issue.ID, "first": c.pageSize}
		if after != "" {
			vars["after"] = after
		}

		var resp issueLabelsResponse
		if err := c.do(ctx, issueLabelsQuery, vars, &resp); err != nil {
			if tracker.IsNotFoundError(err) {
				return nil, tracker.NotFoundError("issue %s not found", issue.Identifier)
			}
			return nil, err
		}
		if resp.Issue == nil {
			return nil, tracker.NotFoundError("issue %s not found", issue.Identifier)
		}

		labels = appendLabels(labels, resp.Issue.Labels.Nodes)
		if !resp.Issue.Labels.PageInfo.HasNextPage || resp.Issue.Labels.PageInfo.EndCursor == "" {
			return labels, nil
		}
		after = resp.Issue.Labels.PageInfo.EndCursor
	}
}

// ListLabels fetches the full workspace label catalog.
func (c *Client) ListLabels(ctx context.Context) ([]tracker.Label, error) {
	var labels []tracker.Label
	var after string
	for page := 1; ; page++ {
		vars := map[string]interface{}{"first": c.pageSize}
		if after != "" {
			vars["after"] = after
		}

		var resp workspaceLabelsResponse
		if err := c.do(ctx, workspaceLabelsQuery, vars, &resp); err != nil {
			return nil, err
		}

		labels = appendLabels(labels, resp.IssueLabels.Nodes)
		c.logger.Debug("linear_labels_page", "page", page, "count", len(resp.IssueLabels.Nodes))

		if !resp.IssueLabels.PageInfo.HasNextPage || resp.IssueLabels.PageInfo.EndCursor == "" {
			return labels, nil
		}
		after = resp.IssueLabels.PageInfo.EndCursor
	}
}

// SetIssueLabels replaces the issue's labels with labelIDs.
func (c *Client) SetIssueLabels(ctx context.Context, issue *tracker.Issue, labelIDs []string) error {
	if labelIDs == nil {
		labelIDs = []string{}
	}

	var resp issueUpdateResponse
	vars := map[string]interface{}{"id": issue.ID, "labelIds": labelIDs}
	if err := c.do(ctx, updateIssueLabelsMutation, vars, &resp); err != nil {
		return err
	}
	if !resp.IssueUpdate.Success {
		return &tracker.Error{
			Type:    tracker.ErrorTypeTransport,
			Message: fmt.Sprintf("issueUpdate for %s reported success=false", issue.Identifier),
		}
	}
	return nil
}

// GraphQLError is the errors array of a GraphQL response. Its message is the
// remote messages as sent, joined with "; ".
type GraphQLError struct {
	Errors gqlerror.List
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		if err != nil {
			msgs = append(msgs, err.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the decoded list to errors.As.
func (e *GraphQLError) Unwrap() error {
	return e.Errors
}

// do posts a GraphQL document and decodes its data into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tracker.TransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return tracker.TransportError(fmt.Errorf("reading response: %w", err))
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		if resp.StatusCode >= 400 {
			return tracker.TransportError(fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
		}
		return tracker.TransportError(fmt.Errorf("decoding response: %w", err))
	}

	if len(gqlResp.Errors) > 0 {
		gqlErr := &GraphQLError{Errors: gqlResp.Errors}
		if isEntityNotFound(gqlResp.Errors) {
			return &tracker.Error{Type: tracker.ErrorTypeNotFound, Err: gqlErr}
		}
		return tracker.TransportError(gqlErr)
	}

	if resp.StatusCode >= 400 {
		return tracker.TransportError(fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	if out != nil && len(gqlResp.Data) > 0 {
		if err := json.Unmarshal(gqlResp.Data, out); err != nil {
			return tracker.TransportError(fmt.Errorf("decoding data: %w", err))
		}
	}

	return nil
}

// isEntityNotFound reports whether every error is Linear's "Entity not found" error.
func isEntityNotFound(errs gqlerror.List) bool {
	for _, e := range errs {
		if e == nil || !strings.Contains(strings.ToLower(e.Message), "not found") {
			return false
		}
	}
	return true
}

func appendLabels(dst []tracker.Label, nodes []labelNode) []tracker.Label {
	for _, n := range nodes {
		dst = append(dst, tracker.Label{ID: n.ID, Name: n.Name})
	}
	return dst
}

var _ tracker.Tracker = (*Client)(nil)
