package linear

import (
	"encoding/json"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

type issueNode struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

type labelNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type labelConnection struct {
	Nodes    []labelNode `json:"nodes"`
	PageInfo pageInfo    `json:"pageInfo"`
}

type issueResponse struct {
	Issue *issueNode `json:"issue"`
}

type issueLabelsResponse struct {
	Issue *struct {
		Labels labelConnection `json:"labels"`
	} `json:"issue"`
}

type workspaceLabelsResponse struct {
	IssueLabels labelConnection `json:"issueLabels"`
}

type issueUpdateResponse struct {
	IssueUpdate struct {
		Success bool `json:"success"`
	} `json:"issueUpdate"`
}
