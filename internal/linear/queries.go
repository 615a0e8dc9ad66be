package linear

// GraphQL documents sent to the Linear API. Values are always passed as variables.
const (
	issueQuery = `query Issue($id: String!) {
  issue(id: $id) {
    id
    identifier
    title
  }
}`

	issueLabelsQuery = `query IssueLabels($id: String!, $first: Int!, $after: String) {
  issue(id: $id) {
    labels(first: $first, after: $after) {
      nodes {
        id
        name
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

	workspaceLabelsQuery = `query WorkspaceLabels($first: Int!, $after: String) {
  issueLabels(first: $first, after: $after) {
    nodes {
      id
      name
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

	updateIssueLabelsMutation = `mutation UpdateIssueLabels($id: String!, $labelIds: [String!]!) {
  issueUpdate(id: $id, input: { labelIds: $labelIds }) {
    success
  }
}`
)
