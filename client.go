package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const linearAPIEndpoint = "https://api.linear.app/graphql"

// Linear rejects documents far below this size on complexity grounds, so
// anything longer is a bug on our side.
const maxQueryLength = 50000

// linearAPI is everything the command handlers need from Linear.
type linearAPI interface {
	issueFinder
	labelLister
	stateLister
	viewerLookup

	Users(ctx context.Context) (json.RawMessage, error)
	Teams(ctx context.Context) (json.RawMessage, error)
	Projects(ctx context.Context) (json.RawMessage, error)
	Issues(ctx context.Context, filter IssueFilter, limit int) (json.RawMessage, error)

	CreateIssue(ctx context.Context, input IssueInput) (*MutationResult, error)
	UpdateIssue(ctx context.Context, id string, input IssueUpdate) (*MutationResult, error)
	DeleteIssue(ctx context.Context, id string) (*MutationResult, error)
	CreateComment(ctx context.Context, issueID, body string) (*MutationResult, error)
}

// GraphQLRequest represents a GraphQL request payload
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response payload
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message    string `json:"message"`
	Path       []any  `json:"path,omitempty"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions,omitempty"`
}

const authErrorCode = "AUTHENTICATION_ERROR"

// Client talks to the Linear GraphQL endpoint. One request per call, no
// retries.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	log      zerolog.Logger
}

func newClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: cfg.Timeout},
		log:      log,
	}
}

// execute performs a GraphQL request and returns the raw response data
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}
	if len(query) > maxQueryLength {
		return nil, errors.New("query exceeds maximum length (possible complexity issue)")
	}

	body, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	c.log.Debug().Str("operation", operationName(query)).Int("variables", len(variables)).Msg("graphql request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to execute request"), errAPI)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to read response"), errAPI)
	}

	c.log.Debug().Int("status", resp.StatusCode).Int("bytes", len(respBody)).Msg("graphql response")

	var gqlResp GraphQLResponse
	decodeErr := json.Unmarshal(respBody, &gqlResp)

	if len(gqlResp.Errors) > 0 {
		err := errors.Newf("%s", joinGraphQLErrors(gqlResp.Errors))
		if resp.StatusCode == http.StatusUnauthorized || gqlResp.Errors[0].Extensions.Code == authErrorCode {
			return nil, errors.Mark(err, errAuth)
		}
		return nil, errors.Mark(err, errAPI)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errors.Mark(errors.Newf("API returned status %d: %s", resp.StatusCode, respBody), errAuth)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Mark(errors.Newf("API returned status %d: %s", resp.StatusCode, respBody), errAPI)
	}
	if decodeErr != nil {
		return nil, errors.Mark(errors.Wrap(decodeErr, "failed to unmarshal response"), errAPI)
	}

	return gqlResp.Data, nil
}

func joinGraphQLErrors(errs []GraphQLError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// operationName extracts the operation name from a document for logging.
func operationName(query string) string {
	fields := strings.Fields(query)
	if len(fields) < 2 || fields[1] == "{" {
		return "anonymous"
	}
	name, _, _ := strings.Cut(fields[1], "(")
	return name
}

// decodeData unmarshals the data payload into out.
func decodeData(data json.RawMessage, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to unmarshal data"), errAPI)
	}
	return nil
}

func (c *Client) Viewer(ctx context.Context) (*User, error) {
	data, err := c.execute(ctx, buildViewerIDQuery(), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Viewer User `json:"viewer"`
	}
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	return &resp.Viewer, nil
}

// nodes runs an argument-less connection query and returns the nodes array
// of the named top-level field as is.
func (c *Client) nodes(ctx context.Context, query, field string) (json.RawMessage, error) {
	data, err := c.execute(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	var resp map[string]struct {
		Nodes json.RawMessage `json:"nodes"`
	}
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	return resp[field].Nodes, nil
}

func (c *Client) Users(ctx context.Context) (json.RawMessage, error) {
	return c.nodes(ctx, buildUsersQuery(), "users")
}

func (c *Client) Teams(ctx context.Context) (json.RawMessage, error) {
	return c.nodes(ctx, buildTeamsQuery(), "teams")
}

func (c *Client) Projects(ctx context.Context) (json.RawMessage, error) {
	return c.nodes(ctx, buildProjectsQuery(), "projects")
}

func (c *Client) Issues(ctx context.Context, filter IssueFilter, limit int) (json.RawMessage, error) {
	variables := map[string]interface{}{
		"first":   limit,
		"orderBy": "updatedAt",
	}
	if f := buildIssueFilter(filter); f != nil {
		variables["filter"] = f
	}
	data, err := c.execute(ctx, buildListIssuesQuery(), variables)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Issues struct {
			Nodes json.RawMessage `json:"nodes"`
		} `json:"issues"`
	}
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	return resp.Issues.Nodes, nil
}

// IssueByID returns the issue record, or nil when the API has no such issue.
func (c *Client) IssueByID(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := c.execute(ctx, buildGetIssueQuery(), map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Issue json.RawMessage `json:"issue"`
	}
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	if isNull(resp.Issue) {
		return nil, nil
	}
	return resp.Issue, nil
}

// IssueByNumber returns the issue with the given team key and number, or
// nil when there is none.
func (c *Client) IssueByNumber(ctx context.Context, teamKey string, number int) (json.RawMessage, error) {
	variables := map[string]interface{}{
		"teamKey": teamKey,
		"number":  number,
	}
	data, err := c.execute(ctx, buildGetIssueByNumberQuery(), variables)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Issues struct {
			Nodes []json.RawMessage `json:"nodes"`
		} `json:"issues"`
	}
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	if len(resp.Issues.Nodes) == 0 {
		return nil, nil
	}
	return resp.Issues.Nodes[0], nil
}

func (c *Client) TeamLabels(ctx context.Context, teamID string) ([]Label, error) {
	data, err := c.execute(ctx, buildTeamLabelsQuery(), map[string]interface{}{"teamId": teamID})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Team *struct {
			Labels struct {
				Nodes []Label `json:"nodes"`
			} `json:"labels"`
		} `json:"team"`
	}
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, notFoundErrorf("Team not found: %s", teamID)
	}
	return resp.Team.Labels.Nodes, nil
}

func (c *Client) TeamStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	data, err := c.execute(ctx, buildWorkflowStatesQuery(), map[string]interface{}{"teamId": teamID})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Team *struct {
			States struct {
				Nodes []WorkflowState `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, notFoundErrorf("Team not found: %s", teamID)
	}
	return resp.Team.States.Nodes, nil
}

// mutate runs a mutation and extracts the success flag and the entity under
// entityField from the named payload.
func (c *Client) mutate(ctx context.Context, query string, variables map[string]interface{}, payloadField, entityField string) (*MutationResult, error) {
	data, err := c.execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	var resp map[string]map[string]json.RawMessage
	if err := decodeData(data, &resp); err != nil {
		return nil, err
	}
	payload := resp[payloadField]
	result := &MutationResult{}
	if raw, ok := payload["success"]; ok {
		if err := decodeData(raw, &result.Success); err != nil {
			return nil, err
		}
	}
	if entityField != "" && !isNull(payload[entityField]) {
		result.Entity = payload[entityField]
	}
	return result, nil
}

func (c *Client) CreateIssue(ctx context.Context, input IssueInput) (*MutationResult, error) {
	return c.mutate(ctx, buildCreateIssueMutation(), map[string]interface{}{"input": input}, "issueCreate", "issue")
}

func (c *Client) UpdateIssue(ctx context.Context, id string, input IssueUpdate) (*MutationResult, error) {
	variables := map[string]interface{}{
		"id":    id,
		"input": input,
	}
	return c.mutate(ctx, buildUpdateIssueMutation(), variables, "issueUpdate", "issue")
}

func (c *Client) DeleteIssue(ctx context.Context, id string) (*MutationResult, error) {
	return c.mutate(ctx, buildDeleteIssueMutation(), map[string]interface{}{"id": id}, "issueDelete", "")
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
