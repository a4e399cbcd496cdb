package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoData is returned when a GraphQL response has neither errors nor data.
var ErrNoData = errors.New("graphql response has no data")

// GraphQLError carries the messages of a GraphQL "errors" array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GraphQL posts query with variables to url and decodes the "data" member of
// the response into v. A non-empty "errors" array yields a [*GraphQLError];
// a missing or null "data" yields [ErrNoData].
func (c *Client) GraphQL(ctx context.Context, url string, headers map[string]string, query string, variables map[string]any, v any) error {
	var resp graphQLResponse
	if err := c.PostJSON(ctx, url, headers, graphQLRequest{Query: query, Variables: variables}, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return &GraphQLError{Messages: msgs}
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return ErrNoData
	}
	return json.Unmarshal(resp.Data, v)
}
