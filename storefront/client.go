package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
)

// Client speaks the hosted Storefront GraphQL API: one document plus
// variables in, the raw data payload out. Typed decoding happens per query
// in this package.
type Client struct {
	gql   *graphql.Client
	token string
}

func NewClient(endpoint, token string) *Client {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	return &Client{
		gql:   graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		token: token,
	}
}

// Do executes one GraphQL document and returns the decoded data payload.
func (c *Client) Do(ctx context.Context, document string, vars map[string]interface{}) (map[string]interface{}, error) {
	req := graphql.NewRequest(document)
	for k, v := range vars {
		req.Var(k, v)
	}
	if c.token != "" {
		req.Header.Set("X-Storefront-Access-Token", c.token)
	}
	var out map[string]interface{}
	if err := c.gql.Run(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
