package github

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/matzehuels/ghdash/pkg/cache"
	errs "github.com/matzehuels/ghdash/pkg/errors"
	"github.com/matzehuels/ghdash/pkg/integrations"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

// perPage is the REST page size; a shorter page ends pagination.
const perPage = 100

// Operation names, used in error messages and degradation events.
const (
	OpProfile       = "fetch user"
	OpRepositories  = "fetch repositories"
	OpCalendar      = "fetch contribution calendar"
	OpTotals        = "fetch contribution totals"
	OpOrganizations = "fetch organizations"
)

// Options configures a Client.
type Options struct {
	BaseURL       string        // REST root, default DefaultBaseURL
	GraphQLURL    string        // default BaseURL + "/graphql"
	FallbackToken string        // application token used when a request has none
	Cache         cache.Cache   // nil disables caching
	TTL           time.Duration // default cache.DefaultTTL
	HTTPClient    *http.Client  // default integrations.NewHTTPClient
}

// Client fetches dashboard data from GitHub.
// It handles HTTP requests with caching, credential selection and error mapping.
type Client struct {
	*integrations.Client
	restURL    *url.URL
	graphqlURL string
	fallback   string
}

// NewClient creates a GitHub API client.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimSuffix(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	restURL, err := url.Parse(base + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	graphqlURL := opts.GraphQLURL
	if graphqlURL == "" {
		graphqlURL = base + "/graphql"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	shared := integrations.NewClient(opts.Cache, ttl, headers).WithHTTPClient(opts.HTTPClient)

	return &Client{
		Client:     shared,
		restURL:    restURL,
		graphqlURL: graphqlURL,
		fallback:   strings.TrimSpace(opts.FallbackToken),
	}, nil
}

// ResolveCredential picks the credential for a request carrying the given
// user token (which may be empty).
func (c *Client) ResolveCredential(user string) Credential {
	return ResolveCredential(user, c.fallback)
}

// HasFallback reports whether an application token is configured.
func (c *Client) HasFallback() bool {
	return c.fallback != ""
}

// rest returns a go-github client authenticated with cred.
func (c *Client) rest(cred Credential) *gh.Client {
	client := gh.NewClient(c.HTTPClient())
	if cred.Token != "" {
		client = client.WithAuthToken(cred.Token)
	}
	client.BaseURL = c.restURL
	return client
}

// upstreamError converts a failed call into an *errs.UpstreamError carrying
// the HTTP status and the most specific message available.
func upstreamError(op string, err error) error {
	ue := &errs.UpstreamError{Op: op, Message: err.Error(), Cause: err}

	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		respErr  *gh.ErrorResponse
		status   *integrations.StatusError
		gqlErr   *integrations.GraphQLError
	)
	switch {
	case errors.As(err, &rateErr):
		ue.Status = responseStatus(rateErr.Response)
		ue.Message = rateErr.Message
	case errors.As(err, &abuseErr):
		ue.Status = responseStatus(abuseErr.Response)
		ue.Message = abuseErr.Message
	case errors.As(err, &respErr):
		ue.Status = responseStatus(respErr.Response)
		ue.Message = respErr.Message
		if ue.Message == "" && respErr.Response != nil {
			ue.Message = http.StatusText(respErr.Response.StatusCode)
		}
	case errors.As(err, &status):
		ue.Status = status.StatusCode
		ue.Message = status.Error()
	case errors.As(err, &gqlErr):
		ue.Status = http.StatusOK
		ue.Message = strings.Join(gqlErr.Messages, "; ")
	}
	return ue
}

func responseStatus(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func isUnauthorized(err error) bool {
	var status *integrations.StatusError
	return errors.As(err, &status) && status.StatusCode == http.StatusUnauthorized
}
