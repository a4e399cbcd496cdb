package refresh

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/matzehuels/ghdash/pkg/dashboard"
	"github.com/matzehuels/ghdash/pkg/integrations"
)

// ErrNoUsername is returned by HTTPFetcher when no username is set.
var ErrNoUsername = errors.New("no username provided")

// HTTPFetcher fetches the payload from a ghdash server. Every request asks
// the server to bypass its upstream cache.
type HTTPFetcher struct {
	BaseURL  string       // server root, e.g. http://localhost:8080
	Username string       // GitHub login
	Session  string       // optional session token sent as a bearer token
	Client   *http.Client // default integrations.NewHTTPClient

	once   sync.Once
	client *integrations.Client
}

// Fetch implements Fetcher. Non-2xx responses become errors carrying the
// server's {"error": "..."} message.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*dashboard.Response, error) {
	if strings.TrimSpace(f.Username) == "" {
		return nil, ErrNoUsername
	}
	f.once.Do(func() {
		f.client = integrations.NewClient(nil, 0, map[string]string{
			"Accept":        "application/json",
			"Cache-Control": "no-cache",
		}).WithHTTPClient(f.Client)
	})

	var headers map[string]string
	if f.Session != "" {
		headers = map[string]string{"Authorization": "Bearer " + f.Session}
	}

	endpoint := strings.TrimSuffix(f.BaseURL, "/") + "/api/github/" + url.PathEscape(strings.TrimSpace(f.Username))
	var resp dashboard.Response
	if err := f.client.Get(ctx, endpoint, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
