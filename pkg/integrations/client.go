package integrations

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/ghdash/pkg/cache"
	"github.com/matzehuels/ghdash/pkg/observability"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 10 * time.Second

// ErrNetwork is returned for transport failures (timeouts, connection errors).
var ErrNetwork = errors.New("network error")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Status     string // Status text, e.g. "Not Found"
	Message    string // The API's own error text, if the body had one
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Status
}

// Client provides shared HTTP functionality for upstream API clients.
// It handles caching, common request headers, and status checking.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client with the given cache, entry TTL and default
// headers. Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed. A nil cache
// disables caching.
func NewClient(c cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(DefaultTimeout, 0),
		cache:   c,
		ttl:     ttl,
		headers: headers,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// HTTPClient returns the underlying HTTP client so SDK clients can share its
// transport, timeout and rate limiter.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
// Failed fetches are never cached.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	kind := string(cache.KindOf(key))
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok && json.Unmarshal(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, kind)
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, kind)
	}
	if err := fetch(); err != nil {
		return err
	}
	// Unencodable values are served but not cached.
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if c.cache.Set(ctx, key, data, c.ttl) == nil {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Request-specific headers override client defaults for the same key.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// PostJSON JSON-encodes payload, POSTs it to url and decodes the response
// into v.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, payload, v any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	h := map[string]string{"Content-Type": "application/json"}
	for k, val := range headers {
		h[k] = val
	}
	body, err := c.doRequest(ctx, http.MethodPost, url, h, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, method, url string, headers map[string]string, body io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	e := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
	}
	// GitHub reports failures in "message"; the dashboard API in "error".
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &apiErr) == nil {
		e.Message = cmp.Or(apiErr.Message, apiErr.Error)
	}
	return e
}

// statusText returns the reason phrase of resp ("Not Found" for
// "404 Not Found"), falling back to the standard text for the code.
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
