package integrations

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/ghdash/pkg/observability"
)

// NewHTTPClient creates an HTTP client for upstream requests.
//
// Every request made through it is reported to the registered
// [observability.HTTPHooks]. If perMinute is positive, requests are also
// spaced to at most perMinute per minute (with a burst of perMinute/10, at
// least 1); waiting honours the request context.
func NewHTTPClient(timeout time.Duration, perMinute int) *http.Client {
	t := &transport{base: http.DefaultTransport}
	if perMinute > 0 {
		burst := max(perMinute/10, 1)
		t.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60), burst)
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

type transport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	host, path := req.URL.Host, req.URL.Path

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			observability.HTTP().OnError(ctx, req.Method, host, path, err)
			return nil, err
		}
	}

	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}
