package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghdash/pkg/dashboard"
	errs "github.com/matzehuels/ghdash/pkg/errors"
	"github.com/matzehuels/ghdash/pkg/integrations/github"
	"github.com/matzehuels/ghdash/pkg/session"
)

const testSecret = "test-secret"

// fakeBuilder validates the username like the real service and returns a
// canned result.
type fakeBuilder struct {
	mu   sync.Mutex
	reqs []dashboard.Request
	resp *dashboard.Response
	err  error
}

func (f *fakeBuilder) Build(_ context.Context, req dashboard.Request) (*dashboard.Response, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if err := errs.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeBuilder) last(t *testing.T) dashboard.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reqs) == 0 {
		t.Fatal("builder was not called")
	}
	return f.reqs[len(f.reqs)-1]
}

func testServer(b Builder) *Server {
	return New(b, Options{
		Logger:   log.New(io.Discard),
		Sessions: session.NewVerifier(testSecret),
	})
}

func okResponse() *dashboard.Response {
	return &dashboard.Response{
		User:        &github.Profile{Login: "octocat"},
		Languages:   map[string]int{"Go": 2},
		LastUpdated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestDashboardSuccess(t *testing.T) {
	b := &fakeBuilder{resp: okResponse()}
	srv := testServer(b)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/github/octocat", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Cache-Control"); got != "s-maxage=300, stale-while-revalidate" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}

	var resp dashboard.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.User == nil || resp.User.Login != "octocat" {
		t.Errorf("user = %+v", resp.User)
	}

	req := b.last(t)
	if req.Username != "octocat" || req.Refresh || req.UserCredential != "" {
		t.Errorf("request = %+v", req)
	}
}

func TestDashboardErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "empty username",
			path:       "/api/github/",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Username is required",
		},
		{
			name:       "no trailing slash",
			path:       "/api/github",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Username is required",
		},
		{
			name:       "whitespace username",
			path:       "/api/github/%20%20",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Username is required",
		},
		{
			name:       "bad credentials",
			path:       "/api/github/octocat",
			err:        errs.Upstream(github.OpProfile, 401, "Bad credentials"),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    dashboard.MsgBadCredentials,
		},
		{
			name:       "rate limited",
			path:       "/api/github/octocat",
			err:        errs.Upstream(github.OpRepositories, 403, "API rate limit exceeded for 1.2.3.4"),
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    dashboard.MsgRateLimited,
		},
		{
			name:       "missing token",
			path:       "/api/github/octocat",
			err:        errs.Configuration("Server configuration error: Missing GitHub token."),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Server configuration error: Missing GitHub token.",
		},
		{
			name:       "not found",
			path:       "/api/github/ghost",
			err:        errs.Upstream(github.OpProfile, 404, "Not Found"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "fetch user: Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(&fakeBuilder{resp: okResponse(), err: tt.err})
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeError(t, rec); got != tt.wantMsg {
				t.Errorf("error = %q, want %q", got, tt.wantMsg)
			}
			if rec.Header().Get("Cache-Control") != "" {
				t.Error("error responses must not be cacheable")
			}
		})
	}
}

func TestDashboardCacheBypass(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"no-cache", true},
		{"No-Store", true},
		{"max-age=0, no-cache", true},
		{"max-age=60", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			b := &fakeBuilder{resp: okResponse()}
			r := httptest.NewRequest(http.MethodGet, "/api/github/octocat", nil)
			if tt.header != "" {
				r.Header.Set("Cache-Control", tt.header)
			}
			testServer(b).ServeHTTP(httptest.NewRecorder(), r)
			if got := b.last(t).Refresh; got != tt.want {
				t.Errorf("Refresh = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashboardSession(t *testing.T) {
	valid, err := session.Sign(testSecret, session.Session{
		AccessToken: "gho_user",
		Login:       "octocat",
		ExpiresAt:   time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	forged, err := session.Sign("other-secret", session.Session{
		AccessToken: "gho_forged",
		ExpiresAt:   time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"anonymous", func(*http.Request) {}, ""},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, "gho_user"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: session.CookieName, Value: valid}) }, "gho_user"},
		{"forged", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+forged) }, ""},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBuilder{resp: okResponse()}
			r := httptest.NewRequest(http.MethodGet, "/api/github/octocat", nil)
			tt.setup(r)
			rec := httptest.NewRecorder()
			testServer(b).ServeHTTP(rec, r)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := b.last(t).UserCredential; got != tt.want {
				t.Errorf("UserCredential = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDashboardWithoutSessions(t *testing.T) {
	b := &fakeBuilder{resp: okResponse()}
	srv := New(b, Options{Logger: log.New(io.Discard)})

	r := httptest.NewRequest(http.MethodGet, "/api/github/octocat", nil)
	r.Header.Set("Authorization", "Bearer whatever")
	srv.ServeHTTP(httptest.NewRecorder(), r)

	if got := b.last(t).UserCredential; got != "" {
		t.Errorf("UserCredential = %q, want empty", got)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(&fakeBuilder{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(&fakeBuilder{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/github/octocat", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	testServer(&fakeBuilder{}).ServeHTTP(rec, r)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(background) = %q", got)
	}
}

type panicBuilder struct{}

func (panicBuilder) Build(context.Context, dashboard.Request) (*dashboard.Response, error) {
	panic("boom")
}

func TestPanicRecovery(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(panicBuilder{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/github/octocat", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	srv := testServer(&fakeBuilder{resp: okResponse()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, time.Second) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
