package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestVerifyRoundTrip(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	raw, err := Sign(testSecret, Session{AccessToken: "gho_abc", Login: "octocat", ExpiresAt: exp})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	sess, err := NewVerifier(testSecret).Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sess.AccessToken != "gho_abc" || sess.Login != "octocat" {
		t.Errorf("session = %+v", sess)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, exp)
	}
	if !sess.HasCredential() {
		t.Error("HasCredential() = false")
	}
}

func TestVerifyRejects(t *testing.T) {
	good, _ := Sign(testSecret, Session{AccessToken: "gho_abc"})
	otherKey, _ := Sign("another-secret", Session{AccessToken: "gho_abc"})
	expired, _ := Sign(testSecret, Session{
		AccessToken: "gho_abc",
		ExpiresAt:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name   string
		secret string
		raw    string
		want   error
	}{
		{"wrong key", testSecret, otherKey, ErrInvalid},
		{"garbage", testSecret, "not.a.jwt", ErrInvalid},
		{"expired", testSecret, expired, ErrExpired},
		{"no secret", "", good, ErrNoSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(tt.secret).Verify(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Errorf("Verify() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyUsesClock(t *testing.T) {
	exp := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	raw, _ := Sign(testSecret, Session{AccessToken: "gho_abc", ExpiresAt: exp})

	before := NewVerifier(testSecret).WithClock(func() time.Time { return exp.Add(-time.Hour) })
	if _, err := before.Verify(raw); err != nil {
		t.Errorf("Verify before expiry: %v", err)
	}
	after := NewVerifier(testSecret).WithClock(func() time.Time { return exp.Add(time.Hour) })
	if _, err := after.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Errorf("Verify after expiry = %v, want ErrExpired", err)
	}
}

func TestSignRequiresSecret(t *testing.T) {
	if _, err := Sign("", Session{AccessToken: "x"}); !errors.Is(err, ErrNoSecret) {
		t.Errorf("Sign without secret = %v, want ErrNoSecret", err)
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer", "Bearer abc", "", "abc"},
		{"bearer lowercase", "bearer abc", "", "abc"},
		{"cookie", "", "xyz", "xyz"},
		{"header wins", "Bearer abc", "xyz", "abc"},
		{"basic ignored", "Basic dXNlcg==", "xyz", "xyz"},
		{"none", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/github/octocat", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if got := TokenFromRequest(r); got != tt.want {
				t.Errorf("TokenFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}
