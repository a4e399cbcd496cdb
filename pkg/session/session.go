// Package session verifies the session tokens browsers send with dashboard
// requests.
//
// A session token is an HS256-signed JWT whose claims carry the user's
// GitHub access token. Tokens are minted by the login front end; this package
// only verifies them and extracts the credential. Requests may present the
// token either as a bearer token or in the [CookieName] cookie.
//
// # Usage
//
//	v := session.NewVerifier(cfg.SessionSecret)
//	if raw := session.TokenFromRequest(r); raw != "" {
//	    sess, err := v.Verify(raw)
//	    if err != nil {
//	        // treat as anonymous
//	    }
//	    credential = sess.AccessToken
//	}
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie that carries the session token.
const CookieName = "ghdash_session"

// Sentinel errors for session verification.
var (
	// ErrNoSecret is returned when no session secret is configured.
	ErrNoSecret = errors.New("session secret not configured")

	// ErrExpired is returned when a token has passed its expiry.
	ErrExpired = errors.New("expired")

	// ErrInvalid is returned for malformed tokens and bad signatures.
	ErrInvalid = errors.New("invalid session token")
)

// Claims is the JWT payload of a session token.
type Claims struct {
	AccessToken string `json:"access_token"`
	Login       string `json:"login,omitempty"`
	jwt.RegisteredClaims
}

// Session is a verified session.
type Session struct {
	AccessToken string
	Login       string
	ExpiresAt   time.Time // zero if the token has no expiry
}

// HasCredential reports whether the session carries a GitHub access token.
func (s *Session) HasCredential() bool {
	return s != nil && s.AccessToken != ""
}

// Verifier checks session token signatures and expiry.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a verifier for tokens signed with secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of v that uses now as its time source.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	c := *v
	c.now = now
	return &c
}

// Verify parses raw and returns the session it encodes.
func (v *Verifier) Verify(raw string) (*Session, error) {
	if len(v.secret) == 0 {
		return nil, ErrNoSecret
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	sess := &Session{AccessToken: claims.AccessToken, Login: claims.Login}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// Sign encodes sess as a token signed with secret. Token issuance belongs to
// the login front end; Sign exists for tooling and tests.
func Sign(secret string, sess Session) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	claims := Claims{AccessToken: sess.AccessToken, Login: sess.Login}
	if !sess.ExpiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(sess.ExpiresAt)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// TokenFromRequest returns the raw session token presented by r, preferring
// an "Authorization: Bearer" header over the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
