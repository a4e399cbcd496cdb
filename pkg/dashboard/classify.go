package dashboard

import (
	"net/http"
	"strings"

	errs "github.com/matzehuels/ghdash/pkg/errors"
)

// Client-facing messages for classified upstream failures.
const (
	MsgBadCredentials = "Invalid or expired GitHub token. Please refresh server token."
	MsgRateLimited    = "GitHub API rate limit exceeded. Please wait a few minutes and try again."
)

// CacheControl is sent with every successful response: shared caches may
// keep it for five minutes and revalidate in the background.
const CacheControl = "s-maxage=300, stale-while-revalidate"

// Classify maps an error from Build to an HTTP status and client message.
//
//   - invalid input: 400 with the validation message
//   - configuration: 500 with the configuration message
//   - message containing "bad credentials": 401
//   - message containing "rate limit": 429
//   - anything else: 500 with the raw message
//
// Message matching is case-insensitive.
func Classify(err error) (int, string) {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput:
		return http.StatusBadRequest, errs.UserMessage(err)
	case errs.ErrCodeConfiguration:
		return http.StatusInternalServerError, errs.UserMessage(err)
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "bad credentials"):
		return http.StatusUnauthorized, MsgBadCredentials
	case strings.Contains(lower, "rate limit"):
		return http.StatusTooManyRequests, MsgRateLimited
	default:
		return http.StatusInternalServerError, msg
	}
}
