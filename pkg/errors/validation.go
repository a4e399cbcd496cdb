package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// GitHub logins: 1-39 alphanumeric or hyphen, not starting with a hyphen.
var githubLoginRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)

// ValidateUsername validates a GitHub login taken from a request path.
//
// The validation rules are intentionally conservative:
//   - No empty names (after trimming whitespace)
//   - No control characters or path separators
//   - Must look like a GitHub login (alphanumeric and hyphens, max 39)
func ValidateUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidInput, "Username is required")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "username contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidInput, "username cannot contain path separators")
	}

	if !githubLoginRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid GitHub username: %q", name)
	}

	return nil
}
