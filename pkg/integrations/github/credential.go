package github

import "strings"

// Source records where a credential came from.
type Source int

const (
	SourceNone     Source = iota // no credential; requests are anonymous
	SourceUser                   // the requesting user's session token
	SourceFallback               // the application's configured token
)

func (s Source) String() string {
	switch s {
	case SourceUser:
		return "user"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Credential is a GitHub access token tagged with its origin.
type Credential struct {
	Token  string
	Source Source
}

// ResolveCredential picks the credential for a request: the user's token if
// present, else the fallback, else none.
func ResolveCredential(user, fallback string) Credential {
	if t := strings.TrimSpace(user); t != "" {
		return Credential{Token: t, Source: SourceUser}
	}
	if t := strings.TrimSpace(fallback); t != "" {
		return Credential{Token: t, Source: SourceFallback}
	}
	return Credential{}
}

// IsZero reports whether c carries no token.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

func (c Credential) headers() map[string]string {
	if c.Token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.Token}
}
