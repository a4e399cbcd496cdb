// Package cache provides the key-value stores used to memoize GitHub API
// responses between dashboard requests.
//
// # Backends
//
//   - [MemoryCache]: process-local, unbounded, TTL checked on read
//   - [RedisCache]: shared between instances, TTL enforced by Redis
//   - [NullCache]: stores nothing (caching disabled)
//
// # Expiry
//
// Entries are never swept in the background. A [MemoryCache] entry whose age
// has reached its TTL is deleted by the Get that discovers it and reported
// as a miss. Only TTL expiry and process restart remove entries.
//
// # Keys
//
// Keys are namespaced by data kind and username, e.g. "user:octocat" or
// "repos:octocat". Use [Key] to build them.
package cache

import (
	"context"
	"strings"
	"time"
)

// DefaultTTL is how long upstream responses stay fresh.
const DefaultTTL = 5 * time.Minute

// Cache stores opaque byte values under string keys with a per-entry TTL.
//
// Implementations must never return an entry older than its TTL. Get and Set
// are individually safe for concurrent use, but a Get followed by a Set is
// not atomic: two callers may both miss and both fetch. Callers tolerate this
// because every fetch they cache is idempotent.
type Cache interface {
	// Get returns the value for key. The bool is false on a miss or when
	// the entry has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Kind identifies the data family a key belongs to.
type Kind string

// Key kinds, one per upstream operation.
const (
	KindProfile      Kind = "user"
	KindRepositories Kind = "repos"
	KindCalendar     Kind = "contributions"
	KindOrgs         Kind = "orgs"
	KindTotals       Kind = "fullContrib"
)

// Kinds lists every key kind.
var Kinds = []Kind{KindProfile, KindRepositories, KindCalendar, KindOrgs, KindTotals}

// Purge deletes every entry cached for username and returns the number of
// keys it attempted to delete.
func Purge(ctx context.Context, c Cache, username string) (int, error) {
	for _, kind := range Kinds {
		if err := c.Delete(ctx, Key(kind, username)); err != nil {
			return 0, err
		}
	}
	return len(Kinds), nil
}

// Key builds the cache key for kind and username, e.g. "repos:octocat".
func Key(kind Kind, username string) string {
	return string(kind) + ":" + username
}

// KindOf returns the kind prefix of key, or "" if key has none.
func KindOf(key string) Kind {
	kind, _, ok := strings.Cut(key, ":")
	if !ok {
		return ""
	}
	return Kind(kind)
}
