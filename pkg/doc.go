// Package pkg provides the libraries behind ghdash, a GitHub profile dashboard.
//
// # Overview
//
// ghdash turns a GitHub login into one JSON document: the user's profile,
// repository and language statistics, a weekly contribution trend, the daily
// contribution heatmap and the user's organizations. The pkg directory is
// organized by concern:
//
//  1. [integrations] - Outbound HTTP (REST via go-github, GraphQL) with caching
//  2. [stats] - Pure transforms from upstream records to summary figures
//  3. [dashboard] - Fan-out, failure policy, response assembly, error mapping
//  4. [refresh] - Periodic re-fetching of a dashboard for live views
//
// # Architecture
//
// The data flow for one request:
//
//	GET /api/github/{username}
//	         ↓
//	    [dashboard] validate username, resolve credential
//	         ↓
//	    [integrations/github] five concurrent fetches (cached per kind)
//	         ↓
//	    [stats] histogram, top-N, timeline, weekly buckets, calendar summary
//	         ↓
//	    [dashboard.Response] JSON
//
// # Quick Start
//
//	client, _ := github.NewClient(github.Options{
//	    FallbackToken: os.Getenv("GITHUB_TOKEN"),
//	    Cache:         cache.NewMemoryCache(),
//	})
//	svc := dashboard.New(client, dashboard.Options{})
//	resp, err := svc.Build(ctx, dashboard.Request{Username: "octocat"})
//	if err != nil {
//	    status, msg := dashboard.Classify(err)
//	    // ...
//	}
//
// # Main Packages
//
// [cache] - Key-value stores for upstream responses: in-memory (TTL checked
// on read), Redis, and a null cache.
//
// [errors] - Coded errors (invalid input, configuration, upstream) and
// username validation.
//
// [observability] - Hook interfaces for builds, cache access and outbound
// HTTP. Libraries emit events; the binary registers the sinks.
//
// [session] - Verification of signed session tokens that carry a user's
// GitHub access token.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...                       # All tests
//	REDIS_URL=redis://localhost:6379 go test ./pkg/cache/   # Include Redis
//
// [integrations]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/integrations
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/integrations/github
// [stats]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/stats
// [dashboard]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/dashboard
// [dashboard.Response]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/dashboard#Response
// [refresh]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/refresh
// [cache]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/observability
// [session]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/session
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ghdash/pkg/buildinfo
package pkg
