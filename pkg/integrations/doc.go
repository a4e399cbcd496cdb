// Package integrations provides the shared HTTP layer used by the GitHub
// API client.
//
// # Overview
//
// The [Client] type bundles what every upstream call needs:
//
//   - Response caching through a [cache.Cache] with a fixed TTL
//   - A rate-limited, instrumented [http.Client] (see [NewHTTPClient])
//   - JSON GET and POST helpers that turn non-2xx responses into [StatusError]
//   - A GraphQL helper that validates the {data, errors} envelope
//
// The [github] subpackage builds the dashboard's five upstream operations on
// top of it.
//
// # Client Pattern
//
//	client := integrations.NewClient(c, cache.DefaultTTL, headers)
//	var v Profile
//	err := client.Cached(ctx, cache.Key(cache.KindProfile, "octocat"), false, &v, func() error {
//	    return client.Get(ctx, url, nil, &v)
//	})
//
// [github]: github.com/matzehuels/ghdash/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/ghdash/pkg/cache.Cache
package integrations
