// Package github fetches the data behind a user's dashboard from the GitHub
// REST and GraphQL APIs.
//
// # Overview
//
// [Client] exposes one method per upstream operation:
//
//   - [Client.FetchProfile]: GET /users/{username}
//   - [Client.FetchRepositories]: GET /users/{username}/repos, all pages
//   - [Client.FetchContributionCalendar]: GraphQL contribution calendar
//   - [Client.FetchContributionTotals]: GraphQL contribution totals
//   - [Client.FetchOrganizations]: GET /users/{username}/orgs
//
// REST calls go through go-github; GraphQL calls go through the shared
// [integrations.Client]. Both share one rate-limited HTTP client.
//
// # Usage
//
//	client, err := github.NewClient(github.Options{
//	    FallbackToken: os.Getenv("GITHUB_TOKEN"),
//	    Cache:         cache.NewMemoryCache(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cred := client.ResolveCredential(sessionToken)
//	profile, err := client.FetchProfile(ctx, "octocat", cred, false)
//
// # Credentials
//
// A request may carry a user credential (from the browser session). It is
// preferred over the application's fallback token; with neither, requests
// are sent unauthenticated (60 requests/hour). Only
// [Client.FetchContributionTotals] retries: on 401 with a user credential it
// repeats the query once with the fallback token.
//
// # Failure Modes
//
// Profile, repository and totals failures are returned as
// [errors.UpstreamError] carrying the HTTP status and upstream message. The
// calendar and organization lookups are best-effort: any failure is reported
// to [observability.DashboardHooks.OnSourceDegraded] and an empty slice is
// returned.
//
// # Caching
//
// Each operation caches its result under its own key (see [cache.Key]).
// Pass refresh=true to bypass the cache. Failed fetches are never cached.
//
// [errors.UpstreamError]: github.com/matzehuels/ghdash/pkg/errors.UpstreamError
// [cache.Key]: github.com/matzehuels/ghdash/pkg/cache.Key
package github
