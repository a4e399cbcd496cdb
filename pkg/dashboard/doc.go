// Package dashboard assembles the dashboard payload for one GitHub user.
//
// # Pipeline
//
// [Service.Build] runs one request through a fixed sequence:
//
//  1. Validate the username (before any upstream call)
//  2. Resolve the credential; fail if one is required but absent
//  3. Fetch profile, repositories, calendar, totals and organizations
//     concurrently and wait for all of them
//  4. Apply the failure [Policies] to each fetch result
//  5. Derive statistics with package stats and assemble a [Response]
//
// # Errors
//
// [Classify] maps any error Build returns to an HTTP status and a message
// safe to show to clients.
package dashboard
