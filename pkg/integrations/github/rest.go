package github

import (
	"context"

	gh "github.com/google/go-github/v74/github"

	"github.com/matzehuels/ghdash/pkg/cache"
	"github.com/matzehuels/ghdash/pkg/observability"
)

// FetchProfile retrieves the public profile of username.
// If refresh is true, cached data is bypassed.
func (c *Client) FetchProfile(ctx context.Context, username string, cred Credential, refresh bool) (*Profile, error) {
	var p Profile
	err := c.Cached(ctx, cache.Key(cache.KindProfile, username), refresh, &p, func() error {
		u, _, err := c.rest(cred).Users.Get(ctx, username)
		if err != nil {
			return upstreamError(OpProfile, err)
		}
		p = profileFromAPI(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchRepositories retrieves every public repository of username, most
// recently updated first. Pages of 100 are requested until a shorter page
// arrives; a failure on any page fails the whole call.
func (c *Client) FetchRepositories(ctx context.Context, username string, cred Credential, refresh bool) ([]Repository, error) {
	var repos []Repository
	err := c.Cached(ctx, cache.Key(cache.KindRepositories, username), refresh, &repos, func() error {
		repos = make([]Repository, 0)
		client := c.rest(cred)
		for page := 1; ; page++ {
			batch, _, err := client.Repositories.ListByUser(ctx, username, &gh.RepositoryListByUserOptions{
				Sort:        "updated",
				ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
			})
			if err != nil {
				return upstreamError(OpRepositories, err)
			}
			for _, r := range batch {
				repos = append(repos, repositoryFromAPI(r))
			}
			if len(batch) < perPage {
				return nil
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

// FetchOrganizations retrieves the public organizations of username. It is
// best-effort: on any failure it returns an empty slice and a nil error.
func (c *Client) FetchOrganizations(ctx context.Context, username string, cred Credential, refresh bool) ([]Organization, error) {
	var orgs []Organization
	err := c.Cached(ctx, cache.Key(cache.KindOrgs, username), refresh, &orgs, func() error {
		batch, _, err := c.rest(cred).Organizations.List(ctx, username, nil)
		if err != nil {
			return upstreamError(OpOrganizations, err)
		}
		orgs = make([]Organization, 0, len(batch))
		for _, o := range batch {
			orgs = append(orgs, organizationFromAPI(o))
		}
		return nil
	})
	if err != nil {
		observability.Dashboard().OnSourceDegraded(ctx, username, OpOrganizations, err)
		return []Organization{}, nil
	}
	return orgs, nil
}
