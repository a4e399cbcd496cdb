package github

import (
	"context"
	"errors"

	"github.com/matzehuels/ghdash/pkg/cache"
	"github.com/matzehuels/ghdash/pkg/observability"
)

// errUserNotFound is returned when a GraphQL response has "user": null.
var errUserNotFound = errors.New("user not found")

const calendarQuery = `
query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      contributionCalendar {
        weeks {
          contributionDays {
            date
            contributionCount
            color
          }
        }
      }
    }
  }
}`

const totalsQuery = `
query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
      totalRepositoriesWithContributedCommits
      restrictedContributionsCount
    }
    repositoriesContributedTo(first: 100, contributionTypes: [COMMIT, ISSUE, PULL_REQUEST]) {
      nodes {
        name
        url
        stargazerCount
        forkCount
        primaryLanguage { name }
      }
    }
    repositories(first: 100, orderBy: { field: STARGAZERS, direction: DESC }) {
      nodes {
        name
        stargazerCount
        forkCount
        createdAt
      }
    }
  }
}`

type calendarData struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []ContributionDay `json:"contributionDays"`
				} `json:"weeks"`
			} `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

type totalsData struct {
	User *struct {
		ContributionsCollection struct {
			TotalCommitContributions                int `json:"totalCommitContributions"`
			TotalIssueContributions                 int `json:"totalIssueContributions"`
			TotalPullRequestContributions           int `json:"totalPullRequestContributions"`
			TotalPullRequestReviewContributions     int `json:"totalPullRequestReviewContributions"`
			TotalRepositoriesWithContributedCommits int `json:"totalRepositoriesWithContributedCommits"`
			RestrictedContributionsCount            int `json:"restrictedContributionsCount"`
		} `json:"contributionsCollection"`
		RepositoriesContributedTo struct {
			Nodes []ContributedRepo `json:"nodes"`
		} `json:"repositoriesContributedTo"`
		Repositories struct {
			Nodes []OwnedRepo `json:"nodes"`
		} `json:"repositories"`
	} `json:"user"`
}

// FetchContributionCalendar retrieves the daily contribution calendar of
// username, flattened from weeks to days in calendar order. It is
// best-effort: on any failure it returns an empty slice and a nil error.
func (c *Client) FetchContributionCalendar(ctx context.Context, username string, cred Credential, refresh bool) ([]ContributionDay, error) {
	var days []ContributionDay
	err := c.Cached(ctx, cache.Key(cache.KindCalendar, username), refresh, &days, func() error {
		var data calendarData
		if err := c.query(ctx, calendarQuery, username, cred, &data); err != nil {
			return upstreamError(OpCalendar, err)
		}
		if data.User == nil {
			return upstreamError(OpCalendar, errUserNotFound)
		}
		days = make([]ContributionDay, 0, 371)
		for _, w := range data.User.ContributionsCollection.ContributionCalendar.Weeks {
			days = append(days, w.ContributionDays...)
		}
		return nil
	})
	if err != nil {
		observability.Dashboard().OnSourceDegraded(ctx, username, OpCalendar, err)
		return []ContributionDay{}, nil
	}
	return days, nil
}

// FetchContributionTotals retrieves contribution counts, up to 100
// contributed-to repositories and up to 100 owned repositories (by stars).
//
// If the query is rejected with 401 while using a user credential and a
// fallback token is configured, it is retried exactly once with the
// fallback. No other status is retried.
func (c *Client) FetchContributionTotals(ctx context.Context, username string, cred Credential, refresh bool) (*ContributionTotals, error) {
	var t ContributionTotals
	err := c.Cached(ctx, cache.Key(cache.KindTotals, username), refresh, &t, func() error {
		var data totalsData
		err := c.query(ctx, totalsQuery, username, cred, &data)
		if err != nil && isUnauthorized(err) && cred.Source == SourceUser && c.fallback != "" {
			data = totalsData{}
			err = c.query(ctx, totalsQuery, username, Credential{Token: c.fallback, Source: SourceFallback}, &data)
		}
		if err != nil {
			return upstreamError(OpTotals, err)
		}
		if data.User == nil {
			return upstreamError(OpTotals, errUserNotFound)
		}

		u := data.User
		cc := u.ContributionsCollection
		t = ContributionTotals{
			Commits:            cc.TotalCommitContributions,
			Issues:             cc.TotalIssueContributions,
			PullRequests:       cc.TotalPullRequestContributions,
			Reviews:            cc.TotalPullRequestReviewContributions,
			ReposContributedTo: cc.TotalRepositoriesWithContributedCommits,
			Restricted:         cc.RestrictedContributionsCount,
			ContributedRepos:   nonNil(u.RepositoriesContributedTo.Nodes),
			OwnedRepos:         nonNil(u.Repositories.Nodes),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) query(ctx context.Context, query, username string, cred Credential, v any) error {
	vars := map[string]any{"username": username}
	return c.GraphQL(ctx, c.graphqlURL, cred.headers(), query, vars, v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
