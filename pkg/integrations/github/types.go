package github

import (
	"time"

	gh "github.com/google/go-github/v74/github"
)

// Profile is a user's public profile.
type Profile struct {
	Login       string    `json:"login"`
	Name        *string   `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         *string   `json:"bio"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
	HTMLURL     string    `json:"html_url"`
}

// Repository is a public repository owned by the user.
type Repository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description *string   `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    *string   `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	HTMLURL     string    `json:"html_url"`
}

// ContributionDay is one cell of the contribution calendar.
type ContributionDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"contributionCount"`
	Color string `json:"color"`
}

// Organization is a public organization membership.
type Organization struct {
	Login       string  `json:"login"`
	AvatarURL   string  `json:"avatar_url"`
	Description *string `json:"description"`
}

// ContributionTotals summarises a user's contributions over the last year.
type ContributionTotals struct {
	Commits            int               `json:"totalCommits"`
	Issues             int               `json:"totalIssues"`
	PullRequests       int               `json:"totalPRs"`
	Reviews            int               `json:"totalReviews"`
	ReposContributedTo int               `json:"totalReposWithContributions"`
	Restricted         int               `json:"totalPrivateContributions"`
	ContributedRepos   []ContributedRepo `json:"contributedRepos"`
	OwnedRepos         []OwnedRepo       `json:"ownedRepos"`
}

// ContributedRepo is a repository the user committed, opened issues or pull
// requests to.
type ContributedRepo struct {
	Name            string        `json:"name"`
	URL             string        `json:"url"`
	Stars           int           `json:"stargazerCount"`
	Forks           int           `json:"forkCount"`
	PrimaryLanguage *LanguageName `json:"primaryLanguage"`
}

// LanguageName wraps a GraphQL Language node.
type LanguageName struct {
	Name string `json:"name"`
}

// OwnedRepo is a repository owned by the user, as listed by GraphQL.
type OwnedRepo struct {
	Name      string    `json:"name"`
	Stars     int       `json:"stargazerCount"`
	Forks     int       `json:"forkCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// =============================================================================
// REST conversions
// =============================================================================

func profileFromAPI(u *gh.User) Profile {
	return Profile{
		Login:       u.GetLogin(),
		Name:        u.Name,
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.Bio,
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		PublicRepos: u.GetPublicRepos(),
		CreatedAt:   u.GetCreatedAt().Time,
		HTMLURL:     u.GetHTMLURL(),
	}
}

func repositoryFromAPI(r *gh.Repository) Repository {
	return Repository{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.Description,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.Language,
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
		HTMLURL:     r.GetHTMLURL(),
	}
}

func organizationFromAPI(o *gh.Organization) Organization {
	return Organization{
		Login:       o.GetLogin(),
		AvatarURL:   o.GetAvatarURL(),
		Description: o.Description,
	}
}
