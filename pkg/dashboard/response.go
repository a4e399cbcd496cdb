package dashboard

import (
	"time"

	"github.com/matzehuels/ghdash/pkg/integrations/github"
	"github.com/matzehuels/ghdash/pkg/stats"
)

// Response is the dashboard payload. It is built fresh for every request
// and never modified afterwards.
type Response struct {
	User           *github.Profile       `json:"user"`
	Stats          Stats                 `json:"stats"`
	Repos          Repos                 `json:"repos"`
	Languages      map[string]int        `json:"languages"`
	LanguageShares []stats.LanguageShare `json:"languageShares"`
	Commits        Commits               `json:"commits"`
	Organizations  []github.Organization `json:"organizations"`
	LastUpdated    time.Time             `json:"lastUpdated"`
}

// Stats is the headline numbers block.
type Stats struct {
	TotalRepos                int `json:"totalRepos"`
	TotalLanguages            int `json:"totalLanguages"`
	TotalStars                int `json:"totalStars"`
	TotalForks                int `json:"totalForks"`
	TotalCommits              int `json:"totalCommits"`
	TotalIssues               int `json:"totalIssues"`
	TotalPRs                  int `json:"totalPRs"`
	TotalReviews              int `json:"totalReviews"`
	TotalPrivateContributions int `json:"totalPrivateContributions"`
}

// Repos is the repository block.
type Repos struct {
	Total    int                 `json:"total"`
	Top      []github.Repository `json:"top"`
	Timeline []stats.PeriodCount `json:"timeline"`
}

// Commits is the contribution block.
type Commits struct {
	Activity      []stats.WeekCount        `json:"activity"`      // weekly trend
	Contributions []github.ContributionDay `json:"contributions"` // daily heatmap
	Summary       stats.CalendarSummary    `json:"summary"`
}

// sources holds the five upstream results of one build.
type sources struct {
	profile *github.Profile
	repos   []github.Repository
	days    []github.ContributionDay
	totals  *github.ContributionTotals
	orgs    []github.Organization
}

// assemble derives every statistic from src. Nil collections are treated as
// empty.
func assemble(src sources, topN int, now time.Time) *Response {
	repos := nonNil(src.repos)
	days := nonNil(src.days)
	totals := src.totals
	if totals == nil {
		totals = &github.ContributionTotals{}
	}

	summary := stats.RepoSummary(repos)
	hist := stats.LanguageHistogram(repos)

	return &Response{
		User: src.profile,
		Stats: Stats{
			TotalRepos:                summary.TotalRepos,
			TotalLanguages:            summary.TotalLanguages,
			TotalStars:                summary.TotalStars,
			TotalForks:                summary.TotalForks,
			TotalCommits:              totals.Commits,
			TotalIssues:               totals.Issues,
			TotalPRs:                  totals.PullRequests,
			TotalReviews:              totals.Reviews,
			TotalPrivateContributions: totals.Restricted,
		},
		Repos: Repos{
			Total:    len(repos),
			Top:      stats.TopRepositories(repos, topN),
			Timeline: stats.CreationTimeline(repos),
		},
		Languages:      hist,
		LanguageShares: stats.LanguageShares(hist),
		Commits: Commits{
			Activity:      stats.WeeklyCommitSummary(days),
			Contributions: days,
			Summary:       stats.SummarizeCalendar(days),
		},
		Organizations: nonNil(src.orgs),
		LastUpdated:   now.UTC(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
