package stats

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/matzehuels/ghdash/pkg/integrations/github"
)

// DefaultTopN is the number of repositories shown in the top list.
const DefaultTopN = 5

// RepoStatsSummary holds repository totals.
type RepoStatsSummary struct {
	TotalStars     int `json:"totalStars"`
	TotalForks     int `json:"totalForks"`
	TotalLanguages int `json:"totalLanguages"`
	TotalRepos     int `json:"totalRepos"`
}

// PeriodCount is one point of a timeline.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// LanguageHistogram counts repositories per primary language. Repositories
// without a language are skipped, so the counts sum to the number of
// repositories that have one.
func LanguageHistogram(repos []github.Repository) map[string]int {
	hist := make(map[string]int)
	for _, r := range repos {
		if r.Language != nil {
			hist[*r.Language]++
		}
	}
	return hist
}

// TopRepositories returns the n repositories with the most stars, in
// descending star order. Repositories with equal stars keep their input
// order. A negative n is treated as zero.
func TopRepositories(repos []github.Repository, n int) []github.Repository {
	n = max(0, min(n, len(repos)))
	if n == 0 {
		return []github.Repository{}
	}
	sorted := slices.Clone(repos)
	slices.SortStableFunc(sorted, func(a, b github.Repository) int {
		return cmp.Compare(b.Stars, a.Stars)
	})
	return sorted[:n:n]
}

// CreationTimeline counts repositories by creation year (UTC), ordered by
// year ascending. The counts sum to len(repos).
func CreationTimeline(repos []github.Repository) []PeriodCount {
	counts := make(map[int]int)
	for _, r := range repos {
		counts[r.CreatedAt.UTC().Year()]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	slices.Sort(years)

	timeline := make([]PeriodCount, len(years))
	for i, y := range years {
		timeline[i] = PeriodCount{Period: strconv.Itoa(y), Count: counts[y]}
	}
	return timeline
}

// RepoSummary totals stars and forks, and counts distinct languages and
// repositories.
func RepoSummary(repos []github.Repository) RepoStatsSummary {
	s := RepoStatsSummary{TotalRepos: len(repos)}
	for _, r := range repos {
		s.TotalStars += r.Stars
		s.TotalForks += r.Forks
	}
	s.TotalLanguages = len(LanguageHistogram(repos))
	return s
}
