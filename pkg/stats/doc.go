// Package stats derives dashboard statistics from raw GitHub data.
//
// Every function here is pure: it reads only its arguments, never mutates
// them, and returns freshly allocated results. Nothing depends on state
// beyond the four upstream collections (profile, repositories, contribution
// days and contribution totals).
//
// # Repository statistics
//
//   - [LanguageHistogram]: repositories per primary language
//   - [TopRepositories]: the n most-starred repositories (stable)
//   - [CreationTimeline]: repositories created per year, ascending
//   - [RepoSummary]: star, fork, language and repository totals
//   - [LanguageShares]: the histogram as an ordered list with percentages
//
// # Contribution statistics
//
//   - [WeeklyCommitSummary]: daily counts bucketed into Sunday-start weeks
//   - [SummarizeCalendar]: totals, streaks and the busiest day
package stats
