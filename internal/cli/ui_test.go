package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ghdash/pkg/dashboard"
	"github.com/matzehuels/ghdash/pkg/integrations/github"
	"github.com/matzehuels/ghdash/pkg/stats"
)

func testResponse() *dashboard.Response {
	name, goLang := "The Octocat", "Go"
	return &dashboard.Response{
		User: &github.Profile{
			Login:     "octocat",
			Name:      &name,
			Followers: 10,
			HTMLURL:   "https://github.com/octocat",
		},
		Stats: dashboard.Stats{TotalRepos: 3, TotalStars: 17, TotalCommits: 42},
		Repos: dashboard.Repos{
			Total: 3,
			Top: []github.Repository{
				{Name: "hello-world", Stars: 10, Language: &goLang},
				{Name: "spoon-knife", Stars: 5},
				{Name: "linguist", Stars: 2},
			},
		},
		LanguageShares: []stats.LanguageShare{{Language: "Go", Count: 2, Percent: 66.7}},
		Commits: dashboard.Commits{
			Activity: []stats.WeekCount{{Date: "2024-01-07", Count: 5}, {Date: "2024-01-14", Count: 0}},
			Summary: stats.CalendarSummary{
				Total:      5,
				ActiveDays: 2,
				BusiestDay: &github.ContributionDay{Date: "2024-01-07", Count: 3},
			},
		},
		Organizations: []github.Organization{{Login: "github"}},
		LastUpdated:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(testResponse(), 2)

	for _, want := range []string{
		"octocat", "The Octocat", "https://github.com/octocat",
		"Repositories", "42", "hello-world", "(Go)", "spoon-knife",
		"Go 66.7%", "github", "busiest day 2024-01-07 (3)", "Updated",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "linguist") {
		t.Error("summary should list at most top repositories")
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	out := renderSummary(&dashboard.Response{}, 5)
	if !strings.Contains(out, "(unknown user)") {
		t.Errorf("summary = %q", out)
	}
	if !strings.Contains(out, "no contribution data") {
		t.Errorf("summary = %q", out)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   string
	}{
		{"empty", nil, ""},
		{"all zero", []int{0, 0}, "▁▁"},
		{"ramp", []int{0, 7, 14}, "▁▄█"},
		{"single", []int{3}, "█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weeks := make([]stats.WeekCount, len(tt.counts))
			for i, c := range tt.counts {
				weeks[i].Count = c
			}
			if got := sparkline(weeks); got != tt.want {
				t.Errorf("sparkline(%v) = %q, want %q", tt.counts, got, tt.want)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Minute, "5:00"},
		{4*time.Minute + 59*time.Second, "4:59"},
		{1500 * time.Millisecond, "0:02"},
		{0, "0:00"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := formatCountdown(tt.in); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
