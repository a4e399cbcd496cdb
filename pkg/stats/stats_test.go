package stats

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/matzehuels/ghdash/pkg/integrations/github"
)

func lang(s string) *string { return &s }

func repo(name string, language *string, stars int, created string) github.Repository {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		panic(err)
	}
	return github.Repository{Name: name, Language: language, Stars: stars, Forks: stars / 2, CreatedAt: t}
}

// octocatRepos is the three-repository fixture used across tests.
func octocatRepos() []github.Repository {
	return []github.Repository{
		repo("alpha", lang("Go"), 5, "2019-05-01T00:00:00Z"),
		repo("beta", lang("Go"), 10, "2021-02-03T00:00:00Z"),
		repo("gamma", lang("TS"), 2, "2021-11-30T23:59:59Z"),
	}
}

func TestLanguageHistogram(t *testing.T) {
	hist := LanguageHistogram(octocatRepos())
	if len(hist) != 2 || hist["Go"] != 2 || hist["TS"] != 1 {
		t.Errorf("LanguageHistogram() = %v, want map[Go:2 TS:1]", hist)
	}
}

func TestLanguageHistogramSkipsNull(t *testing.T) {
	repos := append(octocatRepos(), repo("docs", nil, 1, "2022-01-01T00:00:00Z"))
	hist := LanguageHistogram(repos)

	sum := 0
	for _, n := range hist {
		sum += n
	}
	if sum != 3 {
		t.Errorf("histogram sum = %d, want 3 (repos with a language)", sum)
	}
	if _, ok := hist[""]; ok {
		t.Error("null language should not produce a key")
	}
}

func TestTopRepositories(t *testing.T) {
	top := TopRepositories(octocatRepos(), 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Stars != 10 || top[1].Stars != 5 {
		t.Errorf("top = [%d %d], want [10 5]", top[0].Stars, top[1].Stars)
	}
}

func TestTopRepositoriesLength(t *testing.T) {
	repos := octocatRepos()
	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			got := TopRepositories(repos, tt.n)
			if len(got) != tt.want {
				t.Errorf("len(TopRepositories(repos, %d)) = %d, want %d", tt.n, len(got), tt.want)
			}
			if got == nil {
				t.Error("result should be non-nil")
			}
		})
	}
}

func TestTopRepositoriesStable(t *testing.T) {
	repos := []github.Repository{
		{Name: "a", Stars: 3},
		{Name: "b", Stars: 7},
		{Name: "c", Stars: 3},
		{Name: "d", Stars: 7},
		{Name: "e", Stars: 3},
	}
	got := TopRepositories(repos, 5)
	want := []string{"b", "d", "a", "c", "e"}
	for i, r := range got {
		if r.Name != want[i] {
			t.Errorf("order = %v, want %v", names(got), want)
			break
		}
	}
	// Input must be left untouched.
	if repos[0].Name != "a" || repos[1].Name != "b" {
		t.Error("TopRepositories mutated its input")
	}
}

func TestTopRepositoriesProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := range 50 {
		repos := make([]github.Repository, rng.Intn(30))
		for i := range repos {
			repos[i] = github.Repository{Name: fmt.Sprintf("r%d", i), Stars: rng.Intn(5)}
		}
		n := rng.Intn(40)
		got := TopRepositories(repos, n)

		if len(got) != min(n, len(repos)) {
			t.Fatalf("trial %d: len = %d, want %d", trial, len(got), min(n, len(repos)))
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].Stars < got[i].Stars {
				t.Fatalf("trial %d: not sorted descending: %v", trial, got)
			}
			if got[i-1].Stars == got[i].Stars && index(repos, got[i-1].Name) > index(repos, got[i].Name) {
				t.Fatalf("trial %d: tie order not preserved", trial)
			}
		}
	}
}

func TestCreationTimeline(t *testing.T) {
	got := CreationTimeline(octocatRepos())
	want := []PeriodCount{{"2019", 1}, {"2021", 2}}
	if len(got) != len(want) {
		t.Fatalf("CreationTimeline() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CreationTimeline()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCreationTimelineSumsToRepoCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	repos := make([]github.Repository, 200)
	for i := range repos {
		repos[i] = github.Repository{CreatedAt: time.Date(2008+rng.Intn(17), time.Month(1+rng.Intn(12)), 1, 0, 0, 0, 0, time.UTC)}
	}
	sum := 0
	timeline := CreationTimeline(repos)
	for i, p := range timeline {
		sum += p.Count
		if i > 0 && timeline[i-1].Period >= p.Period {
			t.Errorf("timeline not ascending at %d: %v", i, timeline)
		}
	}
	if sum != len(repos) {
		t.Errorf("timeline sum = %d, want %d", sum, len(repos))
	}
	if got := CreationTimeline(nil); len(got) != 0 || got == nil {
		t.Errorf("CreationTimeline(nil) = %#v, want empty slice", got)
	}
}

func TestRepoSummary(t *testing.T) {
	repos := append(octocatRepos(), repo("docs", nil, 3, "2022-01-01T00:00:00Z"))
	got := RepoSummary(repos)
	want := RepoStatsSummary{TotalStars: 20, TotalForks: 2 + 5 + 1 + 1, TotalLanguages: 2, TotalRepos: 4}
	if got != want {
		t.Errorf("RepoSummary() = %+v, want %+v", got, want)
	}
	if got := RepoSummary(nil); got != (RepoStatsSummary{}) {
		t.Errorf("RepoSummary(nil) = %+v", got)
	}
}

func TestLanguageShares(t *testing.T) {
	got := LanguageShares(map[string]int{"TS": 1, "Go": 2, "Rust": 1})
	want := []LanguageShare{
		{"Go", 2, 50},
		{"Rust", 1, 25},
		{"TS", 1, 25},
	}
	if len(got) != len(want) {
		t.Fatalf("LanguageShares() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LanguageShares()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got := LanguageShares(nil); len(got) != 0 {
		t.Errorf("LanguageShares(nil) = %v", got)
	}
}

func names(repos []github.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Name
	}
	return out
}

func index(repos []github.Repository, name string) int {
	for i, r := range repos {
		if r.Name == name {
			return i
		}
	}
	return -1
}
