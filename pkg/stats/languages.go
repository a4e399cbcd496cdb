package stats

import (
	"cmp"
	"slices"
)

// LanguageShare is one language's slice of the histogram.
type LanguageShare struct {
	Language string  `json:"language"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// LanguageShares orders a histogram by count descending, then name
// ascending, and attaches each language's percentage of the total.
func LanguageShares(hist map[string]int) []LanguageShare {
	total := 0
	shares := make([]LanguageShare, 0, len(hist))
	for lang, n := range hist {
		total += n
		shares = append(shares, LanguageShare{Language: lang, Count: n})
	}
	slices.SortFunc(shares, func(a, b LanguageShare) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Language, b.Language)
	})
	if total > 0 {
		for i := range shares {
			shares[i].Percent = float64(shares[i].Count) * 100 / float64(total)
		}
	}
	return shares
}
