package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/matzehuels/ghdash/pkg/integrations/github"
)

// MaxWeeks bounds the weekly summary.
const MaxWeeks = 52

const dateLayout = "2006-01-02"

// WeekCount is the contribution total of one week.
type WeekCount struct {
	Date  string `json:"date"` // the Sunday starting the week, YYYY-MM-DD
	Count int    `json:"count"`
}

// CalendarSummary holds the headline figures of a contribution calendar.
type CalendarSummary struct {
	Total         int                     `json:"total"`
	ActiveDays    int                     `json:"activeDays"`
	CurrentStreak int                     `json:"currentStreak"`
	LongestStreak int                     `json:"longestStreak"`
	BusiestDay    *github.ContributionDay `json:"busiestDay,omitempty"`
}

// weekStart returns the Sunday on or before d.
func weekStart(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeeklyCommitSummary buckets days into weeks starting on Sunday (dates are
// read as UTC), sums each bucket, and returns the most recent MaxWeeks
// buckets in ascending date order. Days whose date cannot be parsed are
// skipped.
func WeeklyCommitSummary(days []github.ContributionDay) []WeekCount {
	buckets := make(map[string]int)
	for _, day := range days {
		d, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			continue
		}
		buckets[weekStart(d).Format(dateLayout)] += day.Count
	}

	weeks := make([]WeekCount, 0, len(buckets))
	for date, n := range buckets {
		weeks = append(weeks, WeekCount{Date: date, Count: n})
	}
	// ISO dates order lexically.
	slices.SortFunc(weeks, func(a, b WeekCount) int { return cmp.Compare(a.Date, b.Date) })
	if len(weeks) > MaxWeeks {
		weeks = weeks[len(weeks)-MaxWeeks:]
	}
	return weeks
}

// SummarizeCalendar computes totals and streaks over a contribution
// calendar. Days need not be sorted; unparseable dates are ignored. The
// current streak ends on the latest day, or on the day before it when the
// latest day has no contributions yet. Ties for the busiest day go to the
// earliest date.
func SummarizeCalendar(days []github.ContributionDay) CalendarSummary {
	type dated struct {
		t   time.Time
		day github.ContributionDay
	}
	parsed := make([]dated, 0, len(days))
	for _, day := range days {
		t, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			continue
		}
		parsed = append(parsed, dated{t, day})
	}
	slices.SortStableFunc(parsed, func(a, b dated) int { return a.t.Compare(b.t) })

	var s CalendarSummary
	run := 0
	var prev time.Time
	for i, p := range parsed {
		s.Total += p.day.Count
		if p.day.Count == 0 {
			run = 0
			prev = p.t
			continue
		}
		s.ActiveDays++
		if i > 0 && p.t.Sub(prev) == 24*time.Hour && run > 0 {
			run++
		} else {
			run = 1
		}
		prev = p.t
		s.LongestStreak = max(s.LongestStreak, run)
		if s.BusiestDay == nil || p.day.Count > s.BusiestDay.Count {
			d := p.day
			s.BusiestDay = &d
		}
	}

	// Walk back from the end for the current streak.
	end := len(parsed) - 1
	if end >= 0 && parsed[end].day.Count == 0 {
		end--
	}
	for i := end; i >= 0 && parsed[i].day.Count > 0; i-- {
		if i < end && parsed[i+1].t.Sub(parsed[i].t) != 24*time.Hour {
			break
		}
		s.CurrentStreak++
	}
	return s
}
