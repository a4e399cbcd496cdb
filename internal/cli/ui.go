package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ghdash/pkg/dashboard"
	"github.com/matzehuels/ghdash/pkg/stats"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleSection = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleSpark   = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconStar    = "★"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Dashboard Rendering
// =============================================================================

// renderSummary formats a dashboard for the terminal, listing at most top
// repositories.
func renderSummary(resp *dashboard.Response, top int) string {
	var b strings.Builder

	b.WriteString(renderHeader(resp))
	b.WriteString("\n\n")

	s := resp.Stats
	b.WriteString(keyValue("Repositories", fmt.Sprint(s.TotalRepos)))
	b.WriteString(keyValue("Stars", fmt.Sprint(s.TotalStars)))
	b.WriteString(keyValue("Forks", fmt.Sprint(s.TotalForks)))
	b.WriteString(keyValue("Commits", fmt.Sprint(s.TotalCommits)))
	b.WriteString(keyValue("Pull requests", fmt.Sprint(s.TotalPRs)))
	b.WriteString(keyValue("Issues", fmt.Sprint(s.TotalIssues)))
	b.WriteString(keyValue("Reviews", fmt.Sprint(s.TotalReviews)))
	if s.TotalPrivateContributions > 0 {
		b.WriteString(keyValue("Private", fmt.Sprint(s.TotalPrivateContributions)))
	}
	if n := len(resp.Organizations); n > 0 {
		logins := make([]string, n)
		for i, o := range resp.Organizations {
			logins[i] = o.Login
		}
		b.WriteString(keyValue("Orgs", strings.Join(logins, ", ")))
	}

	if repos := resp.Repos.Top; len(repos) > 0 {
		b.WriteString("\n" + styleSection.Render("Top repositories") + "\n")
		for i, r := range repos {
			if i >= top {
				break
			}
			lang := ""
			if r.Language != nil {
				lang = StyleDim.Render(" (" + *r.Language + ")")
			}
			fmt.Fprintf(&b, "  %s %s  %s%s\n",
				StyleNumber.Render(iconStar), StyleNumber.Render(fmt.Sprintf("%5d", r.Stars)),
				StyleValue.Render(r.Name), lang)
		}
	}

	if shares := resp.LanguageShares; len(shares) > 0 {
		b.WriteString("\n" + styleSection.Render("Languages") + "\n")
		parts := make([]string, 0, 5)
		for i, sh := range shares {
			if i == 5 {
				break
			}
			parts = append(parts, fmt.Sprintf("%s %.1f%%", sh.Language, sh.Percent))
		}
		b.WriteString("  " + strings.Join(parts, StyleDim.Render(" · ")) + "\n")
	}

	b.WriteString("\n" + styleSection.Render("Activity") + "\n")
	b.WriteString(renderActivity(resp.Commits))

	if !resp.LastUpdated.IsZero() {
		b.WriteString("\n" + StyleDim.Render("Updated "+resp.LastUpdated.Local().Format(time.DateTime)) + "\n")
	}
	return b.String()
}

func renderHeader(resp *dashboard.Response) string {
	if resp.User == nil {
		return StyleTitle.Render("(unknown user)")
	}
	u := resp.User
	line := StyleTitle.Render(u.Login)
	if u.Name != nil && *u.Name != "" {
		line += " " + StyleValue.Render(*u.Name)
	}
	line += StyleDim.Render(fmt.Sprintf("  %d followers · %d following", u.Followers, u.Following))
	if u.HTMLURL != "" {
		line += "\n" + StyleLink.Render(u.HTMLURL)
	}
	return line
}

func renderActivity(c dashboard.Commits) string {
	if len(c.Activity) == 0 {
		return "  " + StyleDim.Render("no contribution data") + "\n"
	}
	sum := c.Summary
	var b strings.Builder
	b.WriteString("  " + styleSpark.Render(sparkline(c.Activity)) + "\n")
	fmt.Fprintf(&b, "  %s contributions in %s active days · streak %s (longest %s)\n",
		StyleNumber.Render(fmt.Sprint(sum.Total)),
		StyleNumber.Render(fmt.Sprint(sum.ActiveDays)),
		StyleNumber.Render(fmt.Sprint(sum.CurrentStreak)),
		StyleNumber.Render(fmt.Sprint(sum.LongestStreak)))
	if sum.BusiestDay != nil {
		b.WriteString("  " + StyleDim.Render(fmt.Sprintf("busiest day %s (%d)", sum.BusiestDay.Date, sum.BusiestDay.Count)) + "\n")
	}
	return b.String()
}

func keyValue(key, value string) string {
	return styleKey.Render(key) + " " + StyleValue.Render(value) + "\n"
}

// =============================================================================
// Utilities
// =============================================================================

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline draws one block per week, scaled to the busiest week.
func sparkline(weeks []stats.WeekCount) string {
	peak := 0
	for _, w := range weeks {
		peak = max(peak, w.Count)
	}
	var b strings.Builder
	for _, w := range weeks {
		idx := 0
		if peak > 0 {
			idx = w.Count * (len(sparkBlocks) - 1) / peak
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// formatCountdown renders d as m:ss, clamped at zero.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
