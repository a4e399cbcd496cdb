package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ghdash/pkg/refresh"
)

var (
	watchHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	watchErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// WatchModel - Live dashboard view
// =============================================================================

// refresher is the part of refresh.Controller the watch view drives.
type refresher interface {
	Refresh(ctx context.Context)
	Updates() <-chan refresh.State
}

// stateMsg carries a controller snapshot into the update loop.
type stateMsg refresh.State

// refreshDoneMsg signals that a manual refresh returned.
type refreshDoneMsg struct{}

// WatchModel is the bubbletea model for `ghdash watch`.
type WatchModel struct {
	Username string
	State    refresh.State
	Width    int

	ctx        context.Context
	controller refresher
}

// NewWatchModel creates a watch model over controller.
func NewWatchModel(ctx context.Context, username string, controller refresher) WatchModel {
	return WatchModel{
		Username:   username,
		State:      refresh.State{Loading: true},
		ctx:        ctx,
		controller: controller,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return m.waitForState()
}

// waitForState blocks until the controller publishes a new state.
func (m WatchModel) waitForState() tea.Cmd {
	updates := m.controller.Updates()
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func (m WatchModel) manualRefresh() tea.Cmd {
	return func() tea.Msg {
		m.controller.Refresh(m.ctx)
		return refreshDoneMsg{}
	}
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.State.Loading {
				return m, nil
			}
			m.State.Loading = true
			return m, m.manualRefresh()
		}
	case stateMsg:
		m.State = refresh.State(msg)
		return m, m.waitForState()
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	st := m.State
	if st.Data == nil {
		b.WriteString(StyleTitle.Render(m.Username))
		b.WriteString("\n\n")
		switch {
		case st.Err != nil:
			b.WriteString(watchErrorStyle.Render(iconError + " " + st.Err.Error()))
		default:
			b.WriteString(StyleDim.Render("Loading dashboard..."))
		}
		b.WriteString("\n\n")
		b.WriteString(watchHelpStyle.Render("r refresh  q quit"))
		return b.String()
	}

	resp := st.Data
	b.WriteString(renderHeader(resp))
	b.WriteString("\n\n")

	s := resp.Stats
	fmt.Fprintf(&b, "%s repos  %s stars  %s forks  %s commits  %s PRs  %s issues\n",
		StyleNumber.Render(fmt.Sprint(s.TotalRepos)),
		StyleNumber.Render(fmt.Sprint(s.TotalStars)),
		StyleNumber.Render(fmt.Sprint(s.TotalForks)),
		StyleNumber.Render(fmt.Sprint(s.TotalCommits)),
		StyleNumber.Render(fmt.Sprint(s.TotalPRs)),
		StyleNumber.Render(fmt.Sprint(s.TotalIssues)))

	if len(resp.Repos.Top) > 0 {
		rows := make([][]string, 0, len(resp.Repos.Top))
		for _, r := range resp.Repos.Top {
			lang := "—"
			if r.Language != nil {
				lang = *r.Language
			}
			rows = append(rows, []string{r.Name, lang, fmt.Sprint(r.Stars), fmt.Sprint(r.Forks)})
		}
		headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("Repository", "Lang", "Stars", "Forks").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if col >= 2 {
					return lipgloss.NewStyle().Foreground(colorCyan)
				}
				return lipgloss.NewStyle()
			})
		b.WriteString("\n")
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderActivity(resp.Commits))
	b.WriteString("\n")

	status := StyleDim.Render("next refresh in " + formatCountdown(st.Remaining))
	if st.Loading {
		status = StyleDim.Render("refreshing...")
	}
	b.WriteString(status)
	if st.Err != nil {
		b.WriteString("  " + watchErrorStyle.Render(iconError+" "+st.Err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(watchHelpStyle.Render("r refresh  q quit"))
	return b.String()
}
