package cli

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ghdash/pkg/refresh"
)

type fakeRefresher struct {
	updates   chan refresh.State
	refreshes atomic.Int32
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{updates: make(chan refresh.State, 1)}
}

func (f *fakeRefresher) Refresh(context.Context)       { f.refreshes.Add(1) }
func (f *fakeRefresher) Updates() <-chan refresh.State { return f.updates }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWatchModelLoading(t *testing.T) {
	m := NewWatchModel(context.Background(), "octocat", newFakeRefresher())
	view := m.View()
	if !strings.Contains(view, "octocat") || !strings.Contains(view, "Loading") {
		t.Errorf("View() = %q", view)
	}
}

func TestWatchModelReceivesState(t *testing.T) {
	f := newFakeRefresher()
	m := NewWatchModel(context.Background(), "octocat", f)

	f.updates <- refresh.State{Data: testResponse(), Remaining: 4*time.Minute + 30*time.Second}
	msg := m.Init()()
	if _, ok := msg.(stateMsg); !ok {
		t.Fatalf("Init cmd produced %T, want stateMsg", msg)
	}

	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Error("Update should keep waiting for states")
	}
	view := next.(WatchModel).View()
	for _, want := range []string{"octocat", "hello-world", "next refresh in 4:30", "r refresh"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestWatchModelShowsErrorWithStaleData(t *testing.T) {
	m := NewWatchModel(context.Background(), "octocat", newFakeRefresher())
	next, _ := m.Update(stateMsg(refresh.State{Data: testResponse(), Err: errors.New("GitHub API rate limit exceeded")}))

	view := next.(WatchModel).View()
	if !strings.Contains(view, "hello-world") {
		t.Error("previous data should stay visible after a failed refresh")
	}
	if !strings.Contains(view, "rate limit exceeded") {
		t.Errorf("error should be shown:\n%s", view)
	}
}

func TestWatchModelKeys(t *testing.T) {
	f := newFakeRefresher()
	m := NewWatchModel(context.Background(), "octocat", f)

	// r is ignored while the first load is in flight.
	if _, cmd := m.Update(key("r")); cmd != nil {
		t.Error("refresh should be ignored while loading")
	}

	next, _ := m.Update(stateMsg(refresh.State{Data: testResponse()}))
	next, cmd := next.Update(key("r"))
	if cmd == nil {
		t.Fatal("r should start a refresh")
	}
	if !next.(WatchModel).State.Loading {
		t.Error("model should show loading after r")
	}
	if _, ok := cmd().(refreshDoneMsg); !ok {
		t.Error("refresh cmd should report completion")
	}
	if f.refreshes.Load() != 1 {
		t.Errorf("refreshes = %d, want 1", f.refreshes.Load())
	}

	_, cmd = next.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.QuitMsg")
	}
}
