package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grasp/internal/screen"
)

// stubScreen is a minimal Screen for router tests.
type stubScreen struct {
	name      string
	initCalls int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initCalls++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestNewStartsWithOneScreen(t *testing.T) {
	r := New(&stubScreen{name: "home"})
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
}

func TestPushAndPop(t *testing.T) {
	r := New(&stubScreen{name: "home"})
	session := &stubScreen{name: "session"}

	r.Push(session)
	if r.Depth() != 2 {
		t.Errorf("depth after push = %d, want 2", r.Depth())
	}
	if session.initCalls != 1 {
		t.Errorf("init calls = %d, want 1", session.initCalls)
	}
	if r.Active().Title() != "session" {
		t.Errorf("active = %q, want session", r.Active().Title())
	}

	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth after pop = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
}

func TestPopNeverEmptiesStack(t *testing.T) {
	r := New(&stubScreen{name: "home"})
	r.Pop()
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestUpdateHandlesNavigationMessages(t *testing.T) {
	r := New(&stubScreen{name: "home"})

	r.Update(PushScreenMsg{Screen: &stubScreen{name: "notes"}})
	if r.Active().Title() != "notes" {
		t.Errorf("active = %q, want notes", r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "home" {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
}

func TestViewRendersActiveScreen(t *testing.T) {
	r := New(&stubScreen{name: "home"})
	r.Push(&stubScreen{name: "session"})

	if got := r.View(80, 24); got != "session" {
		t.Errorf("view = %q, want session", got)
	}
}
