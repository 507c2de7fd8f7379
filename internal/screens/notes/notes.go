package notes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/screen"
	"github.com/abhisek/grasp/internal/store"
	"github.com/abhisek/grasp/internal/summary"
	"github.com/abhisek/grasp/internal/ui/layout"
	"github.com/abhisek/grasp/internal/ui/theme"
)

// Saver persists a finished note. Satisfied by store.NoteRepo.
type Saver interface {
	Save(ctx context.Context, n *store.Note) error
}

// notesReadyMsg carries the generated study notes. Summarization always
// produces a usable document, so there is no error case.
type notesReadyMsg struct {
	Text string
}

// noteSavedMsg reports the outcome of persisting the note.
type noteSavedMsg struct {
	ID  int
	Err error
}

// Screen generates the session's study notes, shows them, and saves them
// on request.
type Screen struct {
	svc    *summary.Service
	saver  Saver
	graph  *concept.Graph
	owner  string
	title  string
	path   string
	scroll int

	text    string
	saving  bool
	savedID int
	saveErr string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the notes screen.
func New(svc *summary.Service, saver Saver, graph *concept.Graph, owner, title, path string) *Screen {
	return &Screen{svc: svc, saver: saver, graph: graph, owner: owner, title: title, path: path}
}

func (s *Screen) Init() tea.Cmd {
	svc := s.svc
	graph := s.graph
	return func() tea.Msg {
		return notesReadyMsg{Text: svc.Summarize(context.Background(), graph)}
	}
}

func (s *Screen) Title() string {
	return "Study Notes"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.text == "" {
		return nil
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
	if s.savedID == 0 && !s.saving {
		hints = append([]layout.KeyHint{{Key: "S", Description: "Save note"}}, hints...)
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case notesReadyMsg:
		s.text = msg.Text
		return s, nil

	case noteSavedMsg:
		s.saving = false
		if msg.Err != nil {
			// Non-blocking: the learner keeps their notes on screen and
			// may retry the save.
			s.saveErr = msg.Err.Error()
			return s, nil
		}
		s.saveErr = ""
		s.savedID = msg.ID
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "s", "S":
			if s.text != "" && s.savedID == 0 && !s.saving {
				return s.save()
			}
		}
	}

	return s, nil
}

func (s *Screen) save() (screen.Screen, tea.Cmd) {
	s.saving = true

	note := &store.Note{
		OwnerID:       s.owner,
		Title:         s.title,
		Content:       s.text,
		SourcePath:    s.path,
		ConceptCount:  s.graph.Len(),
		MasteredCount: s.graph.MasteredCount(),
	}
	saver := s.saver
	return s, func() tea.Msg {
		if err := saver.Save(context.Background(), note); err != nil {
			return noteSavedMsg{Err: err}
		}
		return noteSavedMsg{ID: note.ID}
	}
}

func (s *Screen) View(width, height int) string {
	if s.text == "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nWriting your study notes...")
	}

	var status string
	switch {
	case s.saving:
		status = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Saving...")
	case s.saveErr != "":
		status = lipgloss.NewStyle().Foreground(theme.Error).
			Render("  Save failed: " + s.saveErr + "  (press S to retry)")
	case s.savedID != 0:
		status = lipgloss.NewStyle().Foreground(theme.Success).
			Render(fmt.Sprintf("  Saved as note #%d", s.savedID))
	}

	lines := strings.Split(s.text, "\n")
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := s.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}

	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		PaddingLeft(2).
		Width(max(width-4, 20)).
		Render(strings.Join(lines[s.scroll:end], "\n"))

	return body + "\n" + status
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
