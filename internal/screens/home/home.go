package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
	"github.com/abhisek/grasp/internal/quiz"
	"github.com/abhisek/grasp/internal/router"
	"github.com/abhisek/grasp/internal/screen"
	"github.com/abhisek/grasp/internal/screens/notes"
	"github.com/abhisek/grasp/internal/screens/session"
	"github.com/abhisek/grasp/internal/summary"
	"github.com/abhisek/grasp/internal/ui/components"
	"github.com/abhisek/grasp/internal/ui/layout"
	"github.com/abhisek/grasp/internal/ui/theme"
)

// Deps are the collaborators the home screen wires into child screens.
type Deps struct {
	Graph       *concept.Graph
	Provider    llm.Provider
	Quiz        quiz.Config
	Summary     *summary.Service
	Notes       notes.Saver
	Owner       string
	SourceTitle string
	SourcePath  string
}

// Screen is the concept overview: every extracted concept with its mastery
// level, plus entry points into studying and note generation.
type Screen struct {
	deps     Deps
	selected int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the home screen.
func New(deps Deps) *Screen {
	return &Screen{deps: deps}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.deps.SourceTitle
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study"},
		{Key: "N", Description: "Notes"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	concepts := s.deps.Graph.All()

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(concepts)-1 {
			s.selected++
		}
	case "enter":
		if s.selected >= 0 && s.selected < len(concepts) {
			c := concepts[s.selected]
			if c.Level == concept.Reasoning {
				return s, nil
			}
			return s, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: session.New(s.deps.Provider, s.deps.Graph, s.deps.Quiz, c.ID),
				}
			}
		}
	case "n", "N":
		return s, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: notes.New(s.deps.Summary, s.deps.Notes, s.deps.Graph, s.deps.Owner, s.deps.SourceTitle, s.deps.SourcePath),
			}
		}
	}

	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Pick a concept to study. Four correct answers in a row of increasing depth masters it."))
	b.WriteString("\n\n")

	for i, c := range s.deps.Graph.All() {
		bar := components.LevelBar{Level: c.Level}

		cursor := "   "
		titleStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			cursor = " ▸ "
			titleStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%-34s %s  %s",
			cursor,
			truncate(c.Title, 34),
			bar.View(),
			theme.LevelStyle(c.Level).Render(c.Level.Label()),
		)
		b.WriteString(titleStyle.Render(line))
		b.WriteString("\n")

		if i == s.selected {
			desc := lipgloss.NewStyle().
				Foreground(theme.TextDim).
				PaddingLeft(5).
				Width(max(width-10, 20)).
				Render(c.Description + prereqSuffix(s.deps.Graph, c))
			b.WriteString(desc)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// prereqSuffix lists the titles of a concept's prerequisites, if any.
func prereqSuffix(g *concept.Graph, c concept.Concept) string {
	if len(c.Dependencies) == 0 {
		return ""
	}
	var titles []string
	for _, dep := range c.Dependencies {
		if d, err := g.ByID(dep); err == nil {
			titles = append(titles, d.Title)
		}
	}
	if len(titles) == 0 {
		return ""
	}
	return "\nBuilds on: " + strings.Join(titles, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
