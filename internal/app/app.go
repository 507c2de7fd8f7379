package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
	"github.com/abhisek/grasp/internal/quiz"
	"github.com/abhisek/grasp/internal/router"
	"github.com/abhisek/grasp/internal/screen"
	"github.com/abhisek/grasp/internal/screens/home"
	"github.com/abhisek/grasp/internal/store"
	"github.com/abhisek/grasp/internal/summary"
	"github.com/abhisek/grasp/internal/ui/layout"
)

// Options wires a study session together.
type Options struct {
	Graph       *concept.Graph
	Provider    llm.Provider
	Quiz        quiz.Config
	Summary     *summary.Service
	Notes       store.NoteRepo
	Owner       string
	SourceTitle string
	SourcePath  string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	graph  *concept.Graph
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Graph:       opts.Graph,
		Provider:    opts.Provider,
		Quiz:        opts.Quiz,
		Summary:     opts.Summary,
		Notes:       opts.Notes,
		Owner:       opts.Owner,
		SourceTitle: opts.SourceTitle,
		SourcePath:  opts.SourcePath,
	})
	return AppModel{
		router: router.New(homeScreen),
		graph:  opts.Graph,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.graph.MasteredCount(), m.graph.Len(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program for a study session.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
