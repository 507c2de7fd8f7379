package session

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
	"github.com/abhisek/grasp/internal/quiz"
	"github.com/abhisek/grasp/internal/router"
	"github.com/abhisek/grasp/internal/screen"
	"github.com/abhisek/grasp/internal/ui/components"
	"github.com/abhisek/grasp/internal/ui/layout"
)

// masteryCompleteDelay is how long the final feedback stays on screen
// before the concept view closes itself.
const masteryCompleteDelay = 1500 * time.Millisecond

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseGrading
	phaseFeedback
)

// Screen drives the question/answer loop for one concept. The learner
// answers until the concept reaches the top mastery level or they back out.
type Screen struct {
	orch      *quiz.Orchestrator
	graph     *concept.Graph
	conceptID string
	title     string

	phase      phase
	question   quiz.Question
	result     *quiz.SubmitResult
	useChoices bool
	input      components.AnswerInput
	picker     components.ChoicePicker
	errMsg     string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a session screen for one concept.
func New(provider llm.Provider, graph *concept.Graph, cfg quiz.Config, conceptID string) *Screen {
	title := conceptID
	if c, err := graph.ByID(conceptID); err == nil {
		title = c.Title
	}
	return &Screen{
		orch:      quiz.New(provider, graph, cfg),
		graph:     graph,
		conceptID: conceptID,
		title:     title,
		phase:     phaseLoading,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.beginCmd()
}

func (s *Screen) Title() string {
	return s.title
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		if s.useChoices {
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Choose"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Back"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseFeedback:
		if s.result != nil && s.result.Transition.Complete {
			return nil
		}
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return nil
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s.handleQuestionReady(msg)
	case beginFailedMsg:
		s.errMsg = msg.Err.Error()
		return s, nil
	case assessedMsg:
		return s.handleAssessed(msg)
	case conceptDoneMsg:
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering && !s.useChoices {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	s.question = msg.Question
	s.result = nil
	s.phase = phaseAnswering

	s.useChoices = msg.Question.Type == quiz.MultipleChoice && len(msg.Question.Choices) > 0
	if s.useChoices {
		s.picker = components.NewChoicePicker(msg.Question.Choices)
		return s, nil
	}
	s.input = components.NewAnswerInput("Type your answer...", 500)
	return s, s.input.Init()
}

func (s *Screen) handleAssessed(msg assessedMsg) (screen.Screen, tea.Cmd) {
	var valErr *quiz.ValidationError
	if errors.As(msg.Err, &valErr) {
		// Blank or stale submission; keep waiting for a real answer.
		s.phase = phaseAnswering
		return s, nil
	}
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	// The orchestrator hands back the updated concept; the screen owns
	// writing it into the shared graph.
	if err := s.graph.Replace(msg.Result.Updated); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	res := msg.Result
	s.result = &res
	s.phase = phaseFeedback
	s.input.Submit(res.Result.Correct)

	if res.Transition.Complete {
		return s, tea.Tick(masteryCompleteDelay, func(time.Time) tea.Msg {
			return conceptDoneMsg{}
		})
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case phaseAnswering:
		if msg.String() == "enter" {
			return s.submit()
		}
		if s.useChoices {
			var cmd tea.Cmd
			s.picker, cmd = s.picker.Update(msg)
			return s, cmd
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseFeedback:
		// Mastery complete closes on its own timer; ignore keys.
		if s.result != nil && s.result.Transition.Complete {
			return s, nil
		}
		s.phase = phaseLoading
		return s, s.nextCmd()
	}

	return s, nil
}

// submit grades the current answer. Blank free-form answers never leave
// the screen; the submit control is effectively disabled until there is
// input.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	var answer string
	if s.useChoices {
		answer = s.picker.Value()
	} else {
		answer = s.input.Value()
	}
	if strings.TrimSpace(answer) == "" {
		return s, nil
	}

	s.phase = phaseGrading
	s.picker.Locked = true

	orch := s.orch
	return s, func() tea.Msg {
		res, err := orch.Submit(context.Background(), answer)
		return assessedMsg{Result: res, Err: err}
	}
}

func (s *Screen) beginCmd() tea.Cmd {
	orch := s.orch
	id := s.conceptID
	return func() tea.Msg {
		q, err := orch.Begin(context.Background(), id)
		if err != nil {
			return beginFailedMsg{Err: err}
		}
		return questionReadyMsg{Question: q}
	}
}

func (s *Screen) nextCmd() tea.Cmd {
	orch := s.orch
	return func() tea.Msg {
		q, err := orch.Next(context.Background())
		if err != nil {
			return beginFailedMsg{Err: err}
		}
		return questionReadyMsg{Question: q}
	}
}
