package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grasp/internal/quiz"
	"github.com/abhisek/grasp/internal/ui/components"
	"github.com/abhisek/grasp/internal/ui/theme"
)

// typeLabel is the learner-facing name for each question type.
var typeLabel = map[quiz.QuestionType]string{
	quiz.MultipleChoice: "Recognize",
	quiz.ShortAnswer:    "Explain",
	quiz.Scenario:       "Apply",
	quiz.OpenReasoning:  "Reason",
}

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return s.renderError(width)
	}

	switch s.phase {
	case phaseLoading:
		return s.renderCentered(width, "Thinking of a question...")
	case phaseGrading:
		return s.renderQuestion(width) + "\n\n" +
			lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
				Foreground(theme.TextDim).Render("Checking your answer...")
	case phaseFeedback:
		return s.renderFeedback(width)
	default:
		return s.renderQuestion(width)
	}
}

func (s *Screen) renderError(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\nSomething went wrong:\n" + s.errMsg + "\n\nPress any key to go back.")
}

func (s *Screen) renderCentered(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n" + text)
}

func (s *Screen) renderQuestion(width int) string {
	var b strings.Builder

	c, err := s.graph.ByID(s.conceptID)
	levelLine := ""
	if err == nil {
		bar := components.LevelBar{Level: c.Level}
		levelLine = fmt.Sprintf("  %s  %s %s",
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(c.Title),
			bar.View(),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.Level.Label()),
		)
	}

	label := typeLabel[s.question.Type]
	if label == "" {
		label = string(s.question.Type)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(label)
	pad := width - lipgloss.Width(levelLine) - lipgloss.Width(right) - 4
	if pad > 0 {
		levelLine += strings.Repeat(" ", pad) + right
	}

	b.WriteString(levelLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(s.question.Text))
	b.WriteString("\n\n")

	if s.useChoices {
		b.WriteString(s.picker.View())
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View()))
	}

	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	if s.result == nil {
		return ""
	}
	res := s.result

	var b strings.Builder
	b.WriteString(s.renderQuestion(width))
	b.WriteString("\n\n")

	var verdict string
	if res.Result.Correct {
		verdict = theme.Correct.Render("Correct")
	} else {
		verdict = theme.Incorrect.Render("Not quite")
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(verdict))
	b.WriteString("\n\n")

	explanation := lipgloss.NewStyle().
		Width(max(width-8, 20)).
		Foreground(theme.Text).
		Render(res.Result.Explanation)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(explanation))
	b.WriteString("\n\n")

	t := res.Transition
	switch {
	case t.Complete:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Concept mastered"))
	case t.To > t.From:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(fmt.Sprintf("%s → %s", t.From.Label(), t.To.Label())))
	case t.Retry:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Let's try another one at this level."))
	}

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
