package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grasp/internal/concept"
)

// LevelBar renders a concept's mastery level as four segments, one per
// level above Locked, filled left to right.
type LevelBar struct {
	Level concept.MasteryLevel
}

// View renders the bar, e.g. "■■□□" for Understanding.
func (b LevelBar) View() string {
	filled := int(b.Level)
	if filled < 0 {
		filled = 0
	}
	if filled > int(concept.Reasoning) {
		filled = int(concept.Reasoning)
	}
	empty := int(concept.Reasoning) - filled

	filledStyle := lipgloss.NewStyle().Foreground(levelBarColor(b.Level))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#334155"))

	return filledStyle.Render(strings.Repeat("■", filled)) +
		emptyStyle.Render(strings.Repeat("□", empty))
}

func levelBarColor(l concept.MasteryLevel) color.Color {
	switch l {
	case concept.Reasoning:
		return lipgloss.Color("#10B981")
	case concept.Application:
		return lipgloss.Color("#F59E0B")
	default:
		return lipgloss.Color("#6366F1")
	}
}
