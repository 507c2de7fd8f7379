package summary

import (
	"github.com/abhisek/grasp/internal/concept"
)

// MistakeReport is one mistake flattened for summarization.
type MistakeReport struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Correction string `json:"correction"`
	Category   string `json:"category"`
}

// ConceptReport is one concept's final session state.
type ConceptReport struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Level        string          `json:"mastery_level"`
	Dependencies []string        `json:"dependencies"`
	Mistakes     []MistakeReport `json:"mistakes"`
}

// Payload is the structured report handed to the model for prose
// generation. Its fields are deterministic from the concept set: building
// it twice from unchanged input yields identical values.
type Payload struct {
	Concepts      []ConceptReport `json:"concepts"`
	TotalConcepts int             `json:"total_concepts"`
	MasteredCount int             `json:"mastered_count"`
}

// BuildPayload folds the full concept set into a summary payload,
// preserving graph order.
func BuildPayload(g *concept.Graph) Payload {
	p := Payload{TotalConcepts: g.Len(), MasteredCount: g.MasteredCount()}

	for _, c := range g.All() {
		report := ConceptReport{
			Title:        c.Title,
			Description:  c.Description,
			Level:        c.Level.Label(),
			Dependencies: c.Dependencies,
			Mistakes:     make([]MistakeReport, 0, len(c.Mistakes)),
		}
		for _, m := range c.Mistakes {
			report.Mistakes = append(report.Mistakes, MistakeReport{
				Question:   m.Question,
				Answer:     m.Answer,
				Correction: m.Correction,
				Category:   m.Category,
			})
		}
		p.Concepts = append(p.Concepts, report)
	}
	return p
}
