package mistakes

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/grasp/internal/concept"
)

// CategoryConceptual is the misunderstanding category attached to every
// recorded mistake. Grading is binary, so there is no finer classification.
const CategoryConceptual = "Conceptual"

// NewRecord builds an immutable mistake record for an incorrect submission.
func NewRecord(question, answer, correction string) concept.MistakeRecord {
	return concept.MistakeRecord{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Question:   question,
		Answer:     answer,
		Correction: correction,
		Category:   CategoryConceptual,
	}
}

// Append returns a copy of the concept with the record appended to its
// mistake sequence. The ledger is purely additive: records are never
// trimmed, reordered, or deduplicated. The input concept is not mutated.
func Append(c concept.Concept, rec concept.MistakeRecord) concept.Concept {
	c.Mistakes = append(slices.Clone(c.Mistakes), rec)
	return c
}

// Tagged is a mistake record paired with its owning concept's title,
// for summarization.
type Tagged struct {
	ConceptTitle string
	Record       concept.MistakeRecord
}

// All returns every mistake across all concepts in the graph, in concept
// order then record order.
func All(g *concept.Graph) []Tagged {
	var out []Tagged
	for _, c := range g.All() {
		for _, rec := range c.Mistakes {
			out = append(out, Tagged{ConceptTitle: c.Title, Record: rec})
		}
	}
	return out
}
