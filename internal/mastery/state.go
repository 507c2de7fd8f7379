package mastery

import "github.com/abhisek/grasp/internal/concept"

// Transition records the outcome of applying an assessment to a concept's
// mastery level.
type Transition struct {
	From concept.MasteryLevel
	To   concept.MasteryLevel

	// Correct is the assessment outcome that drove the transition.
	Correct bool

	// Complete is the mastery-complete signal: a correct answer that lands
	// the concept on Reasoning. The host closes the active concept view
	// when it fires.
	Complete bool

	// Retry is set on an incorrect answer: the concept re-enters the same
	// level and the learner gets another question at that level.
	Retry bool
}

// Apply computes the next mastery level for a concept given an assessment
// outcome. The progression is strictly monotonic and non-skipping: correct
// answers advance exactly one level, incorrect answers never demote, and
// Reasoning is terminal.
func Apply(level concept.MasteryLevel, correct bool) Transition {
	t := Transition{From: level, To: level, Correct: correct}

	if !correct {
		t.Retry = true
		return t
	}

	if level < concept.Reasoning {
		t.To = level + 1
	}
	t.Complete = t.To == concept.Reasoning
	return t
}
