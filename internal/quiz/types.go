package quiz

import "github.com/abhisek/grasp/internal/concept"

// QuestionType tags how a question should be presented and answered.
type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	ShortAnswer    QuestionType = "SHORT_ANSWER"
	Scenario       QuestionType = "SCENARIO"
	OpenReasoning  QuestionType = "OPEN_REASONING"
)

// TypeForLevel maps a question difficulty level to the question type the
// generator is instructed to produce. The mapping is a strong convention,
// not an enforced constraint; whatever type tag the model returns is kept.
func TypeForLevel(level int) QuestionType {
	switch level {
	case 1:
		return MultipleChoice
	case 2:
		return ShortAnswer
	case 3:
		return Scenario
	default:
		return OpenReasoning
	}
}

// FallbackQuestionID marks a question the orchestrator built itself after
// the provider failed to produce one.
const FallbackQuestionID = "fallback"

// Question is a single comprehension check. Questions are ephemeral: they
// live for one ask/answer cycle and only their text survives in the
// session history.
type Question struct {
	ID        string
	ConceptID string
	Text      string
	Type      QuestionType

	// Choices is populated only for multiple choice questions.
	Choices []string

	// EvalContext is the correctness context handed back to the evaluator.
	// It is never shown to the learner.
	EvalContext string
}

// IsFallback reports whether the question was locally generated after a
// provider failure.
func (q Question) IsFallback() bool {
	return q.ID == FallbackQuestionID
}

// AssessmentResult is the outcome of evaluating one submitted answer.
type AssessmentResult struct {
	Correct     bool
	Explanation string

	// SuggestedLevel is the evaluator's opinion of the learner's level.
	// Informational only; the state machine ignores it.
	SuggestedLevel *concept.MasteryLevel
}

// ValidationError rejects a submission before any provider call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + e.Reason
}
