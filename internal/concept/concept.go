package concept

import "time"

// MasteryLevel represents how deeply the learner has demonstrated
// understanding of a concept. Levels only ever increase within a session.
type MasteryLevel int

const (
	Locked        MasteryLevel = iota // Not yet studied
	Recognition                       // Can recognize the right answer among options
	Understanding                     // Can explain the concept in their own words
	Application                       // Can apply the concept to a concrete scenario
	Reasoning                         // Can reason about edge cases and implications
)

// Label returns the display name for a mastery level.
func (l MasteryLevel) Label() string {
	switch l {
	case Locked:
		return "Locked"
	case Recognition:
		return "Recognition"
	case Understanding:
		return "Understanding"
	case Application:
		return "Application"
	case Reasoning:
		return "Reasoning"
	default:
		return "Unknown"
	}
}

// Effective returns the difficulty level used for question generation.
// Locked concepts are questioned at level 1.
func (l MasteryLevel) Effective() int {
	if l == Locked {
		return 1
	}
	return int(l)
}

// MistakeRecord captures a single incorrect submission. Records are created
// once, never mutated, and owned by their parent concept's mistake sequence.
type MistakeRecord struct {
	ID         string
	CreatedAt  time.Time
	Question   string
	Answer     string
	Correction string
	Category   string
}

// Concept is an atomic unit of material to be learned.
type Concept struct {
	// ID is a unique, stable slug (e.g. "tcp-handshake").
	ID string

	// Title is the short display name.
	Title string

	// Description is a one-to-three sentence explanation used as question
	// generation context and as the fallback evaluation context.
	Description string

	// Dependencies are the IDs of prerequisite concepts. Order carries no
	// meaning. Used only to build question context, not to gate access.
	Dependencies []string

	// Level is the current mastery level. Every concept starts Locked.
	Level MasteryLevel

	// Mistakes is the append-only sequence of incorrect submissions.
	Mistakes []MistakeRecord
}
