package quiz

import "time"

// Config holds tunables for the question session.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxDuplicateRetries bounds how many times Next re-requests a question
	// whose text duplicates session history before giving up and returning
	// the duplicate. Anti-repetition is best effort, not a guarantee.
	MaxDuplicateRetries int

	// MaxPriorQuestions caps how many recent history entries are included
	// in the generation prompt.
	MaxPriorQuestions int

	// Timeout bounds every provider call so a hung request cannot stall
	// the session.
	Timeout time.Duration
}

// DefaultConfig returns session defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:           2048,
		Temperature:         0.7,
		MaxDuplicateRetries: 5,
		MaxPriorQuestions:   10,
		Timeout:             60 * time.Second,
	}
}
