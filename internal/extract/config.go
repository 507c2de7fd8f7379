package extract

// Config holds tunables for concept extraction.
type Config struct {
	MaxTokens   int
	Temperature float64
	MaxConcepts int // upper bound passed to the model
}

// DefaultConfig returns extraction defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.3,
		MaxConcepts: 12,
	}
}
