package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // filter by purpose label ("" = all)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// Note is a saved study summary for a document.
type Note struct {
	ID            int
	OwnerID       string
	Title         string
	Content       string
	SourcePath    string
	ConceptCount  int
	MasteredCount int
	CreatedAt     time.Time
}

// NoteRepo manages saved study notes, namespaced by learner.
type NoteRepo interface {
	// Save stores a new note and fills in its ID and CreatedAt.
	Save(ctx context.Context, n *Note) error

	// List returns the learner's notes, newest first.
	List(ctx context.Context, ownerID string) ([]Note, error)

	// Get returns the learner's note with the given ID, or nil if it
	// doesn't exist.
	Get(ctx context.Context, ownerID string, id int) (*Note, error)

	// Delete removes a note. It reports whether a note was deleted.
	Delete(ctx context.Context, ownerID string, id int) (bool, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose label.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events matching opts, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
