package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
)

// Service extracts a concept graph from raw study material.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a concept extraction service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type conceptsOutput struct {
	Concepts []conceptOutput `json:"concepts"`
}

type conceptOutput struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Dependencies []string `json:"dependencies"`
}

// Extract analyzes the document and returns its concepts, all starting
// locked. A blank document yields an empty set without a model call.
func (s *Service) Extract(ctx context.Context, doc Document) ([]concept.Concept, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, nil
	}

	ctx = llm.WithPurpose(ctx, "concept-extract")

	req := llm.Request{
		System: extractSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExtractUserMessage(doc, s.cfg.MaxConcepts)},
		},
		Schema:      ConceptsSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("concept extraction: %w", err)
	}

	var out conceptsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ExtractionError{Reason: "parse response", Err: err}
	}
	if len(out.Concepts) == 0 {
		return nil, &ExtractionError{Reason: "no concepts extracted"}
	}

	concepts := make([]concept.Concept, 0, len(out.Concepts))
	known := make(map[string]bool, len(out.Concepts))
	for _, c := range out.Concepts {
		known[c.ID] = true
	}

	for _, c := range out.Concepts {
		// Drop references to ids the model invented but never extracted.
		deps := make([]string, 0, len(c.Dependencies))
		for _, dep := range c.Dependencies {
			if known[dep] && dep != c.ID {
				deps = append(deps, dep)
			}
		}
		concepts = append(concepts, concept.Concept{
			ID:           c.ID,
			Title:        c.Title,
			Description:  c.Description,
			Dependencies: deps,
			Level:        concept.Locked,
		})
	}

	// A graph that fails to build here means duplicate ids slipped through.
	if _, err := concept.NewGraph(concepts); err != nil {
		return nil, &ExtractionError{Reason: "invalid concept graph", Err: err}
	}

	return concepts, nil
}
