package summary

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
)

// EmptyMessage is returned for an empty concept set, without a provider call.
const EmptyMessage = "No concepts to summarize."

// errorDocument is returned when prose generation fails. The summary view
// must always render something.
const errorDocument = `## Study Notes Unavailable

The notes for this session could not be generated. Your progress was still recorded; try generating the summary again in a moment.`

// NotesSchema defines the JSON schema for study note generation.
var NotesSchema = &llm.Schema{
	Name:        "study-notes",
	Description: "Markdown study notes for a finished session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"notes": map[string]any{
				"type":        "string",
				"description": "The complete markdown document",
			},
		},
		"required":             []any{"notes"},
		"additionalProperties": false,
	},
}

// Config holds tunables for summary generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns summary defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.5}
}

// Service renders prose study notes from a session's final concept state.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a summary service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type notesOutput struct {
	Notes string `json:"notes"`
}

// Summarize folds the graph into a payload, asks the provider for prose,
// and returns a usable document in every case: a fixed message for an
// empty graph, a fixed error document on provider failure.
func (s *Service) Summarize(ctx context.Context, g *concept.Graph) string {
	if g == nil || g.Len() == 0 {
		return EmptyMessage
	}

	payload := BuildPayload(g)

	ctx = llm.WithPurpose(ctx, "summary")

	req := llm.Request{
		System: summarySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSummaryUserMessage(payload)},
		},
		Schema:      NotesSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return errorDocument
	}

	var out notesOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil || strings.TrimSpace(out.Notes) == "" {
		return errorDocument
	}

	return stripPictographs(out.Notes)
}

// pictographRanges covers the emoji and symbol blocks stripped from notes.
var pictographRanges = [][2]rune{
	{0x1F000, 0x1F0FF}, // mahjong, dominoes, playing cards
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // extended symbols
	{0x2600, 0x27BF},   // misc symbols and dingbats
	{0xFE00, 0xFE0F},   // variation selectors
	{0x200D, 0x200D},   // zero-width joiner
}

// stripPictographs removes emoji and pictographic characters. Study notes
// are professional documents; models add decorations anyway.
func stripPictographs(s string) string {
	return strings.Map(func(r rune) rune {
		for _, rng := range pictographRanges {
			if r >= rng[0] && r <= rng[1] {
				return -1
			}
		}
		return r
	}, s)
}
