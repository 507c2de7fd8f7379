package extract

import "github.com/abhisek/grasp/internal/llm"

// ConceptsSchema defines the JSON schema for concept extraction.
var ConceptsSchema = &llm.Schema{
	Name:        "concept-graph",
	Description: "Key concepts extracted from a document, with prerequisite links",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Stable slug identifier, lowercase with hyphens (e.g. 'light-absorption')",
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Short human-readable name (2-6 words)",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "One or two sentences explaining the concept as the document presents it",
						},
						"dependencies": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "IDs of concepts from this list that should be understood first",
						},
					},
					"required":             []any{"id", "title", "description", "dependencies"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"concepts"},
		"additionalProperties": false,
	},
}
