package quiz

import "github.com/abhisek/grasp/internal/llm"

// QuestionSchema defines the JSON schema for question generation.
var QuestionSchema = &llm.Schema{
	Name:        "comprehension-question",
	Description: "A single comprehension check question for one concept",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The question shown to the learner",
			},
			"type": map[string]any{
				"type": "string",
				"enum": []any{"MULTIPLE_CHOICE", "SHORT_ANSWER", "SCENARIO", "OPEN_REASONING"},
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 answer options for MULTIPLE_CHOICE, empty otherwise",
			},
			"eval_context": map[string]any{
				"type":        "string",
				"description": "What a correct answer must contain. Never shown to the learner",
			},
		},
		"required":             []any{"text", "type", "choices", "eval_context"},
		"additionalProperties": false,
	},
}

// AssessmentSchema defines the JSON schema for answer evaluation.
var AssessmentSchema = &llm.Schema{
	Name:        "answer-assessment",
	Description: "Binary evaluation of a learner's answer with an explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the answer demonstrates understanding at the asked level",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "2-4 sentences: why the answer is right, or what the correct answer is and why",
			},
			"suggested_level": map[string]any{
				"type":        []any{"integer", "null"},
				"minimum":     0,
				"maximum":     4,
				"description": "Optional opinion of the learner's mastery level (0-4)",
			},
		},
		"required":             []any{"correct", "explanation", "suggested_level"},
		"additionalProperties": false,
	},
}
