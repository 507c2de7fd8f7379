package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-answer",
	Description: "test schema",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{"type": "boolean"},
			"explanation": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"correct", "explanation"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"correct": true, "explanation": "yes"}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{"correct": true}`)
	err := validateResponse(testSchema, raw)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Errorf("err = %T, want *ErrInvalidResponse", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"correct": "yes", "explanation": "x"}`)
	if err := validateResponse(testSchema, raw); err == nil {
		t.Fatal("expected validation error for wrong type, got nil")
	}
}

func TestValidateResponse_NotJSON(t *testing.T) {
	raw := json.RawMessage(`this is not json`)
	if err := validateResponse(testSchema, raw); err == nil {
		t.Fatal("expected error for non-JSON content, got nil")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}
