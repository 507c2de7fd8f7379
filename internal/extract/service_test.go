package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
)

func validExtraction() json.RawMessage {
	return json.RawMessage(`{
		"concepts": [
			{"id": "light-absorption", "title": "Light Absorption", "description": "Chlorophyll absorbs light.", "dependencies": []},
			{"id": "calvin-cycle", "title": "Calvin Cycle", "description": "Carbon fixation reactions.", "dependencies": ["light-absorption"]}
		]
	}`)
}

func TestExtract_BuildsLockedConcepts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExtraction()})
	svc := NewService(mock, DefaultConfig())

	concepts, err := svc.Extract(context.Background(), Document{
		Title: "photosynthesis.txt",
		Text:  "Photosynthesis converts light into chemical energy.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("expected 2 concepts, got %d", len(concepts))
	}
	for _, c := range concepts {
		if c.Level != concept.Locked {
			t.Errorf("concept %s level = %v, want Locked", c.ID, c.Level)
		}
	}
	if concepts[1].Dependencies[0] != "light-absorption" {
		t.Errorf("dependencies = %v", concepts[1].Dependencies)
	}
}

func TestExtract_EmptyDocumentSkipsModel(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	concepts, err := svc.Extract(context.Background(), Document{Text: "   \n\t  "})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(concepts) != 0 {
		t.Errorf("got %d concepts from an empty document", len(concepts))
	}
	if mock.CallCount() != 0 {
		t.Errorf("model was called %d times for an empty document", mock.CallCount())
	}
}

func TestExtract_DropsDanglingAndSelfDependencies(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"concepts": [
			{"id": "a", "title": "A", "description": "d", "dependencies": ["a", "ghost", "b"]},
			{"id": "b", "title": "B", "description": "d", "dependencies": []}
		]
	}`)})
	svc := NewService(mock, DefaultConfig())

	concepts, err := svc.Extract(context.Background(), Document{Text: "content"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concepts[0].Dependencies) != 1 || concepts[0].Dependencies[0] != "b" {
		t.Errorf("dependencies = %v, want [b]", concepts[0].Dependencies)
	}
}

func TestExtract_NoConceptsIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"concepts": []}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Extract(context.Background(), Document{Text: "content"})
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}
}

func TestExtract_DuplicateIDsRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"concepts": [
			{"id": "a", "title": "A", "description": "d", "dependencies": []},
			{"id": "a", "title": "A again", "description": "d", "dependencies": []}
		]
	}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Extract(context.Background(), Document{Text: "content"})
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}
}

func TestExtract_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Extract(context.Background(), Document{Text: "content"})
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want wrapped ErrProviderUnavailable", err)
	}
}

func TestExtract_PurposeLabelSet(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExtraction()})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Extract(context.Background(), Document{Text: "content"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Purposes) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Purposes))
	}
	if mock.Purposes[0] != "concept-extract" {
		t.Errorf("purpose = %q, want 'concept-extract'", mock.Purposes[0])
	}
}
