package summary

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
	"github.com/abhisek/grasp/internal/mistakes"
)

func studiedGraph(t *testing.T) *concept.Graph {
	t.Helper()

	mastered := concept.Concept{
		ID: "a", Title: "Alpha", Description: "first", Level: concept.Reasoning,
	}
	struggling := concept.Concept{
		ID: "b", Title: "Beta", Description: "second",
		Dependencies: []string{"a"}, Level: concept.Understanding,
	}
	struggling = mistakes.Append(struggling, mistakes.NewRecord("what is beta?", "no idea", "beta follows alpha"))

	g, err := concept.NewGraph([]concept.Concept{mastered, struggling})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func TestBuildPayload(t *testing.T) {
	g := studiedGraph(t)
	p := BuildPayload(g)

	if p.TotalConcepts != 2 {
		t.Errorf("total = %d, want 2", p.TotalConcepts)
	}
	if p.MasteredCount != 1 {
		t.Errorf("mastered = %d, want 1", p.MasteredCount)
	}
	if len(p.Concepts) != 2 {
		t.Fatalf("concepts = %d, want 2", len(p.Concepts))
	}
	if p.Concepts[0].Level != "Reasoning" {
		t.Errorf("level label = %q", p.Concepts[0].Level)
	}
	if len(p.Concepts[1].Mistakes) != 1 {
		t.Fatalf("mistakes = %d, want 1", len(p.Concepts[1].Mistakes))
	}
	m := p.Concepts[1].Mistakes[0]
	if m.Question != "what is beta?" || m.Correction != "beta follows alpha" {
		t.Errorf("mistake = %+v", m)
	}
}

func TestBuildPayload_Deterministic(t *testing.T) {
	g := studiedGraph(t)

	first := BuildPayload(g)
	second := BuildPayload(g)
	if !reflect.DeepEqual(first, second) {
		t.Error("payload differs across builds of an unchanged graph")
	}
}

func TestSummarize_EmptyGraphSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	g, err := concept.NewGraph(nil)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	got := svc.Summarize(context.Background(), g)
	if got != EmptyMessage {
		t.Errorf("summary = %q, want %q", got, EmptyMessage)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times for empty graph", mock.CallCount())
	}
}

func TestSummarize_ReturnsNotes(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"notes": "## Overview\n\nSolid session."}`),
	})
	svc := NewService(mock, DefaultConfig())

	got := svc.Summarize(context.Background(), studiedGraph(t))
	if got != "## Overview\n\nSolid session." {
		t.Errorf("summary = %q", got)
	}
	if mock.Purposes[0] != "summary" {
		t.Errorf("purpose = %q", mock.Purposes[0])
	}
}

func TestSummarize_ProviderFailureReturnsErrorDocument(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(mock, DefaultConfig())

	got := svc.Summarize(context.Background(), studiedGraph(t))
	if got != errorDocument {
		t.Errorf("summary = %q, want the fixed error document", got)
	}
}

func TestStripPictographs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Great work! 🎉", "Great work! "},
		{"🚀 Next steps", " Next steps"},
		{"plain text stays", "plain text stays"},
		{"mixed 😀 middle ✅ done", "mixed  middle  done"},
		{"accented café stays", "accented café stays"},
	}
	for _, tt := range tests {
		if got := stripPictographs(tt.in); got != tt.want {
			t.Errorf("stripPictographs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
