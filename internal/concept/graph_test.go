package concept

import (
	"strings"
	"testing"
)

func testConcepts() []Concept {
	return []Concept{
		{ID: "vars", Title: "Variables", Description: "Named storage."},
		{ID: "funcs", Title: "Functions", Description: "Reusable blocks.", Dependencies: []string{"vars"}},
		{ID: "closures", Title: "Closures", Description: "Functions capturing scope.", Dependencies: []string{"funcs", "vars"}},
		{ID: "island", Title: "Island", Description: "No relations."},
	}
}

func TestNewGraph_DuplicateID(t *testing.T) {
	_, err := NewGraph([]Concept{
		{ID: "vars", Title: "Variables"},
		{ID: "vars", Title: "Variables Again"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate concept ID, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error %q does not mention duplicate", err)
	}
}

func TestNewGraph_SelfLoop(t *testing.T) {
	_, err := NewGraph([]Concept{
		{ID: "vars", Title: "Variables", Dependencies: []string{"vars"}},
	})
	if err == nil {
		t.Fatal("expected error for self-referencing dependency, got nil")
	}
}

func TestNewGraph_CycleTolerated(t *testing.T) {
	// Dependencies only feed question context, so a cycle between distinct
	// concepts is accepted.
	g, err := NewGraph([]Concept{
		{ID: "a", Title: "A", Dependencies: []string{"b"}},
		{ID: "b", Title: "B", Dependencies: []string{"a"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("got %d concepts, want 2", g.Len())
	}
}

func TestByID_NotFound(t *testing.T) {
	g, err := NewGraph(testConcepts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.ByID("nonexistent"); err == nil {
		t.Fatal("expected error for unknown concept, got nil")
	}
}

func TestRelatedTitles_BothDirections(t *testing.T) {
	g, err := NewGraph(testConcepts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	titles := g.RelatedTitles("funcs")
	want := map[string]bool{"Variables": true, "Closures": true}
	if len(titles) != len(want) {
		t.Fatalf("got %d related titles %v, want %d", len(titles), titles, len(want))
	}
	for _, title := range titles {
		if !want[title] {
			t.Errorf("unexpected related title %q", title)
		}
	}
}

func TestRelatedTitles_NoRelations(t *testing.T) {
	g, _ := NewGraph(testConcepts())
	if titles := g.RelatedTitles("island"); len(titles) != 0 {
		t.Errorf("got %v, want empty", titles)
	}
}

func TestRelatedTitles_SkipsUnknownDependency(t *testing.T) {
	g, err := NewGraph([]Concept{
		{ID: "a", Title: "A", Dependencies: []string{"ghost"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if titles := g.RelatedTitles("a"); len(titles) != 0 {
		t.Errorf("got %v, want empty for dangling dependency", titles)
	}
}

func TestReplace_UpdatesStoredValue(t *testing.T) {
	g, _ := NewGraph(testConcepts())

	c, _ := g.ByID("vars")
	c.Level = Understanding
	if err := g.Replace(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := g.ByID("vars")
	if got.Level != Understanding {
		t.Errorf("level = %v, want Understanding", got.Level)
	}
}

func TestReplace_UnknownConcept(t *testing.T) {
	g, _ := NewGraph(testConcepts())
	if err := g.Replace(Concept{ID: "ghost"}); err == nil {
		t.Fatal("expected error replacing unknown concept, got nil")
	}
}

func TestEffectiveLevel(t *testing.T) {
	tests := []struct {
		level MasteryLevel
		want  int
	}{
		{Locked, 1},
		{Recognition, 1},
		{Understanding, 2},
		{Application, 3},
		{Reasoning, 4},
	}
	for _, tt := range tests {
		if got := tt.level.Effective(); got != tt.want {
			t.Errorf("%s.Effective() = %d, want %d", tt.level.Label(), got, tt.want)
		}
	}
}

func TestMasteredCount(t *testing.T) {
	concepts := testConcepts()
	concepts[0].Level = Reasoning
	concepts[2].Level = Reasoning
	g, _ := NewGraph(concepts)
	if got := g.MasteredCount(); got != 2 {
		t.Errorf("MasteredCount() = %d, want 2", got)
	}
}
