package mistakes

import (
	"testing"

	"github.com/abhisek/grasp/internal/concept"
)

func TestNewRecord_Fields(t *testing.T) {
	rec := NewRecord("What is a goroutine?", "a thread", "A goroutine is scheduled by the Go runtime, not the OS.")

	if rec.ID == "" {
		t.Error("ID is empty")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
	if rec.Category != CategoryConceptual {
		t.Errorf("Category = %q, want %q", rec.Category, CategoryConceptual)
	}
}

func TestAppend_DoesNotMutateInput(t *testing.T) {
	c := concept.Concept{ID: "gr", Title: "Goroutines"}
	updated := Append(c, NewRecord("q1", "a1", "c1"))

	if len(c.Mistakes) != 0 {
		t.Errorf("input concept gained %d mistakes, want 0", len(c.Mistakes))
	}
	if len(updated.Mistakes) != 1 {
		t.Errorf("updated concept has %d mistakes, want 1", len(updated.Mistakes))
	}
}

func TestAppend_PreservesOrder(t *testing.T) {
	c := concept.Concept{ID: "gr", Title: "Goroutines"}
	c = Append(c, NewRecord("q1", "a1", "c1"))
	c = Append(c, NewRecord("q2", "a2", "c2"))
	c = Append(c, NewRecord("q3", "a3", "c3"))

	if len(c.Mistakes) != 3 {
		t.Fatalf("got %d mistakes, want 3", len(c.Mistakes))
	}
	for i, wantQ := range []string{"q1", "q2", "q3"} {
		if c.Mistakes[i].Question != wantQ {
			t.Errorf("mistake %d question = %q, want %q", i, c.Mistakes[i].Question, wantQ)
		}
	}
}

func TestAll_TagsWithConceptTitle(t *testing.T) {
	a := concept.Concept{ID: "a", Title: "Alpha"}
	a = Append(a, NewRecord("qa", "ans", "corr"))
	b := concept.Concept{ID: "b", Title: "Beta"}
	b = Append(b, NewRecord("qb1", "ans", "corr"))
	b = Append(b, NewRecord("qb2", "ans", "corr"))

	g, err := concept.NewGraph([]concept.Concept{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := All(g)
	if len(all) != 3 {
		t.Fatalf("got %d tagged mistakes, want 3", len(all))
	}
	if all[0].ConceptTitle != "Alpha" {
		t.Errorf("first tag = %q, want Alpha", all[0].ConceptTitle)
	}
	if all[1].ConceptTitle != "Beta" || all[2].ConceptTitle != "Beta" {
		t.Error("Beta mistakes not tagged with Beta")
	}
	if all[1].Record.Question != "qb1" || all[2].Record.Question != "qb2" {
		t.Error("Beta mistakes out of order")
	}
}

func TestAll_EmptyGraph(t *testing.T) {
	g, _ := concept.NewGraph(nil)
	if got := All(g); len(got) != 0 {
		t.Errorf("got %d mistakes for empty graph, want 0", len(got))
	}
}
