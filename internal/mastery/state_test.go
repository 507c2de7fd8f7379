package mastery

import (
	"testing"

	"github.com/abhisek/grasp/internal/concept"
)

func TestApply_CorrectAdvancesOneLevel(t *testing.T) {
	tests := []struct {
		from concept.MasteryLevel
		want concept.MasteryLevel
	}{
		{concept.Locked, concept.Recognition},
		{concept.Recognition, concept.Understanding},
		{concept.Understanding, concept.Application},
		{concept.Application, concept.Reasoning},
	}
	for _, tt := range tests {
		got := Apply(tt.from, true)
		if got.To != tt.want {
			t.Errorf("Apply(%s, correct).To = %s, want %s", tt.from.Label(), got.To.Label(), tt.want.Label())
		}
		if got.Retry {
			t.Errorf("Apply(%s, correct).Retry = true, want false", tt.from.Label())
		}
	}
}

func TestApply_LockedCorrectLandsOnRecognition(t *testing.T) {
	// Locked is questioned at effective level 1, but the stored level still
	// advances 0 -> 1 on a correct answer.
	got := Apply(concept.Locked, true)
	if got.To != concept.Recognition {
		t.Errorf("To = %s, want Recognition", got.To.Label())
	}
}

func TestApply_IncorrectNeverDemotes(t *testing.T) {
	for level := concept.Locked; level <= concept.Reasoning; level++ {
		got := Apply(level, false)
		if got.To != level {
			t.Errorf("Apply(%s, incorrect).To = %s, want unchanged", level.Label(), got.To.Label())
		}
		if !got.Retry {
			t.Errorf("Apply(%s, incorrect).Retry = false, want true", level.Label())
		}
		if got.Complete {
			t.Errorf("Apply(%s, incorrect).Complete = true, want false", level.Label())
		}
	}
}

func TestApply_ReasoningIsTerminal(t *testing.T) {
	got := Apply(concept.Reasoning, true)
	if got.To != concept.Reasoning {
		t.Errorf("To = %s, want Reasoning", got.To.Label())
	}
	if !got.Complete {
		t.Error("Complete = false, want true for correct answer at Reasoning")
	}
}

func TestApply_CompleteFiresOnReachingReasoning(t *testing.T) {
	got := Apply(concept.Application, true)
	if !got.Complete {
		t.Error("Complete = false, want true when advancing Application -> Reasoning")
	}

	// Lower advances must not signal completion.
	got = Apply(concept.Understanding, true)
	if got.Complete {
		t.Error("Complete = true for Understanding -> Application, want false")
	}
}

func TestApply_MonotonicOverSequence(t *testing.T) {
	level := concept.Locked
	outcomes := []bool{true, false, true, false, false, true, true, true, true}
	for i, correct := range outcomes {
		next := Apply(level, correct).To
		if next < level {
			t.Fatalf("step %d: level decreased %s -> %s", i, level.Label(), next.Label())
		}
		level = next
	}
	if level != concept.Reasoning {
		t.Errorf("final level = %s, want Reasoning after 5 correct answers", level.Label())
	}
}
