package identity

import "testing"

func TestLearnerID_EnvOverride(t *testing.T) {
	t.Setenv("GRASP_LEARNER", "alice")

	if got := LearnerID(); got != "alice" {
		t.Errorf("LearnerID() = %q, want %q", got, "alice")
	}
}

func TestLearnerID_NeverEmpty(t *testing.T) {
	t.Setenv("GRASP_LEARNER", "")

	if got := LearnerID(); got == "" {
		t.Error("LearnerID() returned empty string")
	}
}
