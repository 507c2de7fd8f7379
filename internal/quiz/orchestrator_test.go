package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
)

func testGraph(t *testing.T, concepts ...concept.Concept) *concept.Graph {
	t.Helper()
	g, err := concept.NewGraph(concepts)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func tcpConcept(level concept.MasteryLevel) concept.Concept {
	return concept.Concept{
		ID:          "tcp-handshake",
		Title:       "TCP Handshake",
		Description: "The three-way exchange that opens a TCP connection.",
		Level:       level,
	}
}

func questionJSON(text string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"text": %q, "type": "SHORT_ANSWER", "choices": [], "eval_context": "mention SYN and ACK"}`, text))
}

func assessmentJSON(correct bool) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"correct": %v, "explanation": "because", "suggested_level": null}`, correct))
}

func TestBegin_GeneratesAtEffectiveLevel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON("What starts a TCP connection?")})
	g := testGraph(t, tcpConcept(concept.Locked))
	o := New(mock, g, DefaultConfig())

	q, err := o.Begin(context.Background(), "tcp-handshake")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if q.ConceptID != "tcp-handshake" {
		t.Errorf("concept id = %q", q.ConceptID)
	}
	if q.IsFallback() {
		t.Error("expected a generated question, got fallback")
	}

	// A locked concept is questioned at level 1.
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Level 1 (MULTIPLE_CHOICE)") {
		t.Errorf("prompt does not ask for level 1:\n%s", prompt)
	}
	if len(o.History()) != 0 {
		t.Errorf("begin must not record history, got %v", o.History())
	}
}

func TestBegin_UnknownConcept(t *testing.T) {
	mock := llm.NewMockProvider()
	g := testGraph(t, tcpConcept(concept.Locked))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown concept")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times for unknown concept", mock.CallCount())
	}
}

func TestBegin_AllowedRegardlessOfPrerequisites(t *testing.T) {
	// Dependencies shape question context only. A concept whose
	// prerequisites are all still locked can begin immediately.
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON("q")})
	g := testGraph(t,
		concept.Concept{ID: "base", Title: "Base", Description: "d", Level: concept.Locked},
		concept.Concept{ID: "adv", Title: "Advanced", Description: "d", Dependencies: []string{"base"}, Level: concept.Locked},
	)
	o := New(mock, g, DefaultConfig())

	q, err := o.Begin(context.Background(), "adv")
	if err != nil {
		t.Fatalf("begin with locked prerequisite: %v", err)
	}
	if q.ConceptID != "adv" {
		t.Errorf("concept id = %q", q.ConceptID)
	}

	// The prerequisite still shows up as context.
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Related concepts: Base") {
		t.Errorf("prompt missing related concepts:\n%s", prompt)
	}
}

func TestBegin_FallbackOnGenerationFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	g := testGraph(t, tcpConcept(concept.Understanding))
	o := New(mock, g, DefaultConfig())

	q, err := o.Begin(context.Background(), "tcp-handshake")
	if err != nil {
		t.Fatalf("begin must not fail on provider error: %v", err)
	}
	if !q.IsFallback() {
		t.Fatal("expected fallback question")
	}
	if q.Type != ShortAnswer {
		t.Errorf("fallback type = %q, want SHORT_ANSWER", q.Type)
	}
	if q.Text != "Explain the concept of TCP Handshake" {
		t.Errorf("fallback text = %q", q.Text)
	}
	if q.EvalContext != "The three-way exchange that opens a TCP connection." {
		t.Errorf("fallback eval context = %q", q.EvalContext)
	}
}

func TestSubmit_CorrectAdvancesOneLevel(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON("q1")},
		llm.MockResponse{Content: assessmentJSON(true)},
	)
	g := testGraph(t, tcpConcept(concept.Recognition))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	res, err := o.Submit(context.Background(), "SYN, SYN-ACK, ACK")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Result.Correct {
		t.Fatal("expected correct result")
	}
	if res.Updated.Level != concept.Understanding {
		t.Errorf("level = %v, want Understanding", res.Updated.Level)
	}
	if res.Transition.Complete {
		t.Error("complete must not fire below Reasoning")
	}
	if len(res.Updated.Mistakes) != 0 {
		t.Errorf("correct answer appended %d mistakes", len(res.Updated.Mistakes))
	}
	if len(o.History()) != 1 || o.History()[0] != "q1" {
		t.Errorf("history = %v, want [q1]", o.History())
	}
}

func TestSubmit_LockedCorrectReachesRecognition(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON("q1")},
		llm.MockResponse{Content: assessmentJSON(true)},
	)
	g := testGraph(t, tcpConcept(concept.Locked))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	res, err := o.Submit(context.Background(), "an answer")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Updated.Level != concept.Recognition {
		t.Errorf("level = %v, want Recognition", res.Updated.Level)
	}
}

func TestSubmit_IncorrectRecordsOneMistakeAndRetries(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON("q1")},
		llm.MockResponse{Content: assessmentJSON(false)},
	)
	g := testGraph(t, tcpConcept(concept.Application))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	res, err := o.Submit(context.Background(), "wrong")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Updated.Level != concept.Application {
		t.Errorf("incorrect answer changed level to %v", res.Updated.Level)
	}
	if !res.Transition.Retry {
		t.Error("expected retry flag")
	}
	if !o.NeedsRetry() {
		t.Error("orchestrator should report retry needed")
	}
	if len(res.Updated.Mistakes) != 1 {
		t.Fatalf("mistakes = %d, want 1", len(res.Updated.Mistakes))
	}
	m := res.Updated.Mistakes[0]
	if m.Question != "q1" || m.Answer != "wrong" || m.Correction != "because" {
		t.Errorf("mistake = %+v", m)
	}
	if m.Category != "Conceptual" {
		t.Errorf("category = %q, want Conceptual", m.Category)
	}
	// History grows even for incorrect answers.
	if len(o.History()) != 1 {
		t.Errorf("history = %v", o.History())
	}
}

func TestSubmit_MasteryCompleteSignals(t *testing.T) {
	tests := []struct {
		name  string
		level concept.MasteryLevel
	}{
		{"application to reasoning", concept.Application},
		{"already at reasoning", concept.Reasoning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(
				llm.MockResponse{Content: questionJSON("q1")},
				llm.MockResponse{Content: assessmentJSON(true)},
			)
			g := testGraph(t, tcpConcept(tt.level))
			o := New(mock, g, DefaultConfig())

			if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
				t.Fatalf("begin: %v", err)
			}
			res, err := o.Submit(context.Background(), "deep answer")
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if res.Updated.Level != concept.Reasoning {
				t.Errorf("level = %v, want Reasoning", res.Updated.Level)
			}
			if !res.Transition.Complete {
				t.Error("expected mastery-complete signal")
			}
		})
	}
}

func TestSubmit_BlankAnswerRejectedLocally(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON("q1")})
	g := testGraph(t, tcpConcept(concept.Recognition))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	before := mock.CallCount()
	_, err := o.Submit(context.Background(), "   \t\n")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if mock.CallCount() != before {
		t.Error("blank answer must not reach the provider")
	}
	if len(o.History()) != 0 {
		t.Error("rejected submission must not enter history")
	}
}

func TestSubmit_WithoutActiveQuestion(t *testing.T) {
	mock := llm.NewMockProvider()
	g := testGraph(t, tcpConcept(concept.Recognition))
	o := New(mock, g, DefaultConfig())

	_, err := o.Submit(context.Background(), "answer")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestSubmit_EvaluationFailureDegradesToApology(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON("q1")},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	g := testGraph(t, tcpConcept(concept.Understanding))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	res, err := o.Submit(context.Background(), "my answer")
	if err != nil {
		t.Fatalf("submit must not fail on provider error: %v", err)
	}
	if res.Result.Correct {
		t.Error("degraded result must be incorrect")
	}
	if res.Result.Explanation != apologyExplanation {
		t.Errorf("explanation = %q", res.Result.Explanation)
	}
	// The degraded turn still counts: level held, mistake recorded.
	if res.Updated.Level != concept.Understanding {
		t.Errorf("level = %v", res.Updated.Level)
	}
	if len(res.Updated.Mistakes) != 1 {
		t.Errorf("mistakes = %d, want 1", len(res.Updated.Mistakes))
	}
}

func TestSubmit_LevelNeverDecreases(t *testing.T) {
	outcomes := []bool{true, false, true, true, false, true, true}
	responses := []llm.MockResponse{}
	for _, correct := range outcomes {
		responses = append(responses,
			llm.MockResponse{Content: questionJSON(fmt.Sprintf("q-%d", len(responses)))},
			llm.MockResponse{Content: assessmentJSON(correct)},
		)
	}
	mock := llm.NewMockProvider(responses...)
	g := testGraph(t, tcpConcept(concept.Locked))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	prev := concept.Locked
	for i := range outcomes {
		if i > 0 {
			if _, err := o.Next(context.Background()); err != nil {
				t.Fatalf("next %d: %v", i, err)
			}
		}
		res, err := o.Submit(context.Background(), "answer")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if res.Updated.Level < prev {
			t.Fatalf("level decreased from %v to %v at step %d", prev, res.Updated.Level, i)
		}
		prev = res.Updated.Level
		if err := g.Replace(res.Updated); err != nil {
			t.Fatalf("replace %d: %v", i, err)
		}
	}

	// 5 correct answers from Locked land on Reasoning.
	final, err := g.ByID("tcp-handshake")
	if err != nil {
		t.Fatalf("byid: %v", err)
	}
	if final.Level != concept.Reasoning {
		t.Errorf("final level = %v, want Reasoning", final.Level)
	}
}

func TestNext_SkipsDuplicateQuestions(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON("q1")},
		llm.MockResponse{Content: assessmentJSON(false)},
		llm.MockResponse{Content: questionJSON("q1")}, // duplicate
		llm.MockResponse{Content: questionJSON("q2")}, // fresh
	)
	g := testGraph(t, tcpConcept(concept.Recognition))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := o.Submit(context.Background(), "wrong"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	q, err := o.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if q.Text != "q2" {
		t.Errorf("next text = %q, want q2", q.Text)
	}
	// Two generation attempts after begin+submit.
	if mock.CallCount() != 4 {
		t.Errorf("calls = %d, want 4", mock.CallCount())
	}
}

func TestNext_GivesUpAfterBoundedRetries(t *testing.T) {
	responses := []llm.MockResponse{
		{Content: questionJSON("q1")},
		{Content: assessmentJSON(false)},
	}
	// Every regeneration keeps producing the same text.
	for i := 0; i < 5; i++ {
		responses = append(responses, llm.MockResponse{Content: questionJSON("q1")})
	}
	mock := llm.NewMockProvider(responses...)
	g := testGraph(t, tcpConcept(concept.Recognition))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := o.Submit(context.Background(), "wrong"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	q, err := o.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if q.Text != "q1" {
		t.Errorf("next text = %q, want the duplicate q1", q.Text)
	}
	// begin + eval + exactly 5 regeneration attempts.
	if mock.CallCount() != 7 {
		t.Errorf("calls = %d, want 7", mock.CallCount())
	}
}

func TestNext_DuplicatePromptListsHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON("q1")},
		llm.MockResponse{Content: assessmentJSON(false)},
		llm.MockResponse{Content: questionJSON("q2")},
	)
	g := testGraph(t, tcpConcept(concept.Recognition))
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := o.Submit(context.Background(), "wrong"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := o.Next(context.Background()); err != nil {
		t.Fatalf("next: %v", err)
	}

	prompt := mock.Calls[2].Messages[0].Content
	if !strings.Contains(prompt, "do NOT repeat") || !strings.Contains(prompt, "- q1") {
		t.Errorf("regeneration prompt missing history:\n%s", prompt)
	}
}

func TestBegin_ClearsPriorState(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON("q1")},
		llm.MockResponse{Content: assessmentJSON(false)},
		llm.MockResponse{Content: questionJSON("q1")},
	)
	g := testGraph(t,
		tcpConcept(concept.Recognition),
		concept.Concept{ID: "udp", Title: "UDP", Description: "d", Level: concept.Locked},
	)
	o := New(mock, g, DefaultConfig())

	if _, err := o.Begin(context.Background(), "tcp-handshake"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := o.Submit(context.Background(), "wrong"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Switching concepts resets history and retry state, so the question
	// text q1 is allowed to come back for the new concept.
	q, err := o.Begin(context.Background(), "udp")
	if err != nil {
		t.Fatalf("begin udp: %v", err)
	}
	if len(o.History()) != 0 {
		t.Errorf("history survived begin: %v", o.History())
	}
	if o.NeedsRetry() {
		t.Error("retry flag survived begin")
	}
	if q.Text != "q1" {
		t.Errorf("question text = %q", q.Text)
	}
}
