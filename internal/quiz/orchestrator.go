package quiz

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/llm"
	"github.com/abhisek/grasp/internal/mastery"
	"github.com/abhisek/grasp/internal/mistakes"
)

// apologyExplanation is returned when answer evaluation fails. The learner
// always gets an outcome for a submitted answer, even a degraded one.
const apologyExplanation = "Sorry, I couldn't check that answer. Let's count this one as a retry and keep going."

// Orchestrator drives the question/answer cycle for one active concept at
// a time. It issues a single provider call per step and holds per-concept
// session state that is cleared whenever a new concept begins.
//
// The orchestrator never writes into the graph: Submit returns the updated
// concept value and the caller performs the replacement.
type Orchestrator struct {
	provider llm.Provider
	graph    *concept.Graph
	cfg      Config

	state sessionState
}

// sessionState is the per-concept working state. History is unbounded for
// the session and survives retries on the same concept.
type sessionState struct {
	conceptID  string
	current    *Question
	lastResult *AssessmentResult
	history    []string
	needsRetry bool
}

// SubmitResult bundles everything the host needs after one submission.
type SubmitResult struct {
	Result AssessmentResult

	// Updated is the concept with its new mastery level and, for incorrect
	// answers, the appended mistake record. The caller writes it back with
	// graph.Replace.
	Updated concept.Concept

	// Transition reports how the mastery level moved, including the
	// mastery-complete signal.
	Transition mastery.Transition
}

// New creates an orchestrator over the given graph.
func New(provider llm.Provider, graph *concept.Graph, cfg Config) *Orchestrator {
	return &Orchestrator{provider: provider, graph: graph, cfg: cfg}
}

// Begin starts work on a concept: clears any prior session state and
// returns the first question at the concept's current effective level.
// Nothing is recorded in history until the question is answered.
//
// Any concept may begin regardless of its prerequisites' levels;
// dependencies only shape question context.
func (o *Orchestrator) Begin(ctx context.Context, conceptID string) (Question, error) {
	c, err := o.graph.ByID(conceptID)
	if err != nil {
		return Question{}, err
	}

	o.state = sessionState{conceptID: c.ID}

	q := o.generateQuestion(ctx, c)
	o.state.current = &q
	return q, nil
}

// Submit evaluates the learner's answer to the current question. Blank
// answers are rejected locally without a provider call. On evaluation
// failure the result degrades to incorrect with a fixed apology, which
// still counts as a normal incorrect turn.
func (o *Orchestrator) Submit(ctx context.Context, answer string) (SubmitResult, error) {
	if o.state.current == nil {
		return SubmitResult{}, &ValidationError{Reason: "no active question"}
	}
	if strings.TrimSpace(answer) == "" {
		return SubmitResult{}, &ValidationError{Reason: "answer is blank"}
	}

	c, err := o.graph.ByID(o.state.conceptID)
	if err != nil {
		return SubmitResult{}, err
	}
	q := *o.state.current

	result := o.evaluate(ctx, q, answer, c)

	// The question's text enters history whether or not the answer was
	// correct, so retries never see the exact same question offered as new.
	o.state.history = append(o.state.history, q.Text)

	trans := mastery.Apply(c.Level, result.Correct)

	updated := c
	updated.Level = trans.To
	if !result.Correct {
		updated = mistakes.Append(updated, mistakes.NewRecord(q.Text, answer, result.Explanation))
	}

	o.state.current = nil
	o.state.lastResult = &result
	o.state.needsRetry = trans.Retry

	return SubmitResult{Result: result, Updated: updated, Transition: trans}, nil
}

// Next generates a fresh question for the active concept, re-requesting up
// to MaxDuplicateRetries times when the generated text duplicates session
// history. If every attempt duplicates, the last question is returned
// anyway.
func (o *Orchestrator) Next(ctx context.Context) (Question, error) {
	if o.state.conceptID == "" {
		return Question{}, &ValidationError{Reason: "no active concept"}
	}
	c, err := o.graph.ByID(o.state.conceptID)
	if err != nil {
		return Question{}, err
	}

	var q Question
	for attempt := 0; attempt < o.cfg.MaxDuplicateRetries; attempt++ {
		q = o.generateQuestion(ctx, c)
		if !o.seen(q.Text) {
			break
		}
		// Fallback questions are deterministic; re-requesting can't help.
		if q.IsFallback() {
			break
		}
	}

	o.state.current = &q
	o.state.needsRetry = false
	return q, nil
}

// Current returns the question awaiting an answer, or nil.
func (o *Orchestrator) Current() *Question {
	return o.state.current
}

// LastResult returns the most recent assessment, or nil if the current
// question is unanswered.
func (o *Orchestrator) LastResult() *AssessmentResult {
	return o.state.lastResult
}

// NeedsRetry reports whether the last submission was incorrect and the
// concept re-entered the same level.
func (o *Orchestrator) NeedsRetry() bool {
	return o.state.needsRetry
}

// History returns the texts of every question answered for the active
// concept this session.
func (o *Orchestrator) History() []string {
	return o.state.history
}

func (o *Orchestrator) seen(text string) bool {
	for _, h := range o.state.history {
		if h == text {
			return true
		}
	}
	return false
}

type questionOutput struct {
	Text        string   `json:"text"`
	Type        string   `json:"type"`
	Choices     []string `json:"choices"`
	EvalContext string   `json:"eval_context"`
}

// generateQuestion asks the provider for a question at the concept's
// effective level. Any failure degrades to the deterministic fallback; a
// question always comes back.
func (o *Orchestrator) generateQuestion(ctx context.Context, c concept.Concept) Question {
	ctx = llm.WithPurpose(ctx, "question-gen")
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	level := c.Level.Effective()
	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionUserMessage(
				c, o.graph.RelatedTitles(c.ID), level, o.state.history, o.cfg.MaxPriorQuestions,
			)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return fallbackQuestion(c)
	}

	var out questionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil || strings.TrimSpace(out.Text) == "" {
		return fallbackQuestion(c)
	}

	return Question{
		ID:          uuid.NewString(),
		ConceptID:   c.ID,
		Text:        out.Text,
		Type:        QuestionType(out.Type),
		Choices:     out.Choices,
		EvalContext: out.EvalContext,
	}
}

type assessmentOutput struct {
	Correct        bool   `json:"correct"`
	Explanation    string `json:"explanation"`
	SuggestedLevel *int   `json:"suggested_level"`
}

// evaluate asks the provider to grade the answer. Any failure degrades to
// an incorrect result with a fixed apology.
func (o *Orchestrator) evaluate(ctx context.Context, q Question, answer string, c concept.Concept) AssessmentResult {
	ctx = llm.WithPurpose(ctx, "answer-eval")
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	req := llm.Request{
		System: evalSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvalUserMessage(q, answer, c)},
		},
		Schema:      AssessmentSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: 0, // grading should be deterministic
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return AssessmentResult{Correct: false, Explanation: apologyExplanation}
	}

	var out assessmentOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return AssessmentResult{Correct: false, Explanation: apologyExplanation}
	}

	result := AssessmentResult{Correct: out.Correct, Explanation: out.Explanation}
	if out.SuggestedLevel != nil {
		lvl := concept.MasteryLevel(*out.SuggestedLevel)
		result.SuggestedLevel = &lvl
	}
	return result
}

// fallbackQuestion is the deterministic question used when generation
// fails. The concept's description doubles as the correctness context.
func fallbackQuestion(c concept.Concept) Question {
	return Question{
		ID:          FallbackQuestionID,
		ConceptID:   c.ID,
		Text:        "Explain the concept of " + c.Title,
		Type:        ShortAnswer,
		EvalContext: c.Description,
	}
}
