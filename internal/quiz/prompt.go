package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/grasp/internal/concept"
)

const questionSystemPrompt = `You are a study coach checking a learner's understanding of material they just read. You ask one question at a time, pitched at a specific comprehension level.`

// levelInstruction describes what each difficulty level should probe.
var levelInstruction = map[int]string{
	1: "Level 1 (MULTIPLE_CHOICE): test recognition. Write a question with exactly 4 choices, one clearly correct.",
	2: "Level 2 (SHORT_ANSWER): test understanding. Ask the learner to explain the concept in their own words. No choices.",
	3: "Level 3 (SCENARIO): test application. Describe a concrete situation and ask how the concept applies. No choices.",
	4: "Level 4 (OPEN_REASONING): test deep reasoning. Ask about edge cases, trade-offs, or implications. No choices.",
}

func buildQuestionUserMessage(c concept.Concept, related []string, level int, prior []string, maxPrior int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Concept: %s\n", c.Title))
	b.WriteString(fmt.Sprintf("Description: %s\n", c.Description))
	if len(related) > 0 {
		b.WriteString(fmt.Sprintf("Related concepts: %s\n", strings.Join(related, ", ")))
	}

	if len(prior) > 0 {
		recent := prior
		if maxPrior > 0 && len(recent) > maxPrior {
			recent = recent[len(recent)-maxPrior:]
		}
		b.WriteString("\nAlready asked this session (do NOT repeat any of these):\n")
		for _, q := range recent {
			b.WriteString(fmt.Sprintf("- %s\n", q))
		}
	}

	b.WriteString("\nInstructions:\n")
	b.WriteString(levelInstruction[clampLevel(level)])
	b.WriteString(`
Also provide eval_context: a short note on what a correct answer must contain, for the evaluator's eyes only.
Keep the question focused on this one concept. Plain text only, no markdown.`)

	return b.String()
}

const evalSystemPrompt = `You are a fair but rigorous study coach grading a learner's answer. Judge only whether the answer demonstrates understanding at the asked level. Partial credit does not exist: the verdict is correct or incorrect.`

func buildEvalUserMessage(q Question, answer string, c concept.Concept) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Concept: %s\n", c.Title))
	b.WriteString(fmt.Sprintf("Description: %s\n\n", c.Description))

	b.WriteString(fmt.Sprintf("Question (%s): %s\n", q.Type, q.Text))
	if len(q.Choices) > 0 {
		b.WriteString("Choices:\n")
		for i, choice := range q.Choices {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, choice))
		}
	}
	if q.EvalContext != "" {
		b.WriteString(fmt.Sprintf("\nWhat a correct answer must contain: %s\n", q.EvalContext))
	}

	b.WriteString(fmt.Sprintf("\nLearner's answer: %s\n", answer))

	b.WriteString(`
Instructions:
1. Decide whether the answer is correct for the asked question and level.
2. If correct, briefly reinforce why. If incorrect, state the correct answer and explain the misunderstanding in 2-4 sentences.
3. Be strict about substance but lenient about wording, spelling, and phrasing.`)

	return b.String()
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 4 {
		return 4
	}
	return level
}
