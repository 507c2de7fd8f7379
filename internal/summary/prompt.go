package summary

import (
	"encoding/json"
	"fmt"
	"strings"
)

const summarySystemPrompt = `You are writing professional study notes for a learner who just finished a study session. You receive a structured report of concepts, mastery levels, and mistakes. Write clear, useful prose notes in markdown. Plain professional tone: no emoji, no exclamation marks, no cheerleading.`

func buildSummaryUserMessage(p Payload) string {
	var b strings.Builder

	// The payload goes in as JSON; the model reads structure better than
	// hand-rolled prose tables.
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		data = []byte("{}")
	}
	b.WriteString("Session report:\n")
	b.Write(data)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(`Instructions:
Write study notes in markdown with these sections:
1. "## Overview" — 2-3 sentences: %d concepts studied, %d mastered, overall picture.
2. "## Concepts" — one short subsection per concept: what it is and where the learner stands, based on the mastery level.
3. "## Review Points" — for each concept with mistakes, what went wrong and what to remember. Quote the correction, not the wrong answer. Skip this section entirely if there were no mistakes.
4. "## Next Steps" — 2-4 bullet points on what to study next, prioritizing unmastered concepts whose prerequisites are done.
Keep the whole document under 600 words.`, p.TotalConcepts, p.MasteredCount))

	return b.String()
}
