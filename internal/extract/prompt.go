package extract

import (
	"fmt"
	"strings"
)

const extractSystemPrompt = `You are an expert teacher analyzing study material. Your job is to break a document into its key concepts and map which concepts build on which.`

func buildExtractUserMessage(doc Document, maxConcepts int) string {
	var b strings.Builder

	if doc.Title != "" {
		b.WriteString(fmt.Sprintf("Document: %s\n\n", doc.Title))
	}
	b.WriteString("Content:\n")
	b.WriteString(doc.Text)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(`Instructions:
Extract the key concepts a learner must understand to master this document.
1. Identify between 3 and %d concepts. Prefer fewer, broader concepts over many narrow ones.
2. Give each concept a stable slug id (lowercase, hyphens), a short title, and a one-to-two sentence description grounded in the document.
3. For each concept, list the ids of other extracted concepts that should be understood first. Use only ids from this extraction. Leave the list empty for foundational concepts.
4. A concept must never list itself as a dependency.
5. Order the concepts so that foundational ones come first.`, maxConcepts))

	return b.String()
}
