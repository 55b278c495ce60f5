package generator

import (
	"fmt"
	"strings"

	"papertutor/internal/models"
)

// summaryChunkLimit caps how much of the paper feeds the summary prompt.
const summaryChunkLimit = 20

const summaryTemplate = `You are an academic research assistant.

Based strictly on the following research paper content,
generate a detailed structured summary.

Include:

1. Research Problem (2-3 paragraphs)
2. Proposed Methodology (2-3 paragraphs)
3. Key Results and Findings (2-3 paragraphs)
4. Main Contributions (bullet points with explanation)
5. Limitations and Future Work (1-2 paragraphs)

Make it medium-length (approximately 400-600 words).
Do not add information not present in the content.

Paper Content:
%s`

const questionTemplate = `Context:
%s

Question:
%s

Provide a clear academic answer strictly based on the context.`

// SummaryPrompt concatenates the leading chunks of the paper and asks for a
// structured multi-section summary.
func SummaryPrompt(chunks []models.Chunk) string {
	limit := min(summaryChunkLimit, len(chunks))
	parts := make([]string, 0, limit)
	for _, chunk := range chunks[:limit] {
		parts = append(parts, chunk.Content)
	}
	return fmt.Sprintf(summaryTemplate, strings.Join(parts, " "))
}

// QuestionPrompt labels each retrieved passage with its source page and
// appends the user's question.
func QuestionPrompt(results []models.RetrievalResult, question string) string {
	var context strings.Builder
	for i, r := range results {
		if i > 0 {
			context.WriteString("\n\n")
		}
		fmt.Fprintf(&context, "(Page %d) %s", r.PageNumber, r.Content)
	}
	return fmt.Sprintf(questionTemplate, context.String(), question)
}
