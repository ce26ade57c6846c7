package quizgen

import (
	"fmt"
	"strings"
)

// buildPrompt renders the generation instruction for one subject/topic pair.
// The prompt demands a bare JSON array — no markdown fencing — because the
// extraction step downstream is a bracket matcher, not a markdown parser.
func buildPrompt(subject, topic string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Generate exactly %d multiple-choice questions for students preparing for %s exams, on the topic \"%s\".\n\n",
		QuestionCount, subject, topic,
	))
	sb.WriteString("Rules:\n")
	sb.WriteString("- Each question has exactly 4 options labeled A, B, C and D.\n")
	sb.WriteString("- Exactly one option is correct.\n")
	sb.WriteString("- Include a concise explanation of the correct answer.\n")
	sb.WriteString("- Questions must be factually accurate and exam-relevant.\n\n")
	sb.WriteString("Respond with ONLY a raw JSON array. Do not wrap it in markdown code fences. ")
	sb.WriteString("Do not add any text before or after the array.\n\n")
	sb.WriteString("Each array element must have this exact shape:\n")
	sb.WriteString(`{"question": "...", "options": [{"label": "A", "text": "..."}, {"label": "B", "text": "..."}, {"label": "C", "text": "..."}, {"label": "D", "text": "..."}], "correctAnswer": "A", "explanation": "..."}`)
	sb.WriteString("\n")

	return sb.String()
}
