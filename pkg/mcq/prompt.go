package mcq

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice questions for university lecture quizzes.
Reply with a single JSON object and nothing else: no prose, no markdown fences.`

// BuildPrompt returns the system and user messages asking for one question about passage.
func BuildPrompt(passage string, difficulty Difficulty) (system string, user string) {
	var sb strings.Builder
	sb.WriteString("Write one multiple-choice question answerable from the lecture passage below.\n\n")
	sb.WriteString("Return JSON with exactly these fields:\n")
	sb.WriteString(`- "question": the question text` + "\n")
	sb.WriteString(`- "options": an array of exactly 4 answer strings` + "\n")
	sb.WriteString(`- "correct": the 0-based index (0-3) of the right option` + "\n")
	sb.WriteString(`- "difficulty": one of Easy, Medium, Hard` + "\n")
	sb.WriteString(`- "time_secs": seconds a student needs, as an integer` + "\n\n")
	fmt.Fprintf(&sb, "The question must be %s difficulty.\n\n", difficulty)
	sb.WriteString("Lecture passage:\n")
	sb.WriteString(strings.TrimSpace(passage))
	sb.WriteString("\n\nDifficulty: ")
	sb.WriteString(string(difficulty))

	return systemPrompt, sb.String()
}
