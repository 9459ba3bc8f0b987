package draft

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write questions for a general-knowledge quiz.

Rules:
- Produce exactly the requested number of questions about the given topic.
- Mix true/false (TF) and multiple-choice (MCQ) questions.
- A TF question is a single factual statement that is clearly true or clearly false.
- An MCQ question has exactly four short, distinct options and exactly one correct answer. Distractors should be plausible.
- Facts must be accurate and uncontroversial. Avoid trick questions.
- Write the questions in the same language as the topic.
- Do not repeat or rephrase any question from the "already in the bank" list.`

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", strings.TrimSpace(input.Topic))
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildDedup(input.Existing, cfg.MaxExisting))

	return b.String()
}

// buildDedup formats existing prompts for the prompt, respecting the max
// limit. Returns "None" if there are none.
func buildDedup(existing []string, max int) string {
	if len(existing) == 0 {
		return "None"
	}

	// Newest questions sit at the end of the bank.
	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, q := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
