package question

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SummaryWidth is the number of text runes shown in a listing line.
const SummaryWidth = 80

// Render returns the full one-line description of q used in listings:
//
//	[TF] <text> (Correct: True|False)
//	[MCQ] <text> (A) o1 (B) o2 (C) o3 (D) o4 (Correct: X)
func Render(q Question) string {
	switch q := q.(type) {
	case TrueFalse:
		return fmt.Sprintf("[TF] %s (Correct: %s)", q.text, boolLabel(q.correct))
	case MultipleChoice:
		var b strings.Builder
		fmt.Fprintf(&b, "[MCQ] %s", q.text)
		for i, o := range q.options {
			fmt.Fprintf(&b, " (%c) %s", OptionLetter(i), o)
		}
		fmt.Fprintf(&b, " (Correct: %c)", OptionLetter(q.correctIndex))
		return b.String()
	default:
		panic("question: unknown variant")
	}
}

// Summary returns a short "[KIND] text" label with the text cut to SummaryWidth runes.
func Summary(q Question) string {
	text := q.Text()
	if utf8.RuneCountInString(text) > SummaryWidth {
		text = string([]rune(text)[:SummaryWidth])
	}
	return fmt.Sprintf("[%s] %s", q.Kind(), text)
}

// AnswerLabel renders a recorded answer in the terms of q's variant:
// "True"/"False" for true/false, the option letter for multiple choice.
func AnswerLabel(q Question, answer Answer) string {
	switch q.(type) {
	case TrueFalse:
		return boolLabel(answer == AnswerTrue)
	case MultipleChoice:
		return string(OptionLetter(int(answer)))
	default:
		panic("question: unknown variant")
	}
}

// CorrectLabel renders the answer that scores as correct for q.
func CorrectLabel(q Question) string {
	switch q := q.(type) {
	case TrueFalse:
		return boolLabel(q.correct)
	case MultipleChoice:
		return string(OptionLetter(q.correctIndex))
	default:
		panic("question: unknown variant")
	}
}

func boolLabel(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
