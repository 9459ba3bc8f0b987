package question

import (
	"fmt"
	"strings"
)

// Kind discriminates the two question variants.
type Kind string

const (
	KindTrueFalse      Kind = "TF"
	KindMultipleChoice Kind = "MCQ"
)

// OptionCount is the fixed number of options on a multiple-choice question.
const OptionCount = 4

// Answer is a recorded response to a question.
// For true/false: 1 = True, 0 = False. For multiple choice: the option index 0-3.
type Answer int

const (
	AnswerFalse Answer = 0
	AnswerTrue  Answer = 1
)

// Question is a sealed sum type over TrueFalse and MultipleChoice.
// Values can only be built through NewTrueFalse and NewMultipleChoice,
// so every Question in circulation has passed validation.
type Question interface {
	// Text returns the question prompt.
	Text() string

	// Kind returns the variant discriminator. It is derived from the
	// concrete type and cannot be set independently.
	Kind() Kind

	sealed()
}

// TrueFalse is a question answered with True or False.
type TrueFalse struct {
	text    string
	correct bool
}

// MultipleChoice is a question with exactly four options, one of them correct.
type MultipleChoice struct {
	text         string
	options      [OptionCount]string
	correctIndex int
}

var (
	_ Question = TrueFalse{}
	_ Question = MultipleChoice{}
)

// NewTrueFalse builds a true/false question.
func NewTrueFalse(text string, correct bool) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Message: "empty text"}
	}
	return TrueFalse{text: text, correct: correct}, nil
}

// NewMultipleChoice builds a multiple-choice question. Options are trimmed;
// the call fails if there are not exactly four, any is blank, or
// correctIndex is outside [0,3].
func NewMultipleChoice(text string, options []string, correctIndex int) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Message: "empty text"}
	}
	if len(options) != OptionCount {
		return nil, &ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("expected exactly %d options, got %d", OptionCount, len(options)),
		}
	}

	var opts [OptionCount]string
	for i, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("options[%d]", i),
				Message: fmt.Sprintf("empty option %c", OptionLetter(i)),
			}
		}
		opts[i] = o
	}

	if correctIndex < 0 || correctIndex >= OptionCount {
		return nil, &ValidationError{
			Field:   "correct_index",
			Message: fmt.Sprintf("correct index %d out of range [0,%d]", correctIndex, OptionCount-1),
		}
	}

	return MultipleChoice{text: text, options: opts, correctIndex: correctIndex}, nil
}

func (q TrueFalse) Text() string { return q.text }
func (q TrueFalse) Kind() Kind   { return KindTrueFalse }
func (TrueFalse) sealed()        {}

// Correct reports the correct truth value.
func (q TrueFalse) Correct() bool { return q.correct }

// CorrectAnswer returns the Answer that scores as correct.
func (q TrueFalse) CorrectAnswer() Answer {
	if q.correct {
		return AnswerTrue
	}
	return AnswerFalse
}

func (q MultipleChoice) Text() string { return q.text }
func (q MultipleChoice) Kind() Kind   { return KindMultipleChoice }
func (MultipleChoice) sealed()        {}

// Options returns a copy of the four options in display order.
func (q MultipleChoice) Options() []string {
	out := make([]string, OptionCount)
	copy(out, q.options[:])
	return out
}

// Option returns the option at index i. It panics if i is outside [0,3].
func (q MultipleChoice) Option(i int) string { return q.options[i] }

// CorrectIndex returns the index of the correct option.
func (q MultipleChoice) CorrectIndex() int { return q.correctIndex }

// IsCorrect reports whether answer is the correct response to q.
// Callers must not pass an unanswered slot; check for that before scoring.
func IsCorrect(q Question, answer Answer) bool {
	switch q := q.(type) {
	case TrueFalse:
		return answer == q.CorrectAnswer()
	case MultipleChoice:
		return int(answer) == q.correctIndex
	default:
		panic("question: unknown variant")
	}
}

// ValidAnswer reports whether answer is in the domain of q's variant.
func ValidAnswer(q Question, answer Answer) bool {
	switch q.(type) {
	case TrueFalse:
		return answer == AnswerTrue || answer == AnswerFalse
	case MultipleChoice:
		return answer >= 0 && int(answer) < OptionCount
	default:
		panic("question: unknown variant")
	}
}

// Equal reports whether a and b are the same variant with identical fields.
func Equal(a, b Question) bool {
	switch a := a.(type) {
	case TrueFalse:
		b, ok := b.(TrueFalse)
		return ok && a == b
	case MultipleChoice:
		b, ok := b.(MultipleChoice)
		return ok && a == b
	default:
		return false
	}
}

// OptionLetter maps an option index to its display letter (0 -> 'A').
func OptionLetter(i int) rune {
	return rune('A' + i)
}

// ParseOptionLetter maps a letter A-D (any case) back to an option index.
func ParseOptionLetter(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'A' || s[0] >= 'A'+OptionCount {
		return 0, false
	}
	return int(s[0] - 'A'), true
}
