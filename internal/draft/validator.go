package draft

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/kviz/internal/question"
)

// Validator checks a decoded draft beyond the question constructors' rules.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if q passes.
	Validate(q question.Question) *ValidationError
}

// ValidationError describes why a draft failed a validator.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DistinctOptionsValidator rejects multiple-choice drafts with repeated
// options, which would make more than one letter correct.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q question.Question) *ValidationError {
	mc, ok := q.(question.MultipleChoice)
	if !ok {
		return nil
	}
	seen := make(map[string]int, question.OptionCount)
	for i, o := range mc.Options() {
		key := strings.ToLower(o)
		if j, dup := seen[key]; dup {
			return &ValidationError{
				Validator: v.Name(),
				Message: fmt.Sprintf("options %c and %c are the same",
					question.OptionLetter(j), question.OptionLetter(i)),
			}
		}
		seen[key] = i
	}
	return nil
}

// LengthValidator caps prompt and option length in runes. Zero disables
// a limit.
type LengthValidator struct {
	MaxText   int
	MaxOption int
}

func (v *LengthValidator) Name() string { return "length" }

func (v *LengthValidator) Validate(q question.Question) *ValidationError {
	if v.MaxText > 0 && utf8.RuneCountInString(q.Text()) > v.MaxText {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("text longer than %d characters", v.MaxText)}
	}
	mc, ok := q.(question.MultipleChoice)
	if !ok || v.MaxOption <= 0 {
		return nil
	}
	for i, o := range mc.Options() {
		if utf8.RuneCountInString(o) > v.MaxOption {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %c longer than %d characters", question.OptionLetter(i), v.MaxOption),
			}
		}
	}
	return nil
}
