package question

import "fmt"

// ValidationError describes a question field that failed construction rules.
type ValidationError struct {
	Field   string // Offending field, e.g. "text", "options[2]", "correct_index"
	Message string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
