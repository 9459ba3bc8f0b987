package session

import "fmt"

// State is the lifecycle phase of a quiz session.
type State int

const (
	StateNotStarted State = iota // No quiz in progress
	StateActive                  // Accepting answers and navigation
	StateFinished                // Scored and frozen
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StateError reports an operation invoked in a state that does not allow it.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("session: cannot %s while %s", e.Op, e.State)
}

// EmptyBankError is returned by Start when there is nothing to sample.
type EmptyBankError struct{}

func (EmptyBankError) Error() string { return "session: question bank is empty" }

// ErrEmptyBank is the EmptyBankError value; compare with errors.Is.
var ErrEmptyBank error = EmptyBankError{}
