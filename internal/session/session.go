// Package session runs a single quiz over a random sample of a question bank.
//
// A Session owns its sample and answers; it never mutates the bank it was
// started from. Every rejected call leaves the session exactly as it was.
// A Session is not safe for concurrent use.
package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/question"
)

// Source is the collection a session samples from.
type Source interface {
	List() []question.Question
}

type slot struct {
	value question.Answer
	set   bool
}

// Session is a quiz state machine: NotStarted -> Active -> Finished,
// with Reset returning to NotStarted from any state.
type Session struct {
	id       string
	state    State
	selected []question.Question
	answers  []slot
	cursor   int
	result   *Result

	rnd *rand.Rand
	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for sampling.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rnd = r }
}

// WithClock sets the clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session in the NotStarted state.
func New(opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start samples min(requested, size) distinct questions from src uniformly
// at random and makes the session Active with the cursor on the first one.
// A requested count below 1 is treated as 1. Starting while Active or
// Finished discards the previous quiz.
func (s *Session) Start(src Source, requested int) error {
	pool := src.List()
	if len(pool) == 0 {
		return ErrEmptyBank
	}
	n := max(1, min(requested, len(pool)))

	var perm []int
	if s.rnd != nil {
		perm = s.rnd.Perm(len(pool))
	} else {
		perm = rand.Perm(len(pool))
	}

	selected := make([]question.Question, n)
	for i := range n {
		selected[i] = pool[perm[i]]
	}

	s.id = uuid.New().String()
	s.state = StateActive
	s.selected = selected
	s.answers = make([]slot, n)
	s.cursor = 0
	s.result = nil
	return nil
}

// RecordAnswer stores value as the answer to question i, replacing any
// previous answer. The cursor does not move.
func (s *Session) RecordAnswer(i int, value question.Answer) error {
	if s.state != StateActive {
		return &StateError{Op: "record answer", State: s.state}
	}
	if err := s.check(i); err != nil {
		return err
	}
	q := s.selected[i]
	if !question.ValidAnswer(q, value) {
		return invalidAnswer(q, value)
	}
	s.answers[i] = slot{value: value, set: true}
	return nil
}

// Goto moves the cursor to i.
func (s *Session) Goto(i int) error {
	if s.state != StateActive {
		return &StateError{Op: "navigate", State: s.state}
	}
	if err := s.check(i); err != nil {
		return err
	}
	s.cursor = i
	return nil
}

// Next advances the cursor. It is a no-op on the last question.
func (s *Session) Next() error {
	if s.state != StateActive {
		return &StateError{Op: "navigate", State: s.state}
	}
	if s.cursor < len(s.selected)-1 {
		s.cursor++
	}
	return nil
}

// Prev moves the cursor back. It is a no-op on the first question.
func (s *Session) Prev() error {
	if s.state != StateActive {
		return &StateError{Op: "navigate", State: s.state}
	}
	if s.cursor > 0 {
		s.cursor--
	}
	return nil
}

// Finish scores the session and freezes it. Unanswered questions count as
// incorrect; the percentage is over all selected questions.
func (s *Session) Finish() (*Result, error) {
	if s.state != StateActive {
		return nil, &StateError{Op: "finish", State: s.state}
	}
	s.result = score(s.id, s.selected, s.answers, s.now())
	s.state = StateFinished
	return s.result.clone(), nil
}

// Reset discards everything and returns to NotStarted. Valid in any state.
func (s *Session) Reset() {
	s.id = ""
	s.state = StateNotStarted
	s.selected = nil
	s.answers = nil
	s.cursor = 0
	s.result = nil
}

// ID returns the identifier assigned at Start, or "" before the first Start.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Len returns the number of selected questions.
func (s *Session) Len() int { return len(s.selected) }

// Cursor returns the index of the current question.
func (s *Session) Cursor() int { return s.cursor }

// Current returns the question under the cursor, or nil when no quiz has
// been started.
func (s *Session) Current() question.Question {
	if len(s.selected) == 0 {
		return nil
	}
	return s.selected[s.cursor]
}

// Question returns selected question i.
func (s *Session) Question(i int) (question.Question, error) {
	if err := s.check(i); err != nil {
		return nil, err
	}
	return s.selected[i], nil
}

// Questions returns a copy of the sample in presentation order.
func (s *Session) Questions() []question.Question {
	out := make([]question.Question, len(s.selected))
	copy(out, s.selected)
	return out
}

// Answer returns the answer recorded for question i and whether one exists.
func (s *Session) Answer(i int) (question.Answer, bool) {
	if i < 0 || i >= len(s.answers) {
		return 0, false
	}
	return s.answers[i].value, s.answers[i].set
}

// Answers returns a copy of all answer slots; nil entries are unanswered.
func (s *Session) Answers() []*question.Answer {
	out := make([]*question.Answer, len(s.answers))
	for i, a := range s.answers {
		if a.set {
			v := a.value
			out[i] = &v
		}
	}
	return out
}

// AnsweredCount returns how many questions have an answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, a := range s.answers {
		if a.set {
			n++
		}
	}
	return n
}

// Result returns a copy of the score of a finished session, or nil before
// Finish.
func (s *Session) Result() *Result { return s.result.clone() }

func (s *Session) check(i int) error {
	if i < 0 || i >= len(s.selected) {
		return &bank.IndexError{Index: i, Len: len(s.selected)}
	}
	return nil
}

func invalidAnswer(q question.Question, v question.Answer) error {
	msg := "answer must be 0 (False) or 1 (True)"
	if q.Kind() == question.KindMultipleChoice {
		msg = "answer must be an option index 0-3"
	}
	return &question.ValidationError{Field: "answer", Message: fmt.Sprintf("%s, got %d", msg, v)}
}
