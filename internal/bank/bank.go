package bank

import (
	"fmt"

	"github.com/abhisek/kviz/internal/question"
)

// IndexError reports a position argument outside [0, Len-1].
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("index %d out of range (empty)", e.Index)
	}
	return fmt.Sprintf("index %d out of range [0,%d]", e.Index, e.Len-1)
}

// Bank is an ordered collection of questions. Insertion order is display
// and codec order. Not safe for concurrent use; hosts serialize access.
type Bank struct {
	questions []question.Question
}

// New creates a bank holding the given questions in order.
func New(qs ...question.Question) *Bank {
	b := &Bank{}
	for _, q := range qs {
		b.Add(q)
	}
	return b
}

// Add appends q. A nil question is ignored.
func (b *Bank) Add(q question.Question) {
	if q == nil {
		return
	}
	b.questions = append(b.questions, q)
}

// RemoveAt deletes the question at index i. Any index a caller held for a
// later position is stale after this call.
func (b *Bank) RemoveAt(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.questions = append(b.questions[:i], b.questions[i+1:]...)
	return nil
}

// ReplaceAt swaps the question at index i for q, keeping its position.
func (b *Bank) ReplaceAt(i int, q question.Question) error {
	if err := b.check(i); err != nil {
		return err
	}
	if q == nil {
		return fmt.Errorf("replace at %d: nil question", i)
	}
	b.questions[i] = q
	return nil
}

// ReplaceAll discards the current contents and adopts qs in order.
func (b *Bank) ReplaceAll(qs []question.Question) {
	next := make([]question.Question, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			next = append(next, q)
		}
	}
	b.questions = next
}

// At returns the question at index i.
func (b *Bank) At(i int) (question.Question, error) {
	if err := b.check(i); err != nil {
		return nil, err
	}
	return b.questions[i], nil
}

// List returns a copy of the questions in order.
func (b *Bank) List() []question.Question {
	out := make([]question.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Size returns the number of questions.
func (b *Bank) Size() int {
	return len(b.questions)
}

// Texts returns the question texts in order.
func (b *Bank) Texts() []string {
	out := make([]string, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Text()
	}
	return out
}

func (b *Bank) check(i int) error {
	if i < 0 || i >= len(b.questions) {
		return &IndexError{Index: i, Len: len(b.questions)}
	}
	return nil
}
