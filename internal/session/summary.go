package session

import (
	"time"

	"github.com/abhisek/kviz/internal/question"
)

// Result is the frozen score of a finished session.
type Result struct {
	SessionID  string    `json:"session_id"`
	Total      int       `json:"total"`
	Correct    int       `json:"correct"`
	Unanswered int       `json:"unanswered"`
	Percentage float64   `json:"percentage"`
	FinishedAt time.Time `json:"finished_at"`
	Items      []Item    `json:"-"`
}

// Item is the per-question breakdown shown on summary screens.
type Item struct {
	Question question.Question
	Answer   question.Answer
	Answered bool
	Correct  bool
}

func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Items = append([]Item(nil), r.Items...)
	return &c
}

// Answered returns the number of answered questions.
func (r *Result) Answered() int {
	return r.Total - r.Unanswered
}

// Wrong returns the number of answered questions that were scored incorrect.
func (r *Result) Wrong() int {
	return r.Answered() - r.Correct
}

func score(id string, selected []question.Question, answers []slot, at time.Time) *Result {
	r := &Result{
		SessionID:  id,
		Total:      len(selected),
		FinishedAt: at,
		Items:      make([]Item, len(selected)),
	}
	for i, q := range selected {
		item := Item{Question: q, Answer: answers[i].value, Answered: answers[i].set}
		if !item.Answered {
			r.Unanswered++
		} else if question.IsCorrect(q, item.Answer) {
			item.Correct = true
			r.Correct++
		}
		r.Items[i] = item
	}
	if r.Total > 0 {
		r.Percentage = float64(r.Correct) / float64(r.Total) * 100
	}
	return r
}
