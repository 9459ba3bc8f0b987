package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/store"
)

type fakeRepo struct {
	results []store.QuizResult
	err     error
	limit   int
}

func (f *fakeRepo) Append(context.Context, store.QuizResultData) error { return nil }

func (f *fakeRepo) Recent(_ context.Context, limit int) ([]store.QuizResult, error) {
	f.limit = limit
	return f.results, f.err
}

func loaded(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistoryScreen_ListsResults(t *testing.T) {
	repo := &fakeRepo{results: []store.QuizResult{
		{QuizResultData: store.QuizResultData{
			SessionID: "s-2", BankPath: "/tmp/go.json", Total: 4, Correct: 3, Percentage: 75,
			FinishedAt: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		}},
		{QuizResultData: store.QuizResultData{
			SessionID: "s-1", BankPath: "/tmp/go.json", Total: 2, Correct: 0, Unanswered: 2,
			FinishedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		}},
	}}
	s := loaded(t, repo)

	if repo.limit != Limit {
		t.Errorf("Recent limit = %d, want %d", repo.limit, Limit)
	}

	view := s.View(100, 30)
	for _, want := range []string{"3/4 correct", "75.0%", "go.json", "0/2 correct"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Session: s-2") {
		t.Error("details should be collapsed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "Session: s-2") {
		t.Error("expected details after Enter")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &fakeRepo{})
	if !strings.Contains(s.View(100, 30), "No quizzes yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &fakeRepo{err: errors.New("db locked")})
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected error message")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(&fakeRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
