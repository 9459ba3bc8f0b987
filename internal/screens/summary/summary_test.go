package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/store"
)

type fakeResults struct {
	appended []store.QuizResultData
	err      error
}

func (f *fakeResults) Append(_ context.Context, data store.QuizResultData) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, data)
	return nil
}

func (f *fakeResults) Recent(context.Context, int) ([]store.QuizResult, error) {
	return nil, nil
}

func testResult(t *testing.T) *session.Result {
	t.Helper()
	tf, err := question.NewTrueFalse("Go has generics", true)
	require.NoError(t, err)
	mc, err := question.NewMultipleChoice("2+2=?", []string{"3", "4", "5", "22"}, 1)
	require.NoError(t, err)

	return &session.Result{
		SessionID:  "sess-1",
		Total:      2,
		Correct:    1,
		Unanswered: 1,
		Percentage: 50,
		FinishedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Items: []session.Item{
			{Question: tf, Answer: question.AnswerTrue, Answered: true, Correct: true},
			{Question: mc},
		},
	}
}

func testWorkspace(results store.ResultRepo) *screen.Workspace {
	return &screen.Workspace{
		Bank:    bank.New(),
		Path:    "bank.json",
		Results: results,
		Player:  "Ana",
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testWorkspace(nil), testResult(t))
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testWorkspace(nil), testResult(t))
	view := s.View(100, 30)

	for _, want := range []string{"Quiz complete!", "Correct answers: 1/2", "50.0%", "Go has generics", "no answer, correct: B"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_RecordsResult(t *testing.T) {
	repo := &fakeResults{}
	s := New(testWorkspace(repo), testResult(t))

	cmd := s.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.Len(t, repo.appended, 1)
	assert.Equal(t, "sess-1", repo.appended[0].SessionID)
	assert.Equal(t, "Ana", repo.appended[0].PlayerName)
	assert.Equal(t, "bank.json", repo.appended[0].BankPath)
	assert.InDelta(t, 50.0, repo.appended[0].Percentage, 1e-9)

	s.Update(msg)
	assert.Contains(t, s.View(100, 30), "Saved to history.")
}

func TestSummaryScreen_RecordFailureIsShown(t *testing.T) {
	repo := &fakeResults{err: errors.New("disk full")}
	s := New(testWorkspace(repo), testResult(t))

	s.Update(s.Init()())
	assert.Contains(t, s.View(100, 30), "disk full")
}

func TestSummaryScreen_NoHistoryWithoutStore(t *testing.T) {
	s := New(testWorkspace(nil), testResult(t))
	assert.Nil(t, s.Init())
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(testWorkspace(nil), testResult(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_EscPops(t *testing.T) {
	s := New(testWorkspace(nil), testResult(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}

func TestSummaryScreen_Certificate(t *testing.T) {
	t.Chdir(t.TempDir())

	res := testResult(t)
	s := New(testWorkspace(nil), res)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	require.NotNil(t, cmd)

	msg, ok := cmd().(certificateMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "kviz-certificate-20260301-120000.pdf", msg.Path)

	s.Update(msg)
	assert.Contains(t, s.View(100, 30), "Certificate written to")
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testWorkspace(nil), testResult(t))
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Fatalf("expected 2 key hints, got %d", len(hints))
	}
}
