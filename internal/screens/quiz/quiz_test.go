package quiz

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
	"github.com/abhisek/kviz/internal/screens/summary"
	"github.com/abhisek/kviz/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestQuiz(qs ...question.Question) *QuizScreen {
	ws := &screen.Workspace{Bank: bank.New(qs...), Path: "bank.json", QuizCount: 4}
	return New(ws, session.WithRand(rand.New(rand.NewPCG(1, 2))))
}

// correctKey returns the key press that answers q correctly.
func correctKey(q question.Question) tea.KeyPressMsg {
	switch q := q.(type) {
	case question.TrueFalse:
		if q.Correct() {
			return keyPress('t')
		}
		return keyPress('f')
	case question.MultipleChoice:
		return keyPress(rune('1' + q.CorrectIndex()))
	}
	panic("unknown question")
}

func TestQuiz_EmptyBank(t *testing.T) {
	s := newTestQuiz()

	s.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, phaseSetup, s.phase)
	assert.Equal(t, session.StateNotStarted, s.sess.State())
	assert.Contains(t, s.View(100, 30), "The question bank is empty")
	assert.False(t, s.HandlesEscape(), "Esc leaves the screen from setup")
}

func TestQuiz_DefaultCount(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)
	s.ws.QuizCount = 3

	s.Update(specialKey(tea.KeyEnter))

	require.Equal(t, phaseActive, s.phase)
	assert.Equal(t, 3, s.sess.Len())
	assert.True(t, s.HandlesEscape())
}

func TestQuiz_TypedCountIgnoresLetters(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)

	s.Update(keyPress('x'))
	s.Update(keyPress('2'))
	s.Update(specialKey(tea.KeyEnter))

	require.Equal(t, phaseActive, s.phase)
	assert.Equal(t, 2, s.sess.Len())
}

func TestQuiz_CountClampedToBank(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)

	s.Update(keyPress('9'))
	s.Update(keyPress('9'))
	s.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, 4, s.sess.Len())
}

func TestQuiz_AnswerAllCorrect(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)
	s.Update(specialKey(tea.KeyEnter))
	require.Equal(t, 4, s.sess.Len())

	for i := range s.sess.Len() {
		require.Equal(t, i, s.sess.Cursor())
		s.Update(correctKey(s.sess.Current()))
	}
	assert.Equal(t, 4, s.sess.AnsweredCount())
	assert.Equal(t, 3, s.sess.Cursor(), "cursor stays on the last question")

	s.Update(specialKey(tea.KeyEscape))
	require.Equal(t, phaseConfirm, s.phase)
	assert.Contains(t, s.View(100, 30), "All questions are answered.")

	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*summary.SummaryScreen)
	assert.True(t, ok)

	res := s.sess.Result()
	require.NotNil(t, res)
	assert.Equal(t, 4, res.Correct)
	assert.InDelta(t, 100.0, res.Percentage, 1e-9)
}

func TestQuiz_NavigationKeepsAnswers(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)
	s.Update(specialKey(tea.KeyEnter))

	first := s.sess.Current()
	s.Update(correctKey(first))
	require.Equal(t, 1, s.sess.Cursor())

	s.Update(specialKey(tea.KeyLeft))
	require.Equal(t, 0, s.sess.Cursor())
	assert.True(t, s.picker.HasChoice(), "recorded answer is preselected")

	s.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.sess.Cursor(), "no-op on the first question")

	s.Update(keyPress('n'))
	s.Update(keyPress('n'))
	assert.Equal(t, 2, s.sess.Cursor())

	got, ok := s.sess.Answer(0)
	require.True(t, ok)
	assert.True(t, question.IsCorrect(first, got))
}

func TestQuiz_ArrowsAndEnterAnswer(t *testing.T) {
	mc, _ := question.NewMultipleChoice("Pick C", []string{"a", "b", "c", "d"}, 2)
	s := newTestQuiz(mc)
	s.Update(specialKey(tea.KeyEnter))

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	got, ok := s.sess.Answer(0)
	require.True(t, ok)
	assert.Equal(t, question.Answer(2), got)
}

func TestQuiz_TrueFalsePicker(t *testing.T) {
	tf, _ := question.NewTrueFalse("Go has goroutines", true)
	s := newTestQuiz(tf)
	s.Update(specialKey(tea.KeyEnter))

	s.Update(keyPress('2'))
	got, ok := s.sess.Answer(0)
	require.True(t, ok)
	assert.Equal(t, question.AnswerFalse, got, "second option is False")

	s.Update(keyPress('t'))
	got, _ = s.sess.Answer(0)
	assert.Equal(t, question.AnswerTrue, got)
}

func TestQuiz_ConfirmWarnsAboutUnanswered(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)
	s.Update(specialKey(tea.KeyEnter))

	s.Update(specialKey(tea.KeyEscape))
	assert.Contains(t, s.View(100, 30), "4 unanswered")

	s.Update(keyPress('n'))
	assert.Equal(t, phaseActive, s.phase)
	assert.Equal(t, session.StateActive, s.sess.State())
}

func TestQuiz_Restart(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)
	s.Update(specialKey(tea.KeyEnter))
	s.Update(correctKey(s.sess.Current()))

	s.Update(specialKey(tea.KeyEscape))
	s.Update(keyPress('r'))

	assert.Equal(t, phaseSetup, s.phase)
	assert.Equal(t, session.StateNotStarted, s.sess.State())
	assert.Zero(t, s.sess.AnsweredCount())
}

func TestQuiz_QuestionView(t *testing.T) {
	s := newTestQuiz(question.SampleQuestions()...)
	s.Update(specialKey(tea.KeyEnter))

	view := s.View(100, 30)
	assert.Contains(t, view, "Question 1/4")
	assert.True(t, strings.Contains(view, s.sess.Current().Text()))
	assert.Contains(t, view, "0/4")
}
