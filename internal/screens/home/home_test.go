package home

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
	"github.com/abhisek/kviz/internal/screens/editor"
	"github.com/abhisek/kviz/internal/screens/quiz"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testWorkspace(t *testing.T) *screen.Workspace {
	t.Helper()
	return &screen.Workspace{
		Bank:      bank.New(question.SampleQuestions()...),
		Path:      filepath.Join(t.TempDir(), "bank.json"),
		QuizCount: 10,
	}
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return msg.Screen
}

func TestHome_StartQuiz(t *testing.T) {
	h := New(testWorkspace(t))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	_, ok := pushed(t, cmd).(*quiz.QuizScreen)
	assert.True(t, ok)
}

func TestHome_EditShortcut(t *testing.T) {
	h := New(testWorkspace(t))
	_, cmd := h.Update(keyPress('e'))

	_, ok := pushed(t, cmd).(*editor.EditorScreen)
	assert.True(t, ok)
}

func TestHome_HistoryDisabledWithoutStore(t *testing.T) {
	h := New(testWorkspace(t))
	_, cmd := h.Update(keyPress('h'))
	assert.Nil(t, cmd)
}

func TestHome_QuitClean(t *testing.T) {
	h := New(testWorkspace(t))
	_, cmd := h.Update(keyPress('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHome_QuitDirtyAsks(t *testing.T) {
	ws := testWorkspace(t)
	ws.MarkDirty()
	h := New(ws)

	_, cmd := h.Update(keyPress('q'))
	assert.Nil(t, cmd)
	assert.True(t, h.HandlesEscape())
	assert.Contains(t, h.View(100, 40), "unsaved changes")

	h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, h.HandlesEscape())

	h.Update(keyPress('q'))
	_, cmd = h.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.False(t, ws.Dirty(), "saved before quitting")
}

func TestHome_ViewShowsBankStats(t *testing.T) {
	h := New(testWorkspace(t))
	view := h.View(120, 40)
	for _, want := range []string{"4 QUESTIONS", "2 TRUE/FALSE", "2 MULTIPLE CHOICE", "START QUIZ"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
