package editor

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlS() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
}

// send delivers msg and drops the resulting command. Text input commands
// are cursor blinks that block until their timer fires.
func send(s *EditorScreen, msg tea.Msg) {
	s.Update(msg)
}

// submitForm delivers a key that should submit the form and feeds the
// resulting message back, the way the runtime would.
func submitForm(t *testing.T, s *EditorScreen, msg tea.Msg) {
	t.Helper()
	_, cmd := s.Update(msg)
	require.NotNil(t, cmd)
	out, ok := cmd().(formSubmitMsg)
	require.True(t, ok)
	s.Update(out)
}

func typeText(s *EditorScreen, text string) {
	for _, r := range text {
		send(s, keyPress(r))
	}
}

func newTestEditor(t *testing.T, qs ...question.Question) (*EditorScreen, *screen.Workspace) {
	t.Helper()
	ws := &screen.Workspace{
		Bank: bank.New(qs...),
		Path: filepath.Join(t.TempDir(), "bank.json"),
	}
	return New(ws), ws
}

func TestEditor_AddTrueFalse(t *testing.T) {
	s, ws := newTestEditor(t)

	send(s, keyPress('a'))
	require.True(t, s.HandlesEscape(), "form is open")
	typeText(s, "Go is compiled")
	submitForm(t, s, ctrlS())

	require.Equal(t, 1, ws.Bank.Size())
	q, err := ws.Bank.At(0)
	require.NoError(t, err)
	tf, ok := q.(question.TrueFalse)
	require.True(t, ok)
	assert.Equal(t, "Go is compiled", tf.Text())
	assert.True(t, tf.Correct())
	assert.True(t, ws.Dirty())
	assert.False(t, s.HandlesEscape(), "back to the list")
}

func TestEditor_EmptyTextRejected(t *testing.T) {
	s, ws := newTestEditor(t)

	send(s, keyPress('a'))
	submitForm(t, s, ctrlS())

	assert.Equal(t, 0, ws.Bank.Size())
	assert.True(t, s.HandlesEscape(), "form stays open")
	assert.Contains(t, s.View(100, 30), "empty text")
	assert.False(t, ws.Dirty())
}

func TestEditor_AddMultipleChoice(t *testing.T) {
	s, ws := newTestEditor(t)

	send(s, keyPress('m'))
	typeText(s, "Capital of France?")
	for _, opt := range []string{"Rome", "Paris", "Oslo", "Bern"} {
		send(s, specialKey(tea.KeyTab))
		typeText(s, opt)
	}
	send(s, specialKey(tea.KeyTab))   // correct selector
	send(s, specialKey(tea.KeyRight)) // B
	send(s, specialKey(tea.KeyTab))   // save button
	submitForm(t, s, specialKey(tea.KeyEnter))

	require.Equal(t, 1, ws.Bank.Size())
	q, _ := ws.Bank.At(0)
	mc, ok := q.(question.MultipleChoice)
	require.True(t, ok)
	assert.Equal(t, []string{"Rome", "Paris", "Oslo", "Bern"}, mc.Options())
	assert.Equal(t, 1, mc.CorrectIndex())
}

func TestEditor_MissingOptionFocusesIt(t *testing.T) {
	s, ws := newTestEditor(t)

	send(s, keyPress('m'))
	typeText(s, "Pick one")
	send(s, specialKey(tea.KeyTab))
	typeText(s, "only A")
	submitForm(t, s, ctrlS())

	assert.Equal(t, 0, ws.Bank.Size())
	require.NotNil(t, s.form)
	assert.Equal(t, 2, s.form.focus, "focus moves to option B")
	assert.Contains(t, s.View(100, 30), "empty option B")
}

func TestEditor_EditFlipsAnswer(t *testing.T) {
	tf, _ := question.NewTrueFalse("The sky is green", true)
	s, ws := newTestEditor(t, tf)

	send(s, specialKey(tea.KeyEnter))
	require.NotNil(t, s.form)
	assert.Equal(t, "The sky is green", s.form.text.Value())

	send(s, specialKey(tea.KeyTab))
	send(s, specialKey(tea.KeyRight))
	submitForm(t, s, ctrlS())

	require.Equal(t, 1, ws.Bank.Size())
	q, _ := ws.Bank.At(0)
	assert.False(t, q.(question.TrueFalse).Correct())
	assert.True(t, ws.Dirty())
}

func TestEditor_EscCancelsForm(t *testing.T) {
	s, ws := newTestEditor(t)

	send(s, keyPress('a'))
	typeText(s, "draft")
	send(s, specialKey(tea.KeyEscape))

	assert.Nil(t, s.form)
	assert.Equal(t, 0, ws.Bank.Size())
	assert.False(t, ws.Dirty())
}

func TestEditor_Delete(t *testing.T) {
	qs := question.SampleQuestions()
	s, ws := newTestEditor(t, qs...)

	send(s, specialKey(tea.KeyDown))
	send(s, keyPress('d'))
	send(s, keyPress('n'))
	assert.Equal(t, len(qs), ws.Bank.Size(), "declined")

	send(s, keyPress('d'))
	send(s, keyPress('y'))
	require.Equal(t, len(qs)-1, ws.Bank.Size())
	assert.Equal(t, qs[2].Text(), ws.Bank.List()[1].Text())
	assert.True(t, ws.Dirty())
}

func TestEditor_DeleteLastClampsSelection(t *testing.T) {
	tf, _ := question.NewTrueFalse("only", true)
	s, ws := newTestEditor(t, tf)

	send(s, keyPress('d'))
	send(s, keyPress('y'))
	assert.Equal(t, 0, ws.Bank.Size())
	assert.Equal(t, 0, s.selected)
	assert.Contains(t, s.View(100, 30), "The bank is empty")
}

func TestEditor_SaveWritesFile(t *testing.T) {
	s, ws := newTestEditor(t, question.SampleQuestions()...)
	ws.MarkDirty()

	send(s, keyPress('s'))

	_, err := os.Stat(ws.Path)
	require.NoError(t, err)
	assert.False(t, ws.Dirty())
	assert.Contains(t, s.View(100, 30), "Saved 4 questions")
}

func TestEditor_RevertWithoutFileFails(t *testing.T) {
	s, ws := newTestEditor(t, question.SampleQuestions()...)

	send(s, keyPress('r'))
	assert.Equal(t, 4, ws.Bank.Size(), "bank untouched")
	assert.True(t, s.failed)
}

func TestEditor_EscPops(t *testing.T) {
	s, _ := newTestEditor(t)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
