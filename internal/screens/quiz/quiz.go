package quiz

import (
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
	"github.com/abhisek/kviz/internal/screens/summary"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/ui/components"
	"github.com/abhisek/kviz/internal/ui/layout"
)

type phase int

const (
	phaseSetup phase = iota
	phaseActive
	phaseConfirm
)

// tfOptions is the display order of true/false answers.
var tfOptions = []string{"True", "False"}

// QuizScreen runs one quiz session over the workspace bank.
type QuizScreen struct {
	ws     *screen.Workspace
	sess   *session.Session
	phase  phase
	count  components.TextInput
	picker components.MultiChoice
	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a quiz screen. Options are passed to the session.
func New(ws *screen.Workspace, opts ...session.Option) *QuizScreen {
	count := components.NewTextInput("Questions", strconv.Itoa(ws.QuizCount), true, 3)
	return &QuizScreen{
		ws:    ws,
		sess:  session.New(opts...),
		count: count,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.count.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) HandlesEscape() bool {
	return s.phase != phaseSetup
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseSetup:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish"},
			{Key: "N", Description: "Keep going"},
			{Key: "R", Description: "Restart"},
		}
	}
	hints := []layout.KeyHint{{Key: "1-4", Description: "Answer"}}
	if _, ok := s.sess.Current().(question.TrueFalse); ok {
		hints = []layout.KeyHint{{Key: "T/F", Description: "Answer"}}
	}
	return append(hints,
		layout.KeyHint{Key: "←→", Description: "Prev/Next"},
		layout.KeyHint{Key: "Esc", Description: "Finish"},
	)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.phase == phaseSetup {
			var cmd tea.Cmd
			s.count, cmd = s.count.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch s.phase {
	case phaseSetup:
		return s.handleSetupKey(kmsg)
	case phaseConfirm:
		return s.handleConfirmKey(kmsg)
	default:
		return s.handleActiveKey(kmsg)
	}
}

func (s *QuizScreen) handleSetupKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		return s, cmd
	}

	n := s.ws.QuizCount
	if strings.TrimSpace(s.count.Value()) != "" {
		v, err := s.count.NumericValue()
		if err != nil {
			s.count.SetError("enter a number")
			return s, nil
		}
		n = v
	}

	if err := s.sess.Start(s.ws.Bank, n); err != nil {
		if errors.Is(err, session.ErrEmptyBank) {
			s.errMsg = "The question bank is empty. Add questions in the editor first."
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}

	s.errMsg = ""
	s.phase = phaseActive
	s.count.Blur()
	s.loadPicker()
	return s, nil
}

func (s *QuizScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		res, err := s.sess.Finish()
		if err != nil {
			s.errMsg = err.Error()
			s.phase = phaseActive
			return s, nil
		}
		next := summary.New(s.ws, res)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "n", "N", "esc":
		s.phase = phaseActive
	case "r", "R":
		s.sess.Reset()
		s.phase = phaseSetup
		return s, s.count.Focus()
	}
	return s, nil
}

func (s *QuizScreen) handleActiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.errMsg = ""

	switch msg.String() {
	case "esc":
		s.phase = phaseConfirm
		return s, nil
	case "right", "n", "tab":
		s.move(s.sess.Next())
		return s, nil
	case "left", "p", "shift+tab":
		s.move(s.sess.Prev())
		return s, nil
	}

	if _, ok := s.sess.Current().(question.TrueFalse); ok {
		switch msg.String() {
		case "t", "T":
			s.answer(question.AnswerTrue)
			return s, nil
		case "f", "F":
			s.answer(question.AnswerFalse)
			return s, nil
		}
	}

	var chose bool
	s.picker, chose = s.picker.Update(msg)
	if chose {
		s.answer(s.pickerAnswer())
	}
	return s, nil
}

// answer records value for the current question and advances.
func (s *QuizScreen) answer(value question.Answer) {
	if err := s.sess.RecordAnswer(s.sess.Cursor(), value); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.move(s.sess.Next())
}

func (s *QuizScreen) move(err error) {
	if err != nil {
		s.errMsg = err.Error()
	}
	s.loadPicker()
}

// loadPicker rebuilds the option picker for the question under the cursor,
// preselecting any recorded answer.
func (s *QuizScreen) loadPicker() {
	prev, answered := s.sess.Answer(s.sess.Cursor())

	switch q := s.sess.Current().(type) {
	case question.TrueFalse:
		chosen := components.NoChoice
		if answered {
			chosen = tfIndex(prev)
		}
		s.picker = components.NewMultiChoice(tfOptions, chosen)
	case question.MultipleChoice:
		chosen := components.NoChoice
		if answered {
			chosen = int(prev)
		}
		s.picker = components.NewMultiChoice(q.Options(), chosen)
	}
}

func (s *QuizScreen) pickerAnswer() question.Answer {
	if _, ok := s.sess.Current().(question.TrueFalse); ok {
		if s.picker.Chosen == 0 {
			return question.AnswerTrue
		}
		return question.AnswerFalse
	}
	return question.Answer(s.picker.Chosen)
}

func tfIndex(a question.Answer) int {
	if a == question.AnswerTrue {
		return 0
	}
	return 1
}
