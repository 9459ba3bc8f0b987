package editor

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
	"github.com/abhisek/kviz/internal/ui/layout"
	"github.com/abhisek/kviz/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// EditorScreen lists the bank and edits it in place. Changes stay in
// memory until saved.
type EditorScreen struct {
	ws       *screen.Workspace
	mode     mode
	selected int
	form     *questionForm
	status   string
	failed   bool
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.EscapeHandler = (*EditorScreen)(nil)

// New creates an editor over the workspace bank.
func New(ws *screen.Workspace) *EditorScreen {
	return &EditorScreen{ws: ws}
}

func (s *EditorScreen) Init() tea.Cmd {
	return nil
}

func (s *EditorScreen) Title() string {
	return "Question Bank"
}

func (s *EditorScreen) HandlesEscape() bool {
	return s.mode != modeList
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeForm:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Ctrl+S", Description: "Save question"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "A/M", Description: "Add TF/MCQ"},
		{Key: "Enter", Description: "Edit"},
		{Key: "D", Description: "Delete"},
		{Key: "S", Description: "Save file"},
		{Key: "R", Description: "Revert"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch s.mode {
	case modeForm:
		return s.updateForm(msg)
	case modeConfirmDelete:
		return s.updateConfirm(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.ws.Bank.Size()-1 {
			s.selected++
		}
	case "a":
		return s, s.openForm(newForm(question.KindTrueFalse, -1))
	case "m":
		return s, s.openForm(newForm(question.KindMultipleChoice, -1))
	case "enter", "e":
		q, err := s.ws.Bank.At(s.selected)
		if err != nil {
			return s, nil
		}
		return s, s.openForm(editForm(q, s.selected))
	case "d", "delete":
		if s.ws.Bank.Size() > 0 {
			s.mode = modeConfirmDelete
		}
	case "s":
		if err := s.ws.Save(); err != nil {
			s.setStatus(err.Error(), true)
		} else {
			s.setStatus(fmt.Sprintf("Saved %d questions to %s", s.ws.Bank.Size(), s.ws.Path), false)
		}
	case "r":
		if err := s.ws.Reload(); err != nil {
			s.setStatus(err.Error(), true)
		} else {
			s.clampSelection()
			s.setStatus("Reloaded from "+s.ws.Path, false)
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *EditorScreen) openForm(f *questionForm) tea.Cmd {
	s.form = f
	s.mode = modeForm
	s.status = ""
	return f.setFocus(0)
}

func (s *EditorScreen) updateForm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(formSubmitMsg); ok {
		return s.commitForm()
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		s.form = nil
		s.mode = modeList
		return s, nil
	}
	return s, s.form.Update(msg)
}

func (s *EditorScreen) commitForm() (screen.Screen, tea.Cmd) {
	q, err := s.form.Build()
	if err != nil {
		return s, nil
	}

	if s.form.index < 0 {
		s.ws.Bank.Add(q)
		s.selected = s.ws.Bank.Size() - 1
		s.setStatus("Question added.", false)
	} else {
		if err := s.ws.Bank.ReplaceAt(s.form.index, q); err != nil {
			s.setStatus(err.Error(), true)
			return s, nil
		}
		s.setStatus("Question updated.", false)
	}
	s.ws.MarkDirty()
	s.form = nil
	s.mode = modeList
	return s, nil
}

func (s *EditorScreen) updateConfirm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "y", "Y":
		if err := s.ws.Bank.RemoveAt(s.selected); err != nil {
			s.setStatus(err.Error(), true)
		} else {
			s.ws.MarkDirty()
			s.clampSelection()
			s.setStatus("Question removed.", false)
		}
		s.mode = modeList
	case "n", "N", "esc":
		s.mode = modeList
	}
	return s, nil
}

func (s *EditorScreen) clampSelection() {
	s.selected = max(0, min(s.selected, s.ws.Bank.Size()-1))
}

func (s *EditorScreen) setStatus(msg string, failed bool) {
	s.status = msg
	s.failed = failed
}

func (s *EditorScreen) View(width, height int) string {
	var b strings.Builder

	switch s.mode {
	case modeForm:
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Render("  " + s.form.title()))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.form.View()))
		return b.String()
	case modeConfirmDelete:
		q, _ := s.ws.Bank.At(s.selected)
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render("Delete this question?"))
		b.WriteString("\n\n")
		if q != nil {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(question.Summary(q)))
		}
		return b.String()
	}

	b.WriteString(s.renderList(width, height-3))
	if s.status != "" {
		color := theme.Success
		if s.failed {
			color = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(color).
			Render("  " + s.status))
	}
	return b.String()
}

// renderList renders a window of at most rows questions around the selection.
func (s *EditorScreen) renderList(width, rows int) string {
	qs := s.ws.Bank.List()
	if len(qs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The bank is empty. Press A or M to add a question.")
	}

	rows = max(rows, 1)
	start := max(0, s.selected-rows/2)
	end := min(len(qs), start+rows)
	start = max(0, end-rows)

	var b strings.Builder
	b.WriteString("\n")
	for i := start; i < end; i++ {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%3d. %s", prefix, i+1, question.Summary(qs[i]))))
		b.WriteString("\n")
	}
	return b.String()
}
