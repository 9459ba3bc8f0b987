package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/ui/components"
	"github.com/abhisek/kviz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	var body string
	switch s.phase {
	case phaseSetup:
		body = s.renderSetup(width)
	case phaseConfirm:
		body = s.renderConfirm(width)
	default:
		body = s.renderQuestion(width)
	}
	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg)
	}
	return body
}

func (s *QuizScreen) renderSetup(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("How many questions?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("The bank has %d. Leave empty for %d.", s.ws.Bank.Size(), s.ws.QuizCount)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.count.View()))
	return b.String()
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.sess.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d  [%s]", s.sess.Cursor()+1, s.sess.Len(), q.Kind()))
	bar := components.NewProgressBar("Answered", s.sess.AnsweredCount(), s.sess.Len(), 36).View()

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(bar) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + bar
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.picker.View()))

	hint := "Select 1-4 or use arrows + Enter"
	if _, ok := q.(question.TrueFalse); ok {
		hint = "Press T or F, or use arrows + Enter"
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(hint))

	return b.String()
}

func (s *QuizScreen) renderConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Finish the quiz?"))
	b.WriteString("\n")

	unanswered := s.sess.Len() - s.sess.AnsweredCount()
	note := "All questions are answered."
	if unanswered > 0 {
		note = fmt.Sprintf("%d unanswered question(s) will count as wrong.", unanswered)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(note))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, score it"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render("[R] Start over"))

	return b.String()
}
