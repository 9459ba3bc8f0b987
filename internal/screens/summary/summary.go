package summary

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/cert"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/store"
	"github.com/abhisek/kviz/internal/ui/components"
	"github.com/abhisek/kviz/internal/ui/layout"
	"github.com/abhisek/kviz/internal/ui/theme"
)

// resultSavedMsg reports the outcome of recording the result in history.
type resultSavedMsg struct {
	Err error
}

// certificateMsg reports the outcome of writing the PDF certificate.
type certificateMsg struct {
	Path string
	Err  error
}

// SummaryScreen displays the score of a finished quiz.
type SummaryScreen struct {
	ws     *screen.Workspace
	result *session.Result
	status string
	failed bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(ws *screen.Workspace, result *session.Result) *SummaryScreen {
	return &SummaryScreen{ws: ws, result: result}
}

// Init records the result in history when a result store is configured.
func (s *SummaryScreen) Init() tea.Cmd {
	if s.ws.Results == nil || s.result == nil {
		return nil
	}
	repo := s.ws.Results
	data := store.QuizResultData{
		SessionID:  s.result.SessionID,
		BankPath:   s.ws.Path,
		PlayerName: s.ws.Player,
		Total:      s.result.Total,
		Correct:    s.result.Correct,
		Unanswered: s.result.Unanswered,
		Percentage: s.result.Percentage,
		FinishedAt: s.result.FinishedAt,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return resultSavedMsg{Err: repo.Append(ctx, data)}
	}
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "C", Description: "Certificate"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultSavedMsg:
		if msg.Err != nil {
			s.ws.Logger().Warn("record result failed", zap.Error(msg.Err))
			s.setStatus("Could not save to history: "+msg.Err.Error(), true)
		} else {
			s.setStatus("Saved to history.", false)
		}
		return s, nil

	case certificateMsg:
		if msg.Err != nil {
			s.setStatus("Certificate failed: "+msg.Err.Error(), true)
		} else {
			s.setStatus("Certificate written to "+msg.Path, false)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "c", "C":
			return s, s.writeCertificate()
		}
	}
	return s, nil
}

func (s *SummaryScreen) setStatus(msg string, failed bool) {
	s.status = msg
	s.failed = failed
}

func (s *SummaryScreen) writeCertificate() tea.Cmd {
	data := cert.Data{Name: s.ws.Player, Bank: s.ws.Path, Result: s.result}
	return func() tea.Msg {
		pdf, err := cert.GeneratePDF(data)
		if err != nil {
			return certificateMsg{Err: err}
		}
		path := CertificateFileName(data.Result)
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return certificateMsg{Err: err}
		}
		return certificateMsg{Path: path}
	}
}

// CertificateFileName is the default file name for a result's certificate.
func CertificateFileName(r *session.Result) string {
	return fmt.Sprintf("kviz-certificate-%s.pdf", r.FinishedAt.Format("20060102-150405"))
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct answers: %d/%d        Percentage: %.1f%%        Unanswered: %d",
		res.Correct, res.Total, res.Percentage, res.Unanswered)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Score", res.Correct, res.Total, min(width-8, 60))
	bar.Suffix = fmt.Sprintf("%.1f%%", res.Percentage)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Questions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	var lines []string
	for i, item := range res.Items {
		lines = append(lines, renderItem(i, item))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))

	if s.status != "" {
		color := theme.TextDim
		if s.failed {
			color = theme.Error
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(color).
			Render(s.status))
	}

	return b.String()
}

// renderItem renders one breakdown line: status mark, summary, given and
// correct answers.
func renderItem(i int, item session.Item) string {
	correct := question.CorrectLabel(item.Question)
	switch {
	case !item.Answered:
		return theme.Unanswered.Render(fmt.Sprintf("–  %2d. %s   (no answer, correct: %s)",
			i+1, question.Summary(item.Question), correct))
	case item.Correct:
		return theme.Correct.Render(fmt.Sprintf("✓  %2d. %s   %s",
			i+1, question.Summary(item.Question), question.AnswerLabel(item.Question, item.Answer)))
	default:
		return theme.Incorrect.Render(fmt.Sprintf("✗  %2d. %s   %s, correct: %s",
			i+1, question.Summary(item.Question), question.AnswerLabel(item.Question, item.Answer), correct))
	}
}
