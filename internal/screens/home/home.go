package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/router"
	"github.com/abhisek/kviz/internal/screen"
	"github.com/abhisek/kviz/internal/screens/editor"
	"github.com/abhisek/kviz/internal/screens/history"
	"github.com/abhisek/kviz/internal/screens/quiz"
	"github.com/abhisek/kviz/internal/ui/components"
	"github.com/abhisek/kviz/internal/ui/layout"
	"github.com/abhisek/kviz/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	ws          *screen.Workspace
	menu        components.Menu
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.EscapeHandler = (*HomeScreen)(nil)

// New creates a new HomeScreen over the workspace.
func New(ws *screen.Workspace) *HomeScreen {
	h := &HomeScreen{ws: ws}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "START QUIZ", Key: "s", Action: push(func() screen.Screen { return quiz.New(ws) })},
		{Label: "EDIT BANK", Key: "e", Action: push(func() screen.Screen { return editor.New(ws) })},
		{Label: "HISTORY", Key: "h", Disabled: ws.Results == nil, Action: push(func() screen.Screen { return history.New(ws.Results) })},
		{Label: "QUIT", Key: "q", Action: h.quit},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) HandlesEscape() bool {
	return h.confirmQuit
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Save & quit"},
			{Key: "N", Description: "Discard"},
			{Key: "Esc", Description: "Stay"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S/E/H/Q", Description: "Shortcuts"},
	}
}

func (h *HomeScreen) quit() tea.Cmd {
	if h.ws.Dirty() {
		h.confirmQuit = true
		return nil
	}
	return tea.Quit
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	if h.confirmQuit {
		switch kmsg.String() {
		case "y", "Y":
			if err := h.ws.Save(); err != nil {
				h.confirmQuit = false
				h.errMsg = err.Error()
				return h, nil
			}
			return h, tea.Quit
		case "n", "N":
			return h, tea.Quit
		case "esc":
			h.confirmQuit = false
		}
		return h, nil
	}

	h.errMsg = ""
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var tf, mcq int
	for _, q := range h.ws.Bank.List() {
		if q.Kind() == question.KindTrueFalse {
			tf++
		} else {
			mcq++
		}
	}

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.ws.Bank.Size(), tf, mcq, cw, compact),
	}
	if h.confirmQuit {
		sections = append(sections, renderQuitConfirm(cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu, cw))
	}
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Align(lipgloss.Center).
			Render(h.errMsg))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
