package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/ui/theme"
)

// NoChoice marks a MultiChoice with nothing picked yet.
const NoChoice = -1

// MultiChoice is an option picker. It records a choice but never reveals
// which option is correct; scoring happens when the quiz is finished.
type MultiChoice struct {
	Options  []string
	Selected int
	Chosen   int
}

// NewMultiChoice creates a picker over options with the given prior choice
// (NoChoice if none). The cursor starts on the prior choice.
func NewMultiChoice(options []string, chosen int) MultiChoice {
	selected := 0
	if chosen >= 0 && chosen < len(options) {
		selected = chosen
	} else {
		chosen = NoChoice
	}
	return MultiChoice{
		Options:  options,
		Selected: selected,
		Chosen:   chosen,
	}
}

// Update handles arrow navigation, Enter and the digit shortcuts 1..n.
// The returned bool reports whether a choice was made by this message.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
		return m, true
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(m.Options) {
			m.Selected = int(key[0] - '1')
			m.Chosen = m.Selected
			return m, true
		}
	}

	return m, false
}

// View renders the options, one per line, lettered A-D.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %c)  %s", prefix, mark, question.OptionLetter(i), opt)

		switch {
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case i == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// HasChoice reports whether an option has been picked.
func (m MultiChoice) HasChoice() bool {
	return m.Chosen != NoChoice
}
