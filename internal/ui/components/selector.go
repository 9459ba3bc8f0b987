package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kviz/internal/ui/theme"
)

// Selector picks one of a few fixed values with left/right or space.
type Selector struct {
	Label    string
	Values   []string
	Selected int
	Focused  bool
}

// NewSelector creates a selector positioned on selected.
func NewSelector(label string, values []string, selected int) Selector {
	if selected < 0 || selected >= len(values) {
		selected = 0
	}
	return Selector{Label: label, Values: values, Selected: selected}
}

// Update cycles the value while focused.
func (s Selector) Update(msg tea.Msg) Selector {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !s.Focused || len(s.Values) == 0 {
		return s
	}
	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected + len(s.Values) - 1) % len(s.Values)
	case "right", "l", "space", " ":
		s.Selected = (s.Selected + 1) % len(s.Values)
	}
	return s
}

// View renders every value with the selected one highlighted.
func (s Selector) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}

	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		if i == s.Selected {
			parts[i] = theme.Selected.Render("[" + v + "]")
		} else {
			parts[i] = theme.Unselected.Render(" " + v + " ")
		}
	}
	return labelStyle.Render(s.Label+": ") + strings.Join(parts, " ")
}
