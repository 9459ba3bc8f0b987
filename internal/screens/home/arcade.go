package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kviz/internal/ui/components"
	"github.com/abhisek/kviz/internal/ui/theme"
)

const arcadeTitleFull = ` ██╗  ██╗██╗   ██╗██╗███████╗
 ██║ ██╔╝██║   ██║██║╚══███╔╝
 █████╔╝ ██║   ██║██║  ███╔╝
 ██╔═██╗ ╚██╗ ██╔╝██║ ███╔╝
 ██║  ██╗ ╚████╔╝ ██║███████╗
 ╚═╝  ╚═╝  ╚═══╝  ╚═╝╚══════╝`

const arcadeTitleCompact = "K · V · I · Z"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the bank composition in a bordered box.
func renderStatsBar(total, tf, mcq, cw int, compact bool) string {
	totalStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	tfStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	mcqStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			totalStyle.Render(fmt.Sprintf("■%d", total)),
			tfStyle.Render(fmt.Sprintf("TF%d", tf)),
			mcqStyle.Render(fmt.Sprintf("MCQ%d", mcq)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			totalStyle.Render(fmt.Sprintf("■ %d QUESTIONS", total)),
			tfStyle.Render(fmt.Sprintf("%d TRUE/FALSE", tf)),
			mcqStyle.Render(fmt.Sprintf("%d MULTIPLE CHOICE", mcq)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(menu components.Menu, cw int) string {
	var buttons []string
	for i, item := range menu.Items {
		state := components.ButtonNormal
		switch {
		case item.Disabled:
			state = components.ButtonDisabled
		case i == menu.Selected:
			state = components.ButtonSelected
		}
		buttons = append(buttons, components.ArcadeButton(item.Label, state, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderQuitConfirm asks what to do with unsaved edits.
func renderQuitConfirm(cw int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("The bank has unsaved changes.") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Save and quit") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Error).Render("[N] Quit without saving") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[Esc] Stay")
	return components.ArcadeCard(body, cw)
}
