package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kviz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal too small for the quiz.\n\nNeed %d x %d, have %d x %d.",
			MinWidth, MinHeight, width, height))
}

// HeaderStats is the bank information shown on the right of the header.
type HeaderStats struct {
	BankName string
	BankSize int
	Unsaved  bool
}

// bar is the rounded box shared by the header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the app name on the left, the screen title in the
// middle and the bank stats on the right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  kviz")
	heading := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	var info strings.Builder
	if stats.BankName != "" {
		info.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats.BankName + "  "))
	}
	info.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("■ %d", stats.BankSize)))
	if stats.Unsaved {
		info.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  ● unsaved"))
	}
	right := info.String()

	// Center the title within the box, keeping at least one space on each side.
	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(heading))/2-lipgloss.Width(brand), 1)
	rightGap := max(inner-lipgloss.Width(brand)-leftGap-lipgloss.Width(heading)-lipgloss.Width(right), 1)

	return bar(width).Render(brand + strings.Repeat(" ", leftGap) + heading + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders the key hints in a single row.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return header + "\n" + lipgloss.NewStyle().Width(width).Height(body).Render(content) + "\n" + footer
}
