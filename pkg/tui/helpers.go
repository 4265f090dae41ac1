package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// pluralize returns "s" for counts other than 1, empty string for 1
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// truncateName shortens name to maxWidth runes, ending in "..." when cut
func truncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) <= maxWidth {
		return name
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}

// preprocessContent handles carriage returns from pasted text
func preprocessContent(content string) string {
	processed := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(processed, "\r", "\n")
}

// overlayAt draws overlay over base starting at row top. Empty overlay lines
// leave the base visible; lines past the end of base are appended.
func overlayAt(base, overlay string, top int) string {
	if top < 0 {
		top = 0
	}
	result := strings.Split(base, "\n")

	for i, line := range strings.Split(overlay, "\n") {
		if line == "" {
			continue
		}
		row := top + i
		for row >= len(result) {
			result = append(result, "")
		}
		result[row] = line
	}

	return strings.Join(result, "\n")
}

// formatHelpText joins help entries into one line
func formatHelpText(help []string) string {
	return HelpStyle.Render(strings.Join(help, "  •  "))
}

// renderHelpBox renders help right-aligned inside a dim border
func renderHelpBox(help []string, width int) string {
	if width < 8 {
		width = 8
	}
	aligned := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(formatHelpText(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDim)).
		Width(width - 2).
		Padding(0, 1).
		Render(aligned)
}
