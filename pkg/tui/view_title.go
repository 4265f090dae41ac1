package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ViewTitle is the title bar of a screen: a label plus optional detail text
// right of it
type ViewTitle struct {
	text   string
	detail string
}

// NewViewTitle creates a new view title with the given text
func NewViewTitle(text string) *ViewTitle {
	return &ViewTitle{
		text: text,
	}
}

// SetDetail sets the dimmed text shown after the title
func (v *ViewTitle) SetDetail(detail string) {
	v.detail = detail
}

func (v *ViewTitle) View() string {
	if v.text == "" {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color("0")).
		Bold(true).
		Padding(0, 1)

	out := titleStyle.Render(v.text)
	if v.detail != "" {
		out += HelpStyle.Render("  " + v.detail)
	}
	return out
}
