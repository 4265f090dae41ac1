package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorMention  = "39"  // Blue for mentions
	ColorError    = "196" // Red for errors
)

var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	// Suggestion list
	SuggestionBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorMention))

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	SuggestionHighlightStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color(ColorActive)).
					Background(lipgloss.Color(ColorSelected)).
					Bold(true)

	SuggestionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	// Rendered mentions
	MentionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMention)).
			Bold(true)

	MentionFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWhite)).
				Background(lipgloss.Color(ColorMention)).
				Bold(true)

	// Input
	CursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))
)
