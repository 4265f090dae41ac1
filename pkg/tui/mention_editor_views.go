package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const suggestionBoxMinWidth = 24

// View renders the input with the suggestion box overlaid below the line
// holding the @ being completed
func (m *MentionEditor) View() string {
	base := m.renderer.Render(m.buffer, m.Placeholder, m.buffer.Focused(), m.Disabled)

	box := m.renderSuggestions()
	if box == "" {
		return base
	}

	return overlayAt(base, box, m.suggestionTop())
}

func (m *MentionEditor) renderSuggestions() string {
	state := m.core.State()
	if !state.Suggesting || !m.buffer.Focused() {
		return ""
	}

	width := m.renderer.Width / 2
	if width < suggestionBoxMinWidth {
		width = suggestionBoxMinWidth
	}
	inner := width - 2

	var rows []string
	switch {
	case len(state.Suggestions) > 0:
		for i, user := range state.Suggestions {
			rows = append(rows, renderSuggestionRow(user.Username, user.DisplayName, inner, i == state.Highlighted))
		}
	case state.Loading:
		rows = append(rows, m.spinner.View()+SuggestionMetaStyle.Render(" searching @"+state.Query))
	default:
		return ""
	}

	// pad so the box paints over the input border beneath it
	indent := strings.Repeat(" ", 2)
	box := SuggestionBoxStyle.Width(inner).Render(strings.Join(rows, "\n"))

	lines := strings.Split(box, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

func renderSuggestionRow(username, displayName string, width int, highlighted bool) string {
	label := "@" + username
	meta := ""
	if displayName != "" && displayName != username {
		meta = displayName
	}

	room := width - lipgloss.Width(label) - 3
	if meta != "" && room > 3 {
		meta = truncateName(meta, room)
	} else {
		meta = ""
	}

	if highlighted {
		row := "▸ " + label
		if meta != "" {
			row += " " + meta
		}
		return SuggestionHighlightStyle.Width(width).Render(row)
	}

	row := "  " + SuggestionStyle.Render(label)
	if meta != "" {
		row += " " + SuggestionMetaStyle.Render(meta)
	}
	return row
}

// HelpEntries lists the keys that currently apply
func (m *MentionEditor) HelpEntries() []string {
	if m.core.SuggestionsVisible() {
		return []string{"↑↓ choose", "enter mention", "esc dismiss"}
	}
	return []string{"@ mention someone"}
}
