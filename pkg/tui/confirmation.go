package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationModel is an inline yes/no prompt. While active it takes every
// key until answered.
type ConfirmationModel struct {
	active      bool
	message     string
	destructive bool
	onConfirm   func() tea.Cmd
	onCancel    func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the prompt. Either callback may be nil.
func (m *ConfirmationModel) Show(message string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.message = message
	m.destructive = destructive
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update answers the prompt on y/n/esc. Other keys are swallowed.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}

	return nil
}

// ViewWithWidth renders the prompt centered in width
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	if !m.active {
		return ""
	}

	message := fmt.Sprintf("%s %s", m.message, formatConfirmOptions(m.destructive))
	if width > 0 && lipgloss.Width(message) < width {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(message)
	}
	return message
}

func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true)
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	if destructive {
		yes = yes.Foreground(lipgloss.Color(ColorError))
	}
	return yes.Render("[y]es") + " / " + no.Render("[n]o")
}
