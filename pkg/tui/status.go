package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusFeedback represents a temporary status message
type StatusFeedback struct {
	Message   string
	Icon      string
	ShowUntil time.Time
	Type      StatusType
}

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

func (st StatusType) icon() string {
	switch st {
	case StatusTypeSuccess:
		return "✓"
	case StatusTypeWarning:
		return "⚠"
	case StatusTypeError:
		return "×"
	default:
		return "ℹ"
	}
}

func (st StatusType) color() string {
	switch st {
	case StatusTypeSuccess:
		return ColorSuccess
	case StatusTypeWarning:
		return ColorWarning
	case StatusTypeError:
		return ColorError
	default:
		return ColorNormal
	}
}

// ClearStatusMsg is sent when a temporary status expires
type ClearStatusMsg struct{}

// StatusManager manages temporary status messages
type StatusManager struct {
	CurrentStatus     *StatusFeedback
	DefaultDuration   time.Duration
	PersistentMessage string
	PersistentType    StatusType

	now func() time.Time
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{
		DefaultDuration: 2 * time.Second,
		now:             time.Now,
	}
}

// ShowFeedback displays a status message and returns the command that
// clears it after DefaultDuration
func (sm *StatusManager) ShowFeedback(message string, statusType StatusType) tea.Cmd {
	sm.CurrentStatus = &StatusFeedback{
		Message:   message,
		Icon:      statusType.icon(),
		ShowUntil: sm.now().Add(sm.DefaultDuration),
		Type:      statusType,
	}

	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// ShowSuccess shows a success message
func (sm *StatusManager) ShowSuccess(message string) tea.Cmd {
	return sm.ShowFeedback(message, StatusTypeSuccess)
}

// ShowWarning shows a warning message
func (sm *StatusManager) ShowWarning(message string) tea.Cmd {
	return sm.ShowFeedback(message, StatusTypeWarning)
}

// ShowError shows an error message
func (sm *StatusManager) ShowError(message string) tea.Cmd {
	return sm.ShowFeedback(message, StatusTypeError)
}

// ShowInfo shows an info message
func (sm *StatusManager) ShowInfo(message string) tea.Cmd {
	return sm.ShowFeedback(message, StatusTypeInfo)
}

// SetPersistentMessage sets a message that persists until cleared
func (sm *StatusManager) SetPersistentMessage(message string, statusType StatusType) {
	sm.PersistentMessage = message
	sm.PersistentType = statusType
}

// ClearPersistentMessage clears the persistent message
func (sm *StatusManager) ClearPersistentMessage() {
	sm.PersistentMessage = ""
}

// Clear removes the current status
func (sm *StatusManager) Clear() {
	sm.CurrentStatus = nil
}

// IsActive checks if a status is currently showing
func (sm *StatusManager) IsActive() bool {
	if sm.CurrentStatus == nil {
		return false
	}

	if sm.now().After(sm.CurrentStatus.ShowUntil) {
		sm.CurrentStatus = nil
		return false
	}

	return true
}

// GetStatus returns the current status message if active, falling back to
// the persistent message
func (sm *StatusManager) GetStatus() (string, StatusType, bool) {
	if sm.IsActive() {
		return fmt.Sprintf("%s %s", sm.CurrentStatus.Icon, sm.CurrentStatus.Message), sm.CurrentStatus.Type, true
	}

	if sm.PersistentMessage != "" {
		return fmt.Sprintf("%s %s", sm.PersistentType.icon(), sm.PersistentMessage), sm.PersistentType, true
	}

	return "", StatusTypeInfo, false
}

// Render returns the styled status line, or "" when there is nothing to show
func (sm *StatusManager) Render() string {
	text, statusType, ok := sm.GetStatus()
	if !ok {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(statusType.color())).
		Padding(0, 1).
		Render(text)
}
