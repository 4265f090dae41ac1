package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// goos is runtime.GOOS, replaceable in tests
var goos = runtime.GOOS

// GetOS returns the current operating system type
func GetOS() OSType {
	switch goos {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	switch GetOS() {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Keys returns every key that triggers the shortcut: the one for this OS
// first, then the default. Terminals that swallow the OS key (ctrl+s as
// XOFF) can still use the other.
func (s ShortcutKey) Keys() []string {
	keys := []string{s.Get()}
	if s.Default != "" && s.Default != keys[0] {
		keys = append(keys, s.Default)
	}
	return keys
}

// Shortcuts used by the composer
var Shortcuts = struct {
	Post        ShortcutKey
	SwitchPane  ShortcutKey
	Quit        ShortcutKey
	ForceQuit   ShortcutKey
	NextMention ShortcutKey
	PrevMention ShortcutKey
	Open        ShortcutKey
}{
	Post: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // ctrl+s is XOFF unless the terminal runs stty -ixon
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	SwitchPane: ShortcutKey{
		Default: "tab",
	},
	Quit: ShortcutKey{
		Default: "esc",
	},
	ForceQuit: ShortcutKey{
		Default: "ctrl+c",
	},
	NextMention: ShortcutKey{
		Default: "right",
	},
	PrevMention: ShortcutKey{
		Default: "left",
	},
	Open: ShortcutKey{
		Default: "enter",
	},
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	shortcut := key.Get()
	// M- prefix for Alt is the common convention outside macOS
	if GetOS() == OSMac {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "⇧")

	switch shortcut {
	case "right":
		return "→"
	case "left":
		return "←"
	}
	return shortcut
}

// TerminalSetupTip returns a hint for terminals where the default shortcuts
// need setup, or "" when none is needed
func TerminalSetupTip() string {
	if GetOS() == OSLinux {
		return "TIP: Run 'stty -ixon' to also post with ^s"
	}
	return ""
}
