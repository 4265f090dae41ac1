package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withOS(t *testing.T, name string) {
	t.Helper()
	old := goos
	goos = name
	t.Cleanup(func() { goos = old })
}

func TestGetOS(t *testing.T) {
	tests := []struct {
		goos string
		want OSType
	}{
		{"darwin", OSMac},
		{"linux", OSLinux},
		{"windows", OSWindows},
		{"plan9", OSUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			withOS(t, tt.goos)
			assert.Equal(t, tt.want, GetOS())
		})
	}
}

func TestShortcutKey_GetAndKeys(t *testing.T) {
	post := Shortcuts.Post

	tests := []struct {
		goos     string
		want     string
		wantKeys []string
		help     string
	}{
		{"darwin", "ctrl+s", []string{"ctrl+s"}, "^s"},
		{"linux", "alt+s", []string{"alt+s", "ctrl+s"}, "M-s"},
		{"windows", "alt+s", []string{"alt+s", "ctrl+s"}, "M-s"},
		{"freebsd", "ctrl+s", []string{"ctrl+s"}, "^s"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			withOS(t, tt.goos)
			assert.Equal(t, tt.want, post.Get())
			assert.Equal(t, tt.wantKeys, post.Keys())
			assert.Equal(t, tt.help, FormatShortcutForHelp(post))
		})
	}
}

func TestFormatShortcutForHelp(t *testing.T) {
	withOS(t, "darwin")
	assert.Equal(t, "⌥x", FormatShortcutForHelp(ShortcutKey{Default: "alt+x"}))
	assert.Equal(t, "⇧tab", FormatShortcutForHelp(ShortcutKey{Default: "shift+tab"}))
	assert.Equal(t, "→", FormatShortcutForHelp(Shortcuts.NextMention))
	assert.Equal(t, "tab", FormatShortcutForHelp(Shortcuts.SwitchPane))
	assert.Empty(t, TerminalSetupTip())

	withOS(t, "linux")
	assert.Contains(t, TerminalSetupTip(), "stty -ixon")
}
