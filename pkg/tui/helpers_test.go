package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "s", pluralize(0))
	assert.Equal(t, "", pluralize(1))
	assert.Equal(t, "s", pluralize(2))
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Alice", 10, "Alice"},
		{"exact", "Alice", 5, "Alice"},
		{"truncated", "Alice Liddell", 8, "Alice..."},
		{"multibyte", "Ünal Öztürk", 7, "Ünal..."},
		{"tiny width", "Alice", 2, "Al"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestPreprocessContent(t *testing.T) {
	assert.Equal(t, "a\nb\nc", preprocessContent("a\r\nb\rc"))
}

func TestOverlayAt(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		overlay string
		top     int
		want    string
	}{
		{
			name:    "replaces lines from top",
			base:    "0\n1\n2\n3",
			overlay: "a\nb",
			top:     1,
			want:    "0\na\nb\n3",
		},
		{
			name:    "empty overlay lines keep base",
			base:    "0\n1\n2",
			overlay: "a\n\nc",
			top:     0,
			want:    "a\n1\nc",
		},
		{
			name:    "extends past base",
			base:    "0",
			overlay: "a\nb",
			top:     2,
			want:    "0\n\na\nb",
		},
		{
			name:    "negative top clamps",
			base:    "0\n1",
			overlay: "a",
			top:     -3,
			want:    "a\n1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlayAt(tt.base, tt.overlay, tt.top))
		})
	}
}
