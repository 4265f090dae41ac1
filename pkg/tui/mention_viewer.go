package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pods-community/pods-cli/pkg/mention"
)

// MentionActivatedMsg is emitted when a rendered mention is activated
type MentionActivatedMsg struct {
	Identifier string
	Display    string
}

// MentionViewer displays finished text with mentions styled and lets the
// keyboard cycle through and activate them
type MentionViewer struct {
	scanner  *mention.Scanner
	segments []mention.Segment
	mentions []int // indexes into segments
	cursor   int   // index into mentions, -1 when none is focused
	focused  bool
	width    int

	// OnActivate, when set, is called with the mention identifier
	OnActivate func(identifier string)
}

// NewMentionViewer creates a viewer using scanner, or the default scanner
// when nil
func NewMentionViewer(scanner *mention.Scanner, width int) *MentionViewer {
	if scanner == nil {
		scanner = mention.DefaultScanner()
	}
	return &MentionViewer{scanner: scanner, width: width, cursor: -1}
}

// SetContent rescans text. The focused mention is kept when it still exists.
func (v *MentionViewer) SetContent(text string) {
	v.segments = v.scanner.Parse(text)
	v.mentions = v.mentions[:0]
	for i, seg := range v.segments {
		if seg.IsMention() {
			v.mentions = append(v.mentions, i)
		}
	}
	if v.cursor >= len(v.mentions) {
		v.cursor = len(v.mentions) - 1
	}
}

// Segments returns the parsed segments
func (v *MentionViewer) Segments() []mention.Segment {
	return v.segments
}

// SetWidth sets the wrap width
func (v *MentionViewer) SetWidth(width int) {
	v.width = width
}

// Focus starts keyboard navigation at the first mention
func (v *MentionViewer) Focus() {
	v.focused = true
	if v.cursor < 0 && len(v.mentions) > 0 {
		v.cursor = 0
	}
}

// Blur stops keyboard navigation
func (v *MentionViewer) Blur() {
	v.focused = false
}

// Focused reports whether the viewer has focus
func (v *MentionViewer) Focused() bool {
	return v.focused
}

// FocusedMention returns the mention under the cursor
func (v *MentionViewer) FocusedMention() (mention.Segment, bool) {
	if v.cursor < 0 || v.cursor >= len(v.mentions) {
		return mention.Segment{}, false
	}
	return v.segments[v.mentions[v.cursor]], true
}

// HandleInput moves between mentions and activates them. An activated
// mention reports handled so the key goes no further.
func (v *MentionViewer) HandleInput(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	if !v.focused || len(v.mentions) == 0 {
		return false, nil
	}

	switch msg.String() {
	case "right", "l", "n":
		v.cursor = (v.cursor + 1) % len(v.mentions)
		return true, nil
	case "left", "h", "p":
		v.cursor = (v.cursor - 1 + len(v.mentions)) % len(v.mentions)
		return true, nil
	case "enter":
		seg, ok := v.FocusedMention()
		if !ok {
			return false, nil
		}
		return v.Activate(seg)
	}

	return false, nil
}

// Activate routes seg to OnActivate and emits MentionActivatedMsg. Text
// segments are not consumed.
func (v *MentionViewer) Activate(seg mention.Segment) (bool, tea.Cmd) {
	if !mention.Activate(seg, v.OnActivate) {
		return false, nil
	}
	return true, func() tea.Msg {
		return MentionActivatedMsg{Identifier: seg.Identifier, Display: seg.DisplayText}
	}
}

// View renders the segments, wrapped to the viewer width
func (v *MentionViewer) View() string {
	focusedSeg := -1
	if v.focused && v.cursor >= 0 && v.cursor < len(v.mentions) {
		focusedSeg = v.mentions[v.cursor]
	}

	out := renderSegments(v.segments, focusedSeg)
	if v.width > 0 {
		out = wordwrap.String(out, v.width)
	}
	return out
}

func renderSegments(segments []mention.Segment, focused int) string {
	var b strings.Builder
	for i, seg := range segments {
		switch {
		case !seg.IsMention():
			b.WriteString(seg.Value)
		case i == focused:
			b.WriteString(MentionFocusedStyle.Render(seg.Visible()))
		default:
			b.WriteString(MentionStyle.Render(seg.Visible()))
		}
	}
	return b.String()
}

// RenderMentions styles the mentions in text and wraps it to width. A width
// of 0 disables wrapping.
func RenderMentions(scanner *mention.Scanner, text string, width int) string {
	if scanner == nil {
		scanner = mention.DefaultScanner()
	}
	out := renderSegments(scanner.Parse(text), -1)
	if width > 0 {
		out = wordwrap.String(out, width)
	}
	return out
}
