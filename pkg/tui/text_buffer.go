package tui

import "strings"

// TextBuffer holds the editor text as runes with a caret. It satisfies
// mention.Caret so the mention engine can move the caret after a commit.
type TextBuffer struct {
	runes     []rune
	caret     int
	focused   bool
	maxLength int
}

// NewTextBuffer creates an empty buffer. A maxLength of 0 means unlimited.
func NewTextBuffer(maxLength int) *TextBuffer {
	return &TextBuffer{maxLength: maxLength}
}

// Value returns the buffer text
func (b *TextBuffer) Value() string {
	return string(b.runes)
}

// Len returns the text length in runes
func (b *TextBuffer) Len() int {
	return len(b.runes)
}

// SetText replaces the text, keeping the caret where it was when possible.
// The length limit applies to typing only.
func (b *TextBuffer) SetText(text string) {
	b.runes = []rune(text)
	b.caret = clamp(b.caret, 0, len(b.runes))
}

// CaretOffset returns the caret as a rune offset
func (b *TextBuffer) CaretOffset() int {
	return b.caret
}

// SetCaretOffset moves the caret, clamped to the text
func (b *TextBuffer) SetCaretOffset(offset int) {
	b.caret = clamp(offset, 0, len(b.runes))
}

// Focus gives the buffer keyboard focus
func (b *TextBuffer) Focus() {
	b.focused = true
}

// Blur removes keyboard focus
func (b *TextBuffer) Blur() {
	b.focused = false
}

// Focused reports whether the buffer has focus
func (b *TextBuffer) Focused() bool {
	return b.focused
}

// Insert adds rs at the caret. Input that would exceed the length limit is
// truncated; it returns false when nothing was inserted.
func (b *TextBuffer) Insert(rs []rune) bool {
	if b.maxLength > 0 {
		room := b.maxLength - len(b.runes)
		if room <= 0 {
			return false
		}
		if len(rs) > room {
			rs = rs[:room]
		}
	}
	if len(rs) == 0 {
		return false
	}

	out := make([]rune, 0, len(b.runes)+len(rs))
	out = append(out, b.runes[:b.caret]...)
	out = append(out, rs...)
	out = append(out, b.runes[b.caret:]...)
	b.runes = out
	b.caret += len(rs)
	return true
}

// Backspace deletes the rune before the caret
func (b *TextBuffer) Backspace() bool {
	if b.caret == 0 {
		return false
	}
	b.runes = append(b.runes[:b.caret-1], b.runes[b.caret:]...)
	b.caret--
	return true
}

// Delete removes the rune under the caret
func (b *TextBuffer) Delete() bool {
	if b.caret >= len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:b.caret], b.runes[b.caret+1:]...)
	return true
}

// DeleteWordBackward deletes back to the previous word boundary
func (b *TextBuffer) DeleteWordBackward() bool {
	if b.caret == 0 {
		return false
	}
	i := b.caret
	for i > 0 && isSpace(b.runes[i-1]) {
		i--
	}
	for i > 0 && !isSpace(b.runes[i-1]) {
		i--
	}
	b.runes = append(b.runes[:i], b.runes[b.caret:]...)
	b.caret = i
	return true
}

// Left moves the caret one rune left
func (b *TextBuffer) Left() bool {
	if b.caret == 0 {
		return false
	}
	b.caret--
	return true
}

// Right moves the caret one rune right
func (b *TextBuffer) Right() bool {
	if b.caret >= len(b.runes) {
		return false
	}
	b.caret++
	return true
}

// Home moves the caret to the start of its line
func (b *TextBuffer) Home() bool {
	start := b.lineStart(b.caret)
	moved := start != b.caret
	b.caret = start
	return moved
}

// End moves the caret to the end of its line
func (b *TextBuffer) End() bool {
	end := b.lineEnd(b.caret)
	moved := end != b.caret
	b.caret = end
	return moved
}

// Up moves the caret to the same column on the previous line
func (b *TextBuffer) Up() bool {
	start := b.lineStart(b.caret)
	if start == 0 {
		return false
	}
	col := b.caret - start
	prevStart := b.lineStart(start - 1)
	b.caret = min(prevStart+col, start-1)
	return true
}

// Down moves the caret to the same column on the next line
func (b *TextBuffer) Down() bool {
	end := b.lineEnd(b.caret)
	if end >= len(b.runes) {
		return false
	}
	col := b.caret - b.lineStart(b.caret)
	nextStart := end + 1
	b.caret = min(nextStart+col, b.lineEnd(nextStart))
	return true
}

// Lines returns the text split into lines
func (b *TextBuffer) Lines() []string {
	return strings.Split(string(b.runes), "\n")
}

// CaretPosition returns the caret's line and column
func (b *TextBuffer) CaretPosition() (line, col int) {
	for i := 0; i < b.caret; i++ {
		if b.runes[i] == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

func (b *TextBuffer) lineStart(offset int) int {
	for offset > 0 && b.runes[offset-1] != '\n' {
		offset--
	}
	return offset
}

func (b *TextBuffer) lineEnd(offset int) int {
	for offset < len(b.runes) && b.runes[offset] != '\n' {
		offset++
	}
	return offset
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
