package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextBuffer_InsertAndDelete(t *testing.T) {
	b := NewTextBuffer(0)

	assert.True(t, b.Insert([]rune("héllo")))
	assert.Equal(t, "héllo", b.Value())
	assert.Equal(t, 5, b.CaretOffset())

	b.SetCaretOffset(1)
	assert.True(t, b.Insert([]rune("@")))
	assert.Equal(t, "h@éllo", b.Value())
	assert.Equal(t, 2, b.CaretOffset())

	assert.True(t, b.Backspace())
	assert.Equal(t, "héllo", b.Value())
	assert.True(t, b.Delete())
	assert.Equal(t, "hllo", b.Value())

	b.SetCaretOffset(0)
	assert.False(t, b.Backspace())
	b.SetCaretOffset(b.Len())
	assert.False(t, b.Delete())
}

func TestTextBuffer_MaxLength(t *testing.T) {
	b := NewTextBuffer(5)

	assert.True(t, b.Insert([]rune("abcdefg")))
	assert.Equal(t, "abcde", b.Value())
	assert.False(t, b.Insert([]rune("x")))

	// owner updates are not limited
	b.SetText("abcdefghij")
	assert.Equal(t, 10, b.Len())
}

func TestTextBuffer_SetTextClampsCaret(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("hello world")
	b.SetCaretOffset(11)
	b.SetText("hi")
	assert.Equal(t, 2, b.CaretOffset())

	b.SetCaretOffset(-4)
	assert.Equal(t, 0, b.CaretOffset())
	b.SetCaretOffset(99)
	assert.Equal(t, 2, b.CaretOffset())
}

func TestTextBuffer_LineNavigation(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("first line\nab\nthird")

	b.SetCaretOffset(8) // "first li|ne"
	line, col := b.CaretPosition()
	assert.Equal(t, 0, line)
	assert.Equal(t, 8, col)

	assert.True(t, b.Down())
	line, col = b.CaretPosition()
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col, "column clamps to the shorter line")

	assert.True(t, b.Down())
	line, col = b.CaretPosition()
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
	assert.False(t, b.Down())

	assert.True(t, b.Up())
	assert.True(t, b.Up())
	line, col = b.CaretPosition()
	assert.Equal(t, 0, line)
	assert.Equal(t, 2, col)
	assert.False(t, b.Up())

	assert.True(t, b.End())
	assert.Equal(t, 10, b.CaretOffset())
	assert.True(t, b.Home())
	assert.Equal(t, 0, b.CaretOffset())
	assert.False(t, b.Home())

	assert.False(t, b.Left())
	assert.True(t, b.Right())
	assert.Equal(t, 1, b.CaretOffset())
}

func TestTextBuffer_DeleteWordBackward(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("hello @alice  ")
	b.SetCaretOffset(b.Len())

	assert.True(t, b.DeleteWordBackward())
	assert.Equal(t, "hello ", b.Value())
	assert.True(t, b.DeleteWordBackward())
	assert.Equal(t, "", b.Value())
	assert.False(t, b.DeleteWordBackward())
}

func TestTextBuffer_Focus(t *testing.T) {
	b := NewTextBuffer(0)
	assert.False(t, b.Focused())
	b.Focus()
	assert.True(t, b.Focused())
	b.Blur()
	assert.False(t, b.Focused())
}
