package tui

import (
	"strings"
)

// InputRenderer draws a multi-line input box with a block cursor
type InputRenderer struct {
	Width int
	Rows  int
}

// NewInputRenderer creates a new input renderer
func NewInputRenderer(width, rows int) *InputRenderer {
	if rows < 1 {
		rows = 1
	}
	return &InputRenderer{Width: width, Rows: rows}
}

// FirstVisibleLine returns the first line shown so that the caret line stays
// inside the box
func (ir *InputRenderer) FirstVisibleLine(caretLine int) int {
	if caretLine < ir.Rows {
		return 0
	}
	return caretLine - ir.Rows + 1
}

// Render draws buf inside a bordered box. The cursor is only drawn when
// focused is true.
func (ir *InputRenderer) Render(buf *TextBuffer, placeholder string, focused, disabled bool) string {
	border := InactiveBorderStyle
	if focused && !disabled {
		border = ActiveBorderStyle
	}
	border = border.Width(ir.Width).Padding(0, 1)

	var body []string
	if buf.Len() == 0 {
		line := PlaceholderStyle.Render(placeholder)
		if focused && !disabled {
			line = CursorStyle.Render(" ") + line
		}
		body = append(body, line)
	} else {
		caretLine, caretCol := buf.CaretPosition()
		first := ir.FirstVisibleLine(caretLine)
		lines := buf.Lines()

		for i := first; i < len(lines) && i < first+ir.Rows; i++ {
			runes := []rune(lines[i])
			if !focused || disabled || i != caretLine {
				body = append(body, string(runes))
				continue
			}

			var line strings.Builder
			line.WriteString(string(runes[:caretCol]))
			if caretCol < len(runes) {
				line.WriteString(CursorStyle.Render(string(runes[caretCol])))
				line.WriteString(string(runes[caretCol+1:]))
			} else {
				line.WriteString(CursorStyle.Render(" "))
			}
			body = append(body, line.String())
		}
	}

	for len(body) < ir.Rows {
		body = append(body, "")
	}

	content := strings.Join(body, "\n")
	if disabled {
		content = DisabledStyle.Render(content)
	}
	return border.Render(content)
}
