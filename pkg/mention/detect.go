package mention

// Caret is the capability the editor needs from whatever widget holds the
// text. Offsets are rune offsets. SetCaretOffset is only called after the
// editor has delivered the matching text through its OnChange callback.
type Caret interface {
	CaretOffset() int
	SetCaretOffset(offset int)
	Focus()
}

// Detect looks for an in-progress mention ending at caret. It finds the last
// @ before caret and returns the text between them as the query, with the
// rune offset of the @ as start. A space or newline between the @ and the
// caret means there is no mention in progress.
func Detect(text string, caret int) (query string, start int, ok bool) {
	runes := []rune(text)
	caret = clamp(caret, 0, len(runes))

	start = -1
	for i := caret - 1; i >= 0; i-- {
		if runes[i] == '@' {
			start = i
			break
		}
	}
	if start < 0 {
		return "", -1, false
	}

	candidate := runes[start+1 : caret]
	for _, r := range candidate {
		if r == ' ' || r == '\n' {
			return "", -1, false
		}
	}

	return string(candidate), start, true
}

// Splice replaces the runes between start and caret with "@username " and
// returns the new text and the caret offset just past the inserted space.
// It declines (ok=false) when start is not a valid offset into text.
func Splice(text string, start, caret int, username string) (result string, newCaret int, ok bool) {
	runes := []rune(text)
	if start < 0 || start > len(runes) {
		return text, caret, false
	}
	caret = clamp(caret, start, len(runes))

	inserted := []rune("@" + username + " ")

	out := make([]rune, 0, len(runes)-(caret-start)+len(inserted))
	out = append(out, runes[:start]...)
	out = append(out, inserted...)
	out = append(out, runes[caret:]...)

	return string(out), start + len(inserted), true
}

// LineOf returns the zero-based line holding rune offset
func LineOf(text string, offset int) int {
	line := 0
	for i, r := range []rune(text) {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
		}
	}
	return line
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
