package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     int
		wantOK    bool
		wantQuery string
		wantStart int
	}{
		{"caret right after at", "hi @", 4, true, "", 3},
		{"partial username", "hi @al", 6, true, "al", 3},
		{"caret inside word", "hi @alice", 6, true, "al", 3},
		{"space after at aborts", "hi @al ice", 10, false, "", -1},
		{"newline after at aborts", "@al\nice", 7, false, "", -1},
		{"no at", "hello", 5, false, "", -1},
		{"at after caret ignored", "hi @al", 2, false, "", -1},
		{"last at wins", "@bob and @ja", 12, true, "ja", 9},
		{"at at start", "@", 1, true, "", 0},
		{"caret clamped high", "@al", 99, true, "al", 0},
		{"caret clamped low", "@al", -3, false, "", -1},
		{"multibyte runes before at", "héllo @jo", 9, true, "jo", 6},
		{"second line", "first\n@ma", 9, true, "ma", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, start, ok := Detect(tt.text, tt.caret)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantStart, start)
		})
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		start     int
		caret     int
		username  string
		wantText  string
		wantCaret int
		wantOK    bool
	}{
		{"end of text", "hi @al", 3, 6, "alice", "hi @alice ", 10, true},
		{"keeps text after caret", "hi @al there", 3, 6, "alice", "hi @alice  there", 10, true},
		{"caret mid word keeps rest of word", "hi @alxyz", 3, 6, "alice", "hi @alice xyz", 10, true},
		{"multibyte", "é @a", 2, 4, "anna", "é @anna ", 8, true},
		{"caret before start clamps", "x @a", 2, 0, "ann", "x @ann @a", 7, true},
		{"negative start declines", "x @a", -1, 4, "ann", "x @a", 4, false},
		{"start past end declines", "x", 5, 5, "ann", "x", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, caret, ok := Splice(tt.text, tt.start, tt.caret, tt.username)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, got)
			assert.Equal(t, tt.wantCaret, caret)
		})
	}
}

func TestLineOf(t *testing.T) {
	assert.Equal(t, 0, LineOf("abc", 2))
	assert.Equal(t, 1, LineOf("a\nbc", 2))
	assert.Equal(t, 2, LineOf("a\n\n@", 3))
	assert.Equal(t, 1, LineOf("a\nb", 99))
}
