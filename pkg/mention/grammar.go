// Package mention implements the @mention text engine: the two textual
// mention encodings, a scanner that splits finished text into renderable
// segments, and the editor state machine that drives mention autocomplete.
package mention

import (
	"regexp"
)

// WordPolicy decides which characters may form a plain @word mention
type WordPolicy int

const (
	// WordASCII matches [A-Za-z0-9_], the behaviour observed in stored posts
	WordASCII WordPolicy = iota
	// WordUnicode also accepts letters and digits from any script
	WordUnicode
)

// The rich branch must come first. Go's regexp prefers the leftmost
// alternative at a given start position, so "@[Jane](1)" is read as one rich
// mention and never as a plain "@" followed by literal text.
const (
	richPattern         = `@\[(?P<display>[^\]]+)\]\((?P<id>\d+)\)`
	plainASCIIPattern   = `@(?P<username>\w+)`
	plainUnicodePattern = `@(?P<username>[\p{L}\p{N}_]+)`
)

// Scanner finds mention tokens in finished text
type Scanner struct {
	re       *regexp.Regexp
	display  int
	id       int
	username int
}

var (
	asciiScanner   = newScanner(WordASCII)
	unicodeScanner = newScanner(WordUnicode)
)

// NewScanner returns the scanner for policy
func NewScanner(policy WordPolicy) *Scanner {
	if policy == WordUnicode {
		return unicodeScanner
	}
	return asciiScanner
}

// DefaultScanner returns the ASCII scanner
func DefaultScanner() *Scanner {
	return asciiScanner
}

func newScanner(policy WordPolicy) *Scanner {
	plain := plainASCIIPattern
	if policy == WordUnicode {
		plain = plainUnicodePattern
	}

	re := regexp.MustCompile(richPattern + `|` + plain)
	return &Scanner{
		re:       re,
		display:  re.SubexpIndex("display"),
		id:       re.SubexpIndex("id"),
		username: re.SubexpIndex("username"),
	}
}

// PlainToken returns the plain mention encoding for username
func PlainToken(username string) string {
	return "@" + username
}

// RichToken returns the rich mention encoding carrying a display name and id
func RichToken(displayName, id string) string {
	return "@[" + displayName + "](" + id + ")"
}
