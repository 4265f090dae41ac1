package mention

import "strings"

// SegmentKind tags a Segment
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentMention
)

func (k SegmentKind) String() string {
	if k == SegmentMention {
		return "mention"
	}
	return "text"
}

// MarshalText lets segments serialize with readable kinds
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Form records which encoding a mention segment came from
type Form int

const (
	FormNone Form = iota
	FormPlain
	FormRich
)

func (f Form) String() string {
	switch f {
	case FormPlain:
		return "plain"
	case FormRich:
		return "rich"
	default:
		return ""
	}
}

func (f Form) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Segment is one renderable piece of finished text. Text segments carry
// Value; mention segments carry DisplayText and the Identifier handed to
// activation handlers (the numeric id for rich mentions, the username for
// plain ones). Raw always holds the exact source substring.
type Segment struct {
	Kind        SegmentKind `json:"kind" yaml:"kind"`
	Value       string      `json:"value,omitempty" yaml:"value,omitempty"`
	DisplayText string      `json:"display_text,omitempty" yaml:"display_text,omitempty"`
	Identifier  string      `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Form        Form        `json:"form,omitempty" yaml:"form,omitempty"`
	Raw         string      `json:"-" yaml:"-"`
}

// IsMention reports whether s is a mention segment
func (s Segment) IsMention() bool {
	return s.Kind == SegmentMention
}

// Visible returns the text shown to the reader. Mentions gain the @ prefix.
func (s Segment) Visible() string {
	if s.Kind == SegmentMention {
		return "@" + s.DisplayText
	}
	return s.Value
}

// Parse splits text with the default scanner
func Parse(text string) []Segment {
	return asciiScanner.Parse(text)
}

// Parse scans text left to right and returns gapless, non-overlapping
// segments. Empty input yields an empty slice; text without mentions yields
// one text segment. Malformed tokens stay literal text.
func (s *Scanner) Parse(text string) []Segment {
	if text == "" {
		return []Segment{}
	}

	matches := s.re.FindAllStringSubmatchIndex(text, -1)
	segments := make([]Segment, 0, 2*len(matches)+1)

	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			segments = append(segments, textSegment(text[last:start]))
		}
		segments = append(segments, s.mentionSegment(text, m))
		last = end
	}

	if last < len(text) {
		segments = append(segments, textSegment(text[last:]))
	}

	return segments
}

func textSegment(value string) Segment {
	return Segment{Kind: SegmentText, Value: value, Raw: value}
}

func (s *Scanner) mentionSegment(text string, m []int) Segment {
	seg := Segment{Kind: SegmentMention, Raw: text[m[0]:m[1]]}

	if d := m[2*s.display]; d >= 0 {
		seg.Form = FormRich
		seg.DisplayText = text[d:m[2*s.display+1]]
		seg.Identifier = text[m[2*s.id]:m[2*s.id+1]]
		return seg
	}

	seg.Form = FormPlain
	seg.DisplayText = text[m[2*s.username]:m[2*s.username+1]]
	seg.Identifier = seg.DisplayText
	return seg
}

// Mentions returns only the mention segments of text
func (s *Scanner) Mentions(text string) []Segment {
	var out []Segment
	for _, seg := range s.Parse(text) {
		if seg.IsMention() {
			out = append(out, seg)
		}
	}
	return out
}

// Identifiers returns the distinct identifiers mentioned in text, in order
// of first appearance
func (s *Scanner) Identifiers(text string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, seg := range s.Mentions(text) {
		if !seen[seg.Identifier] {
			seen[seg.Identifier] = true
			ids = append(ids, seg.Identifier)
		}
	}
	return ids
}

// Visible joins the visible text of segments
func Visible(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Visible())
	}
	return b.String()
}

// Activate routes activation of seg to handler. It returns true when the
// activation was consumed, which hosts must treat as "stop propagating to
// enclosing containers". Text segments are never consumed.
func Activate(seg Segment, handler func(identifier string)) bool {
	if !seg.IsMention() {
		return false
	}
	if handler != nil {
		handler(seg.Identifier)
	}
	return true
}
