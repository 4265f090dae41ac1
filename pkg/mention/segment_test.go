package mention

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignoreRaw = cmpopts.IgnoreFields(Segment{}, "Raw")

func text(v string) Segment {
	return Segment{Kind: SegmentText, Value: v}
}

func plain(username string) Segment {
	return Segment{Kind: SegmentMention, DisplayText: username, Identifier: username, Form: FormPlain}
}

func rich(display, id string) Segment {
	return Segment{Kind: SegmentMention, DisplayText: display, Identifier: id, Form: FormRich}
}

// joinRaw concatenates the source text of segments
func joinRaw(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Raw)
	}
	return b.String()
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Segment{},
		},
		{
			name:  "no mentions",
			input: "hello world",
			want:  []Segment{text("hello world")},
		},
		{
			name:  "both grammars",
			input: "hi @[Jane Doe](42) and @bob!",
			want: []Segment{
				text("hi "),
				rich("Jane Doe", "42"),
				text(" and "),
				plain("bob"),
				text("!"),
			},
		},
		{
			name:  "mention only",
			input: "@alice",
			want:  []Segment{plain("alice")},
		},
		{
			name:  "adjacent mentions",
			input: "@alice@bob",
			want:  []Segment{plain("alice"), plain("bob")},
		},
		{
			name:  "rich form wins over plain at same start",
			input: "@[bob](7)",
			want:  []Segment{rich("bob", "7")},
		},
		{
			name:  "non numeric id stays literal",
			input: "@[Jane](abc)",
			want:  []Segment{text("@[Jane](abc)")},
		},
		{
			name:  "unclosed bracket stays literal",
			input: "see @[Jane Doe(42)",
			want:  []Segment{text("see @[Jane Doe(42)")},
		},
		{
			name:  "empty display stays literal",
			input: "@[](42)",
			want:  []Segment{text("@[](42)")},
		},
		{
			name:  "bare at sign",
			input: "meet @ noon",
			want:  []Segment{text("meet @ noon")},
		},
		{
			name:  "email-like text",
			input: "mail bob@example.com",
			want:  []Segment{text("mail bob"), plain("example"), text(".com")},
		},
		{
			name:  "punctuation ends a plain mention",
			input: "thanks @jane_doe, see you",
			want:  []Segment{text("thanks "), plain("jane_doe"), text(", see you")},
		},
		{
			name:  "non-ascii letters end a plain mention by default",
			input: "@josé",
			want:  []Segment{plain("jos"), text("é")},
		},
		{
			name:  "multiline",
			input: "line one @a\n@[B C](2) end",
			want: []Segment{
				text("line one "),
				plain("a"),
				text("\n"),
				rich("B C", "2"),
				text(" end"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if diff := cmp.Diff(tt.want, got, ignoreRaw); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			assert.Equal(t, tt.input, joinRaw(got), "segments must reproduce the input")
		})
	}
}

func TestParse_UnicodePolicy(t *testing.T) {
	s := NewScanner(WordUnicode)

	got := s.Parse("ciao @josé e @Ünal!")
	want := []Segment{
		text("ciao "),
		plain("josé"),
		text(" e "),
		plain("Ünal"),
		text("!"),
	}
	if diff := cmp.Diff(want, got, ignoreRaw); diff != "" {
		t.Errorf("unicode parse mismatch (-want +got):\n%s", diff)
	}

	assert.Same(t, DefaultScanner(), NewScanner(WordASCII))
}

func TestVisible_PreservesMentionSemantics(t *testing.T) {
	input := "hi @[Jane Doe](42) and @bob!"
	segs := Parse(input)

	assert.Equal(t, "hi @Jane Doe and @bob!", Visible(segs))

	var ids []string
	for _, seg := range segs {
		if seg.IsMention() {
			ids = append(ids, seg.Identifier)
		}
	}
	assert.Equal(t, []string{"42", "bob"}, ids)
	assert.Equal(t, ids, DefaultScanner().Identifiers(input))
}

func TestIdentifiers_Distinct(t *testing.T) {
	ids := DefaultScanner().Identifiers("@bob @[Bob](9) @bob @alice")
	assert.Equal(t, []string{"bob", "9", "alice"}, ids)
	assert.Empty(t, DefaultScanner().Identifiers("no mentions"))
}

func TestTokens_ParseBack(t *testing.T) {
	segs := Parse(PlainToken("alice") + " " + RichToken("Malik Ali", "17"))
	want := []Segment{plain("alice"), text(" "), rich("Malik Ali", "17")}
	if diff := cmp.Diff(want, segs, ignoreRaw); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestActivate(t *testing.T) {
	var got []string
	handler := func(id string) { got = append(got, id) }

	segs := Parse("hi @[Jane Doe](42) and @bob")

	assert.False(t, Activate(segs[0], handler), "text segments are not consumed")
	assert.True(t, Activate(segs[1], handler))
	assert.True(t, Activate(segs[3], handler))
	assert.True(t, Activate(segs[3], nil), "mentions consume activation even without a handler")

	assert.Equal(t, []string{"42", "bob"}, got)
}

func TestSegment_JSON(t *testing.T) {
	data, err := json.Marshal(Parse("hi @[Jane](3)"))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"kind":"text","value":"hi "},
		{"kind":"mention","display_text":"Jane","identifier":"3","form":"rich"}
	]`, string(data))
}
