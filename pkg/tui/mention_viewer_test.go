package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pods-community/pods-cli/pkg/mention"
)

func TestMentionViewer_CyclesAndActivates(t *testing.T) {
	var activated []string
	v := NewMentionViewer(nil, 80)
	v.OnActivate = func(id string) { activated = append(activated, id) }
	v.SetContent("hi @[Jane Doe](42) and @bob!")

	// unfocused viewers ignore keys
	handled, _ := v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, handled)

	v.Focus()
	seg, ok := v.FocusedMention()
	require.True(t, ok)
	assert.Equal(t, "42", seg.Identifier)

	handled, cmd := v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, handled, "activating a mention stops propagation")
	require.NotNil(t, cmd)
	assert.Equal(t, MentionActivatedMsg{Identifier: "42", Display: "Jane Doe"}, cmd())

	v.HandleInput(tea.KeyMsg{Type: tea.KeyRight})
	seg, _ = v.FocusedMention()
	assert.Equal(t, "bob", seg.Identifier)
	v.HandleInput(tea.KeyMsg{Type: tea.KeyRight})
	seg, _ = v.FocusedMention()
	assert.Equal(t, "42", seg.Identifier, "navigation wraps")
	v.HandleInput(tea.KeyMsg{Type: tea.KeyLeft})
	seg, _ = v.FocusedMention()
	assert.Equal(t, "bob", seg.Identifier)

	v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"42", "bob"}, activated)
}

func TestMentionViewer_TextSegmentsNotConsumed(t *testing.T) {
	v := NewMentionViewer(nil, 80)
	v.SetContent("plain words only")
	v.Focus()

	handled, cmd := v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, handled)
	assert.Nil(t, cmd)

	handled, _ = v.Activate(v.Segments()[0])
	assert.False(t, handled)
}

func TestMentionViewer_ViewShowsVisibleText(t *testing.T) {
	v := NewMentionViewer(nil, 0)
	v.SetContent("hi @[Jane Doe](42) and @bob!")
	assert.Equal(t, "hi @Jane Doe and @bob!", stripANSI(v.View()))

	v.SetContent("")
	assert.Empty(t, v.Segments())
	assert.Empty(t, v.View())
	_, ok := v.FocusedMention()
	assert.False(t, ok)
}

func TestMentionViewer_Wraps(t *testing.T) {
	v := NewMentionViewer(nil, 10)
	v.SetContent("hello there @alice how are you")
	for _, line := range splitLines(stripANSI(v.View())) {
		assert.LessOrEqual(t, len([]rune(line)), 10)
	}
}

func TestRenderMentions(t *testing.T) {
	out := RenderMentions(mention.NewScanner(mention.WordUnicode), "ciao @josé", 0)
	assert.Equal(t, "ciao @josé", stripANSI(out))
}
