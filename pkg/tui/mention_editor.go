package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pods-community/pods-cli/pkg/mention"
	"github.com/pods-community/pods-cli/pkg/models"
	"github.com/pods-community/pods-cli/pkg/users"
)

var lastEditorID int64

func nextEditorID() int {
	return int(atomic.AddInt64(&lastEditorID, 1))
}

// debounceElapsedMsg fires once the debounce delay for a query has passed.
// Superseded ticks are ignored by generation rather than cancelled.
type debounceElapsedMsg struct {
	id  int
	req mention.FetchRequest
}

// suggestionsMsg carries a finished lookup back to the UI loop
type suggestionsMsg struct {
	id    int
	req   mention.FetchRequest
	users []models.CandidateUser
	err   error
}

// MentionAcceptedMsg is emitted when the user commits a suggestion
type MentionAcceptedMsg struct {
	User models.CandidateUser
}

// TextChangedMsg is emitted with the full text after every edit
type TextChangedMsg struct {
	Text string
}

type editorKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Accept     key.Binding
	Dismiss    key.Binding
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	DeleteWord key.Binding
	Newline    key.Binding
}

func defaultEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mention")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Left:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:      key.NewBinding(key.WithKeys("right", "ctrl+f")),
		Home:       key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:        key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:     key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
		Newline:    key.NewBinding(key.WithKeys("enter")),
	}
}

// MentionEditorConfig configures a MentionEditor
type MentionEditorConfig struct {
	Editor   models.EditorSettings
	Mentions models.MentionSettings
	Lookup   mention.Lookup
	Logger   *zap.Logger
	Disabled bool
}

// MentionEditor is a multi-line text input that offers @mention suggestions
// while typing. It drives a mention.Editor and owns the debounce and lookup
// commands around it.
type MentionEditor struct {
	id       int
	buffer   *TextBuffer
	core     *mention.Editor
	lookup   mention.Lookup
	renderer *InputRenderer
	spinner  spinner.Model
	keys     editorKeyMap
	logger   *zap.Logger

	Placeholder      string
	Disabled         bool
	debounce         time.Duration
	lineHeight       int
	suggestionOffset int

	// originY is the screen row of the editor's top border, for mouse hits
	originY int

	accepted []models.CandidateUser
	pending  []tea.Cmd
}

// NewMentionEditor creates an editor. A nil lookup disables suggestions
// fetching but keeps detection running.
func NewMentionEditor(cfg MentionEditorConfig) *MentionEditor {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lookup := cfg.Lookup
	if lookup != nil {
		lookup = users.WithTimeout(lookup, cfg.Mentions.LookupTimeout())
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	lineHeight := cfg.Editor.LineHeight
	if lineHeight < 1 {
		lineHeight = 1
	}

	m := &MentionEditor{
		id:               nextEditorID(),
		buffer:           NewTextBuffer(cfg.Editor.MaxLength),
		lookup:           lookup,
		renderer:         NewInputRenderer(cfg.Editor.Width, cfg.Editor.Rows),
		spinner:          s,
		keys:             defaultEditorKeyMap(),
		logger:           logger,
		Placeholder:      cfg.Editor.Placeholder,
		Disabled:         cfg.Disabled,
		debounce:         cfg.Mentions.Debounce(),
		lineHeight:       lineHeight,
		suggestionOffset: cfg.Editor.SuggestionOffset,
	}

	m.core = mention.NewEditor(m.buffer, mention.EditorConfig{
		OnChange: func(text string) {
			m.buffer.SetText(text)
			m.emit(TextChangedMsg{Text: text})
		},
		OnMention: func(user models.CandidateUser) {
			m.accepted = append(m.accepted, user)
			m.emit(MentionAcceptedMsg{User: user})
		},
		Logger: logger.Named("mention"),
	})

	return m
}

func (m *MentionEditor) emit(msg tea.Msg) {
	m.pending = append(m.pending, func() tea.Msg { return msg })
}

// flush returns queued notifications in the order they were raised
func (m *MentionEditor) flush(extra ...tea.Cmd) tea.Cmd {
	var cmds []tea.Cmd
	for _, c := range append(m.pending, extra...) {
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	m.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// Value returns the current text
func (m *MentionEditor) Value() string {
	return m.buffer.Value()
}

// SetValue replaces the text as the owner, without emitting a change. The
// returned command schedules a lookup when the text ends in a mention query.
func (m *MentionEditor) SetValue(text string) tea.Cmd {
	m.buffer.SetText(text)
	m.buffer.SetCaretOffset(m.buffer.Len())
	m.core.Reset()
	req := m.core.HandleChange(text)
	m.pending = nil
	return m.schedule(req)
}

// Clear empties the editor and forgets accepted mentions
func (m *MentionEditor) Clear() {
	m.buffer.SetText("")
	m.core.Reset()
	m.accepted = nil
	m.pending = nil
}

// Accepted returns the users mentioned through the picker, in order
func (m *MentionEditor) Accepted() []models.CandidateUser {
	return append([]models.CandidateUser(nil), m.accepted...)
}

// State exposes the mention engine state for rendering and tests
func (m *MentionEditor) State() mention.State {
	return m.core.State()
}

// Caret returns the caret offset in runes
func (m *MentionEditor) Caret() int {
	return m.buffer.CaretOffset()
}

// Focus gives the editor keyboard focus
func (m *MentionEditor) Focus() {
	m.buffer.Focus()
}

// Blur removes focus and leaves suggestion mode
func (m *MentionEditor) Blur() {
	m.buffer.Blur()
	m.core.Blur()
}

// Focused reports whether the editor has focus
func (m *MentionEditor) Focused() bool {
	return m.buffer.Focused()
}

// SetWidth resizes the input box
func (m *MentionEditor) SetWidth(width int) {
	m.renderer.Width = width
}

// SetOrigin records the screen row of the editor's top edge
func (m *MentionEditor) SetOrigin(y int) {
	m.originY = y
}

// Init satisfies the bubbletea component shape
func (m *MentionEditor) Init() tea.Cmd {
	return nil
}

// HandleInput processes a key press. handled is false for keys the host
// should act on (save, quit, focus changes).
func (m *MentionEditor) HandleInput(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	if m.Disabled || !m.buffer.Focused() {
		return false, nil
	}

	if m.core.SuggestionsVisible() {
		if m.core.HandleKey(m.mentionKey(msg)) {
			return true, m.flush()
		}
	}

	// a query still waiting on its debounce ends here too, so the tick goes inert
	if key.Matches(msg, m.keys.Dismiss) && m.core.State().Suggesting {
		m.core.Cancel()
		return true, m.flush()
	}

	edited, moved := false, false
	switch {
	case (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt:
		runes := msg.Runes
		if msg.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		if msg.Paste {
			runes = []rune(preprocessContent(string(runes)))
		}
		edited = m.buffer.Insert(runes)
	case key.Matches(msg, m.keys.Newline):
		if m.renderer.Rows < 2 {
			return false, nil
		}
		edited = m.buffer.Insert([]rune{'\n'})
	case key.Matches(msg, m.keys.Backspace):
		edited = m.buffer.Backspace()
	case key.Matches(msg, m.keys.Delete):
		edited = m.buffer.Delete()
	case key.Matches(msg, m.keys.DeleteWord):
		edited = m.buffer.DeleteWordBackward()
	case key.Matches(msg, m.keys.Left):
		moved = m.buffer.Left()
	case key.Matches(msg, m.keys.Right):
		moved = m.buffer.Right()
	case key.Matches(msg, m.keys.Home):
		moved = m.buffer.Home()
	case key.Matches(msg, m.keys.End):
		moved = m.buffer.End()
	case key.Matches(msg, m.keys.Up):
		moved = m.buffer.Up()
	case key.Matches(msg, m.keys.Down):
		moved = m.buffer.Down()
	default:
		return false, nil
	}

	var req *mention.FetchRequest
	switch {
	case edited:
		req = m.core.HandleChange(m.buffer.Value())
	case moved:
		req = m.core.Refresh()
	}

	return true, m.flush(m.schedule(req))
}

func (m *MentionEditor) mentionKey(msg tea.KeyMsg) mention.Key {
	switch {
	case key.Matches(msg, m.keys.Up):
		return mention.KeyUp
	case key.Matches(msg, m.keys.Down):
		return mention.KeyDown
	case key.Matches(msg, m.keys.Accept):
		return mention.KeyEnter
	case key.Matches(msg, m.keys.Dismiss):
		return mention.KeyEscape
	}
	return mention.KeyOther
}

// schedule starts the debounce timer for req
func (m *MentionEditor) schedule(req *mention.FetchRequest) tea.Cmd {
	if req == nil || m.lookup == nil {
		return nil
	}
	id, r := m.id, *req
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceElapsedMsg{id: id, req: r}
	})
}

func (m *MentionEditor) fetch(req mention.FetchRequest) tea.Cmd {
	id, lookup := m.id, m.lookup
	return func() tea.Msg {
		found, err := mention.Fetch(context.Background(), lookup, req)
		return suggestionsMsg{id: id, req: req, users: found, err: err}
	}
}

// Update handles timer, lookup, spinner and mouse messages as well as keys.
// handled is false when the message was not meant for this editor.
func (m *MentionEditor) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.HandleInput(msg)

	case debounceElapsedMsg:
		if msg.id != m.id {
			return false, nil
		}
		if !m.core.BeginFetch(msg.req) {
			m.logger.Debug("Debounce superseded",
				zap.String("query", msg.req.Query),
				zap.Uint64("generation", msg.req.Generation),
				zap.Uint64("current", m.core.Generation()))
			return true, nil
		}
		return true, tea.Batch(m.spinner.Tick, m.fetch(msg.req))

	case suggestionsMsg:
		if msg.id != m.id {
			return false, nil
		}
		m.core.ApplyResults(msg.req, msg.users, msg.err)
		return true, nil

	case spinner.TickMsg:
		if !m.core.State().Loading {
			return false, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return true, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return false, nil
}

func (m *MentionEditor) handleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	if m.Disabled || !m.core.SuggestionsVisible() {
		return false, nil
	}

	// first suggestion row sits below the box's top border
	row := msg.Y - m.originY - m.suggestionTop() - 1
	if row < 0 || row >= len(m.core.State().Suggestions) {
		return false, nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.core.Hover(row)
		return true, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.core.Hover(row)
		m.core.Commit(row)
		return true, m.flush()
	}

	return false, nil
}

// suggestionTop returns the row, relative to the editor's top edge, at which
// the suggestion box is drawn
func (m *MentionEditor) suggestionTop() int {
	caretLine, _ := m.buffer.CaretPosition()
	first := m.renderer.FirstVisibleLine(caretLine)
	return m.core.SuggestionOffset(m.lineHeight, m.suggestionOffset) - first*m.lineHeight
}
