package mention

import (
	"context"

	"go.uber.org/zap"

	"github.com/pods-community/pods-cli/pkg/models"
)

// MaxSuggestions caps the suggestion list regardless of what a lookup returns
const MaxSuggestions = 5

// Lookup searches users by partial text. Ranking is the lookup's job; the
// editor only truncates.
type Lookup interface {
	SearchUsers(ctx context.Context, query string) ([]models.CandidateUser, error)
}

// Key is a key press the editor may intercept
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
)

// FetchRequest asks the host to run a lookup once the debounce delay has
// passed. Generation identifies the query session that issued it.
type FetchRequest struct {
	Generation uint64
	Query      string
}

// State is a snapshot of the editor
type State struct {
	Text        string
	Caret       int
	Suggesting  bool
	Query       string
	QueryStart  int // rune offset of the @, -1 when not suggesting
	Suggestions []models.CandidateUser
	Highlighted int
	Loading     bool
}

// EditorConfig wires an editor to its owner
type EditorConfig struct {
	// OnChange receives the full text after every edit, including commits
	OnChange func(text string)

	// OnMention receives the user whenever a mention is committed
	OnMention func(user models.CandidateUser)

	Logger *zap.Logger
}

// Editor tracks an in-progress @mention under the caret and the suggestion
// list offered for it.
//
// Every change of query bumps a generation counter. Lookups are tagged with
// the generation current when they were requested and their results are
// applied only if that generation is still current, so the most recently
// issued query always wins no matter in which order responses arrive.
type Editor struct {
	caret      Caret
	state      State
	generation uint64
	config     EditorConfig
	logger     *zap.Logger
}

// NewEditor creates an editor bound to caret
func NewEditor(caret Caret, config EditorConfig) *Editor {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		caret:  caret,
		state:  State{QueryStart: -1},
		config: config,
		logger: logger,
	}
}

// State returns a copy of the current state
func (e *Editor) State() State {
	s := e.state
	if s.Suggestions != nil {
		s.Suggestions = append([]models.CandidateUser(nil), s.Suggestions...)
	}
	return s
}

// Generation returns the current query generation
func (e *Editor) Generation() uint64 {
	return e.generation
}

// SuggestionsVisible reports whether the suggestion list is showing
func (e *Editor) SuggestionsVisible() bool {
	return e.state.Suggesting && len(e.state.Suggestions) > 0
}

// HandleChange records new text, notifies the owner and re-runs mention
// detection at the caret. The returned request, if any, should be delivered
// back through IsCurrent/ApplyResults after the debounce delay.
func (e *Editor) HandleChange(text string) *FetchRequest {
	e.state.Text = text
	if e.config.OnChange != nil {
		e.config.OnChange(text)
	}
	return e.Refresh()
}

// Refresh re-runs mention detection without reporting a text change. Hosts
// call it when the caret moves.
func (e *Editor) Refresh() *FetchRequest {
	e.state.Caret = e.caret.CaretOffset()

	query, start, ok := Detect(e.state.Text, e.state.Caret)
	if !ok {
		if e.state.Suggesting {
			e.clearSuggesting()
		}
		return nil
	}

	changed := !e.state.Suggesting || query != e.state.Query || start != e.state.QueryStart
	if !changed {
		return nil
	}

	e.generation++
	e.state.Suggesting = true
	e.state.Query = query
	e.state.QueryStart = start

	if query == "" {
		e.state.Suggestions = nil
		e.state.Highlighted = 0
		e.state.Loading = false
		return nil
	}

	return &FetchRequest{Generation: e.generation, Query: query}
}

// IsCurrent reports whether req still belongs to the live query
func (e *Editor) IsCurrent(req FetchRequest) bool {
	return req.Generation == e.generation &&
		e.state.Suggesting &&
		e.state.Query == req.Query
}

// BeginFetch marks req as in flight. It returns false when req has been
// superseded, in which case the host must not start the lookup.
func (e *Editor) BeginFetch(req FetchRequest) bool {
	if !e.IsCurrent(req) {
		return false
	}
	e.state.Loading = true
	return true
}

// Fetch runs the lookup for req. It touches no editor state and may run off
// the UI loop.
func Fetch(ctx context.Context, lookup Lookup, req FetchRequest) ([]models.CandidateUser, error) {
	return lookup.SearchUsers(ctx, req.Query)
}

// ApplyResults installs the outcome of a lookup. Results for a superseded
// generation are dropped. A failed lookup clears the list; the error is
// logged and never returned.
func (e *Editor) ApplyResults(req FetchRequest, users []models.CandidateUser, err error) bool {
	if !e.IsCurrent(req) {
		e.logger.Debug("Discarding stale mention suggestions",
			zap.String("query", req.Query),
			zap.Uint64("generation", req.Generation),
			zap.Uint64("current", e.generation))
		return false
	}

	e.state.Loading = false

	if err != nil {
		e.logger.Warn("Mention lookup failed",
			zap.String("query", req.Query),
			zap.Error(err))
		e.state.Suggestions = nil
		e.state.Highlighted = 0
		return true
	}

	if len(users) > MaxSuggestions {
		users = users[:MaxSuggestions]
	}
	e.state.Suggestions = append([]models.CandidateUser(nil), users...)
	e.state.Highlighted = 0
	return true
}

// HandleKey applies the suggestion-list keyboard contract. It returns true
// when the key was consumed and its default action must be suppressed.
// Keys are only intercepted while the list is visible.
func (e *Editor) HandleKey(key Key) bool {
	if !e.SuggestionsVisible() {
		return false
	}

	n := len(e.state.Suggestions)
	switch key {
	case KeyDown:
		e.state.Highlighted = (e.state.Highlighted + 1) % n
		return true
	case KeyUp:
		e.state.Highlighted = (e.state.Highlighted - 1 + n) % n
		return true
	case KeyEnter:
		e.Commit(e.state.Highlighted)
		return true
	case KeyEscape:
		e.Cancel()
		return true
	}

	return false
}

// Hover highlights suggestion i so that Enter and click agree
func (e *Editor) Hover(i int) {
	if !e.SuggestionsVisible() || i < 0 || i >= len(e.state.Suggestions) {
		return
	}
	e.state.Highlighted = i
}

// Commit splices suggestion i into the text. It does nothing and returns
// false if i or the recorded splice offset is invalid.
func (e *Editor) Commit(i int) bool {
	if !e.state.Suggesting || i < 0 || i >= len(e.state.Suggestions) {
		return false
	}
	return e.CommitUser(e.state.Suggestions[i])
}

// CommitUser splices user into the text at the recorded splice offset:
// text before the @, then "@username ", then the text from the caret on.
// The caret lands just after the inserted space.
func (e *Editor) CommitUser(user models.CandidateUser) bool {
	if e.state.QueryStart < 0 {
		return false
	}

	text, caret, ok := Splice(e.state.Text, e.state.QueryStart, e.caret.CaretOffset(), user.Username)
	if !ok {
		return false
	}

	e.state.Text = text
	e.state.Caret = caret
	e.clearSuggesting()

	if e.config.OnChange != nil {
		e.config.OnChange(text)
	}
	e.caret.SetCaretOffset(caret)
	e.caret.Focus()

	if e.config.OnMention != nil {
		e.config.OnMention(user)
	}

	e.logger.Debug("Mention committed",
		zap.String("username", user.Username),
		zap.Int("caret", caret))
	return true
}

// Cancel leaves suggestion mode without touching the text
func (e *Editor) Cancel() {
	e.clearSuggesting()
}

// Blur is called when focus leaves the editor
func (e *Editor) Blur() {
	if e.state.Suggesting {
		e.clearSuggesting()
	}
}

// Reset discards all state, as when the owner clears the text
func (e *Editor) Reset() {
	e.generation++
	e.state = State{QueryStart: -1}
}

// SuggestionOffset returns where the suggestion list should start, in rows
// from the top of the input: the lines up to and including the one holding
// the splice point times lineHeight, plus padding for the input's chrome.
func (e *Editor) SuggestionOffset(lineHeight, padding int) int {
	if e.state.QueryStart < 0 {
		return padding
	}
	lines := LineOf(e.state.Text, e.state.QueryStart) + 1
	return lines*lineHeight + padding
}

// clearSuggesting ends the suggestion session. Bumping the generation makes
// any pending debounce or in-flight lookup inert.
func (e *Editor) clearSuggesting() {
	e.generation++
	e.state.Suggesting = false
	e.state.Query = ""
	e.state.QueryStart = -1
	e.state.Suggestions = nil
	e.state.Highlighted = 0
	e.state.Loading = false
}
