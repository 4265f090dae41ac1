package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pods-community/pods-cli/pkg/mention"
	"github.com/pods-community/pods-cli/pkg/models"
)

type composeFocus int

const (
	focusEditor composeFocus = iota
	focusPreview
)

// ComposeResult is what the compose screen hands back when it exits
type ComposeResult struct {
	Text      string                 `json:"text" yaml:"text"`
	Mentions  []models.CandidateUser `json:"mentions" yaml:"mentions"`
	Submitted bool                   `json:"submitted" yaml:"submitted"`
}

type composeKeyMap struct {
	Post       key.Binding
	SwitchPane key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func newComposeKeyMap() composeKeyMap {
	binding := func(s ShortcutKey, help string) key.Binding {
		return key.NewBinding(key.WithKeys(s.Keys()...), key.WithHelp(FormatShortcutForHelp(s), help))
	}
	return composeKeyMap{
		Post:       binding(Shortcuts.Post, "post"),
		SwitchPane: binding(Shortcuts.SwitchPane, "preview"),
		Quit:       binding(Shortcuts.Quit, "quit"),
		ForceQuit:  binding(Shortcuts.ForceQuit, "quit"),
	}
}

func helpEntry(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

// ComposeApp is the full-screen post composer: a mention editor above a
// live preview of how the post will render
type ComposeApp struct {
	title    *ViewTitle
	confirm  *ConfirmationModel
	keys     composeKeyMap
	editor   *MentionEditor
	viewer   *MentionViewer
	preview  viewport.Model
	status   *StatusManager
	scanner  *mention.Scanner
	logger   *zap.Logger
	settings *models.Settings

	focus     composeFocus
	initCmd   tea.Cmd
	width     int
	height    int
	submitted bool
}

// NewComposeApp creates the composer. initial pre-fills the editor.
func NewComposeApp(settings *models.Settings, lookup mention.Lookup, logger *zap.Logger, initial string) *ComposeApp {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	policy := mention.WordASCII
	if settings.Mentions.UnicodeUsernames {
		policy = mention.WordUnicode
	}
	scanner := mention.NewScanner(policy)

	editor := NewMentionEditor(MentionEditorConfig{
		Editor:   settings.Editor,
		Mentions: settings.Mentions,
		Lookup:   lookup,
		Logger:   logger,
	})
	editor.SetOrigin(1)
	editor.Focus()

	a := &ComposeApp{
		title:    NewViewTitle("New post"),
		confirm:  NewConfirmation(),
		keys:     newComposeKeyMap(),
		editor:   editor,
		viewer:   NewMentionViewer(scanner, settings.UI.WrapWidth),
		preview:  viewport.New(settings.UI.WrapWidth, 6),
		status:   NewStatusManager(),
		scanner:  scanner,
		logger:   logger,
		settings: settings,
	}

	if tip := TerminalSetupTip(); tip != "" {
		a.status.SetPersistentMessage(tip, StatusTypeInfo)
	}

	if initial != "" {
		a.initCmd = editor.SetValue(initial)
		a.refreshPreview()
	}

	return a
}

func (a *ComposeApp) Init() tea.Cmd {
	return tea.Batch(a.editor.Init(), a.initCmd)
}

// Result returns the text and the picked users still mentioned in it
func (a *ComposeApp) Result() ComposeResult {
	text := a.editor.Value()
	return ComposeResult{
		Text:      text,
		Mentions:  mentionedUsers(a.scanner, text, a.editor.Accepted()),
		Submitted: a.submitted,
	}
}

// mentionedUsers keeps the accepted users whose mention survived later
// edits, each once
func mentionedUsers(scanner *mention.Scanner, text string, accepted []models.CandidateUser) []models.CandidateUser {
	present := make(map[string]bool)
	for _, id := range scanner.Identifiers(text) {
		present[strings.ToLower(id)] = true
	}

	seen := make(map[string]bool)
	out := []models.CandidateUser{}
	for _, u := range accepted {
		name := strings.ToLower(u.Username)
		if seen[name] || !(present[name] || present[u.ID]) {
			continue
		}
		seen[name] = true
		out = append(out, u)
	}
	return out
}

func (a *ComposeApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case TextChangedMsg:
		// the setup tip stays until the first edit
		a.status.ClearPersistentMessage()
		a.refreshPreview()
		return a, nil

	case MentionAcceptedMsg:
		a.logger.Info("Mention accepted",
			zap.String("username", msg.User.Username),
			zap.String("id", msg.User.ID))
		return a, a.status.ShowSuccess(fmt.Sprintf("Mentioned @%s", msg.User.Username))

	case MentionActivatedMsg:
		return a, a.status.ShowInfo(fmt.Sprintf("@%s → %s", msg.Display, msg.Identifier))

	case ClearStatusMsg:
		return a, nil
	}

	_, cmd := a.editor.Update(msg)
	return a, cmd
}

func (a *ComposeApp) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.confirm.Active() {
		return a, a.confirm.Update(msg)
	}

	if key.Matches(msg, a.keys.Post) {
		if strings.TrimSpace(a.editor.Value()) == "" {
			return a, a.status.ShowWarning("Nothing to post")
		}
		if limit := a.settings.Editor.MaxLength; limit > 0 {
			// committing a mention can push the text past the typing limit
			if over := utf8.RuneCountInString(a.editor.Value()) - limit; over > 0 {
				return a, a.status.ShowError(fmt.Sprintf("Post is %d character%s over the %d limit", over, pluralize(over), limit))
			}
		}
		a.submitted = true
		return a, tea.Quit
	}

	if a.focus == focusPreview {
		if handled, cmd := a.viewer.HandleInput(msg); handled {
			a.preview.SetContent(a.viewer.View())
			return a, cmd
		}
		if key.Matches(msg, a.keys.SwitchPane, a.keys.Quit) {
			a.setFocus(focusEditor)
			return a, nil
		}
		var cmd tea.Cmd
		a.preview, cmd = a.preview.Update(msg)
		return a, cmd
	}

	if handled, cmd := a.editor.HandleInput(msg); handled {
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.SwitchPane):
		if a.settings.UI.ShowPreview {
			a.setFocus(focusPreview)
		}
		return a, nil
	case key.Matches(msg, a.keys.Quit):
		return a, a.requestQuit()
	}

	return a, nil
}

// requestQuit quits at once when there is nothing to lose, otherwise asks first
func (a *ComposeApp) requestQuit() tea.Cmd {
	if strings.TrimSpace(a.editor.Value()) == "" {
		return tea.Quit
	}
	a.confirm.Show("Leave without posting?", true, func() tea.Cmd { return tea.Quit }, nil)
	return nil
}

func (a *ComposeApp) setFocus(f composeFocus) {
	a.focus = f
	if f == focusPreview {
		a.editor.Blur()
		a.viewer.Focus()
	} else {
		a.viewer.Blur()
		a.editor.Focus()
	}
	a.preview.SetContent(a.viewer.View())
}

func (a *ComposeApp) refreshPreview() {
	a.viewer.SetContent(a.editor.Value())
	a.preview.SetContent(a.viewer.View())
}

func (a *ComposeApp) layout() {
	width := a.width - 4
	if width < 20 {
		width = 20
	}
	editorWidth := width
	if a.settings.Editor.Width > 0 && a.settings.Editor.Width < editorWidth {
		editorWidth = a.settings.Editor.Width
	}
	a.editor.SetWidth(editorWidth)

	wrap := width - 2
	if a.settings.UI.WrapWidth > 0 && a.settings.UI.WrapWidth < wrap {
		wrap = a.settings.UI.WrapWidth
	}
	a.viewer.SetWidth(wrap)
	a.preview.Width = wrap

	// header, editor box, preview label and borders, status, help box
	used := 1 + a.settings.Editor.Rows + 2 + 1 + 2 + 1 + 3
	height := a.height - used
	if height < 3 {
		height = 3
	}
	a.preview.Height = height
	a.preview.SetContent(a.viewer.View())
}

func (a *ComposeApp) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	a.title.SetDetail("")
	if n := len(a.editor.Accepted()); n > 0 {
		a.title.SetDetail(fmt.Sprintf("%d mention%s", n, pluralize(n)))
	}

	help := []string{helpEntry(a.keys.Post), helpEntry(a.keys.Quit)}
	if a.settings.UI.ShowPreview {
		help = []string{helpEntry(a.keys.Post), helpEntry(a.keys.SwitchPane), helpEntry(a.keys.Quit)}
	}
	if a.focus == focusPreview {
		help = []string{
			FormatShortcutForHelp(Shortcuts.PrevMention) + FormatShortcutForHelp(Shortcuts.NextMention) + " mentions",
			FormatShortcutForHelp(Shortcuts.Open) + " open",
			FormatShortcutForHelp(Shortcuts.SwitchPane) + " editor",
		}
	} else {
		help = append(a.editor.HelpEntries(), help...)
	}

	status := a.status.Render()
	if a.confirm.Active() {
		status = a.confirm.ViewWithWidth(a.width)
	}

	sections := []string{a.title.View(), a.editor.View()}
	if a.settings.UI.ShowPreview {
		previewBorder := InactiveBorderStyle
		if a.focus == focusPreview {
			previewBorder = ActiveBorderStyle
		}
		sections = append(sections,
			HeaderStyle.Render("Preview"),
			previewBorder.Width(a.preview.Width+2).Render(a.preview.View()),
		)
	}

	sections = append(sections, status, renderHelpBox(help, a.width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
