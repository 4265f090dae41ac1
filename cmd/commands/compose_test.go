package commands

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pods-community/pods-cli/pkg/files"
	"github.com/pods-community/pods-cli/pkg/tui"
)

// fakeProgram replaces the terminal program with a scripted key sequence
func fakeProgram(t *testing.T, keys ...tea.KeyMsg) {
	t.Helper()
	old := runProgram
	t.Cleanup(func() { runProgram = old })

	runProgram = func(model tea.Model) (tea.Model, error) {
		model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
		for _, k := range keys {
			model, _ = model.Update(k)
		}
		return model, nil
	}
}

func fakeClipboard(t *testing.T, err error) *string {
	t.Helper()
	old := copyToClipboard
	t.Cleanup(func() { copyToClipboard = old })

	copied := new(string)
	copyToClipboard = func(text string) error {
		if err != nil {
			return err
		}
		*copied = text
		return nil
	}
	return copied
}

var ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}

func TestComposeCommand_Submit(t *testing.T) {
	setupProject(t)
	fakeProgram(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")}, ctrlS)
	copied := fakeClipboard(t, nil)

	out, err := execute(t, NewComposeCommand(), "", "--copy", "--file", "posts.txt", "--text", "ship it")
	require.NoError(t, err)

	assert.Equal(t, "ship it!\n", out)
	assert.Equal(t, "ship it!", *copied)

	content, err := os.ReadFile("posts.txt")
	require.NoError(t, err)
	assert.Equal(t, "ship it!\n", string(content))
}

func TestComposeCommand_ArgsBecomeInitialText(t *testing.T) {
	setupProject(t)
	fakeProgram(t, ctrlS)

	out, err := execute(t, NewComposeCommand(), "", "-o", "json", "hello", "@bob")
	require.NoError(t, err)

	var result tui.ComposeResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "hello @bob", result.Text)
	assert.True(t, result.Submitted)
	assert.Empty(t, result.Mentions, "typed mentions were not picked from suggestions")
}

func TestComposeCommand_DiscardSavesDraft(t *testing.T) {
	setupProject(t)
	fakeProgram(t, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	oldNow := now
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { now = oldNow })

	out, err := execute(t, NewComposeCommand(), "", "--text", "half a thought")
	require.NoError(t, err)
	assert.Empty(t, out, "nothing is printed for an unsent post")

	content, err := os.ReadFile(filepath.Join(files.PodsDir, files.DraftsDir, "draft-20260102-030405.md"))
	require.NoError(t, err)
	assert.Equal(t, "half a thought", string(content))
}

func TestComposeCommand_DiscardEmpty(t *testing.T) {
	setupProject(t)
	fakeProgram(t, tea.KeyMsg{Type: tea.KeyEsc})

	_, err := execute(t, NewComposeCommand(), "")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(files.PodsDir, files.DraftsDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestComposeCommand_ClipboardFailureIsNotFatal(t *testing.T) {
	setupProject(t)
	fakeProgram(t, ctrlS)
	fakeClipboard(t, errors.New("no clipboard utility"))

	out, err := execute(t, NewComposeCommand(), "", "--copy", "--text", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestComposeCommand_ProgramError(t *testing.T) {
	setupProject(t)
	old := runProgram
	t.Cleanup(func() { runProgram = old })
	runProgram = func(tea.Model) (tea.Model, error) {
		return nil, errors.New("no tty")
	}

	_, err := execute(t, NewComposeCommand(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tty")
}
