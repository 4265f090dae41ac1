package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pods-community/pods-cli/internal/cli"
	"github.com/pods-community/pods-cli/pkg/files"
	"github.com/pods-community/pods-cli/pkg/tui"
)

var (
	composeCopy bool
	composeFile string
	composeText string
)

// Swapped in tests; the real ones need a terminal
var (
	runProgram = func(model tea.Model) (tea.Model, error) {
		return tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	}
	copyToClipboard = clipboard.WriteAll
	now             = time.Now
)

// NewComposeCommand creates the compose command
func NewComposeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose [text]",
		Short: "Write a post with @mention autocomplete",
		Long: `Open the post composer. Type @ followed by part of a name to get
suggestions from the user directory; pick one with the arrow keys and
enter, or with the mouse. Ctrl+S posts, Esc quits.

Posted text is printed to stdout. Quitting without posting keeps the
text as a draft in .pods/drafts.

Examples:
  # Start an empty post
  pods compose

  # Start from some text and copy the result
  pods compose --copy "Shipping today, thanks"

  # Append the post to a file
  pods compose --file posts.txt`,
		PreRunE: requireProject,
		RunE:    RunCompose,
	}

	cmd.Flags().AddFlagSet(ComposeFlags())

	return cmd
}

// ComposeFlags returns the compose flags. Each call binds a fresh set to the
// same variables and resets them to their defaults.
func ComposeFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("compose", pflag.ContinueOnError)
	fs.BoolVarP(&composeCopy, "copy", "c", false, "Copy the post to the clipboard")
	fs.StringVarP(&composeFile, "file", "f", "", "Append the post to this file")
	fs.StringVarP(&composeText, "text", "t", "", "Initial post text")
	return fs
}

// RunCompose runs the composer and handles the finished post
func RunCompose(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx := cli.NewCommandContext()
	if err := ctx.ValidateProject(); err != nil {
		return err
	}
	defer ctx.Sync()

	settings := ctx.LoadSettingsWithDefault()
	logger := ctx.Logger()

	lookup, err := ctx.Lookup()
	if err != nil {
		return err
	}

	initial := composeText
	if len(args) > 0 {
		initial = strings.Join(args, " ")
	}

	app := tui.NewComposeApp(settings, lookup, logger, initial)
	final, err := runProgram(app)
	if err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}

	composed, ok := final.(*tui.ComposeApp)
	if !ok {
		return fmt.Errorf("unexpected model %T", final)
	}

	return finishCompose(cmd, format, composed.Result(), logger)
}

func finishCompose(cmd *cobra.Command, format string, result tui.ComposeResult, logger *zap.Logger) error {
	if !result.Submitted {
		if strings.TrimSpace(result.Text) == "" {
			return nil
		}
		path, err := files.SaveDraft(result.Text, now())
		if err != nil {
			return err
		}
		logger.Info("Draft saved", zap.String("path", path))
		cli.PrintInfo("Post not sent. Draft saved to %s", path)
		return nil
	}

	logger.Info("Post composed",
		zap.Int("length", len([]rune(result.Text))),
		zap.Int("mentions", len(result.Mentions)))

	if composeFile != "" {
		if err := files.AppendPost(composeFile, result.Text); err != nil {
			return err
		}
		cli.PrintSuccess("Post appended to %s", composeFile)
	}

	if composeCopy {
		if err := copyToClipboard(result.Text); err != nil {
			logger.Warn("Clipboard copy failed", zap.Error(err))
			cli.PrintWarning("could not copy to clipboard: %v", err)
		} else {
			cli.PrintSuccess("Post copied to clipboard")
		}
	}

	if cli.IsStructured(format) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return nil
}
