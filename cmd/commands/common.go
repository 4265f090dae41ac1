package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pods-community/pods-cli/internal/cli"
	"github.com/pods-community/pods-cli/pkg/mention"
	"github.com/pods-community/pods-cli/pkg/models"
)

// outputFormat reads the -o flag, which lives on the root command. Commands
// run on their own (as in tests) fall back to text.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil || format == "" {
		return string(cli.FormatText), nil
	}
	if err := cli.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// readInput joins args into one text, or reads stdin when there are none or
// the only arg is "-"
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// scannerFor returns the mention scanner matching the username policy in settings
func scannerFor(settings *models.Settings) *mention.Scanner {
	if settings.Mentions.UnicodeUsernames {
		return mention.NewScanner(mention.WordUnicode)
	}
	return mention.DefaultScanner()
}

func requireProject(cmd *cobra.Command, args []string) error {
	return cli.NewCommandContext().ValidateProject()
}
