package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pods-community/pods-cli/internal/cli"
	"github.com/pods-community/pods-cli/pkg/mention"
)

// MentionOutput describes one mention found in a post
type MentionOutput struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Display    string `json:"display" yaml:"display"`
	Form       string `json:"form" yaml:"form"`
	Count      int    `json:"count" yaml:"count"`
}

// MentionsResult is the output of the mentions command
type MentionsResult struct {
	Count    int             `json:"count" yaml:"count"`
	Mentions []MentionOutput `json:"mentions" yaml:"mentions"`
}

// NewMentionsCommand creates the mentions command
func NewMentionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentions [text]",
		Short: "List the people mentioned in a post",
		Long: `List every distinct mention in post text with the form it was
written in. Rich mentions are identified by user id, plain mentions by
username. Text is read from stdin when no argument is given.

Examples:
  pods mentions "cc @[Ann Lee](42) @bob @bob"
  pods mentions -o yaml < post.txt`,
		RunE: runMentions,
	}

	return cmd
}

func runMentions(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	settings := cli.NewCommandContext().LoadSettingsWithDefault()
	result := collectMentions(scannerFor(settings).Mentions(text))

	if cli.IsStructured(format) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	if result.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No mentions found")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("Identifier", "Display", "Form", "Count")
	for _, m := range result.Mentions {
		table.Row(m.Identifier, "@"+m.Display, m.Form, fmt.Sprint(m.Count))
	}
	table.Flush()

	return nil
}

// collectMentions groups mention segments by identifier in order of first
// appearance
func collectMentions(segments []mention.Segment) MentionsResult {
	result := MentionsResult{Mentions: []MentionOutput{}}
	index := make(map[string]int)

	for _, seg := range segments {
		if i, ok := index[seg.Identifier]; ok {
			result.Mentions[i].Count++
			continue
		}
		index[seg.Identifier] = len(result.Mentions)
		result.Mentions = append(result.Mentions, MentionOutput{
			Identifier: seg.Identifier,
			Display:    seg.DisplayText,
			Form:       seg.Form.String(),
			Count:      1,
		})
	}

	result.Count = len(result.Mentions)
	return result
}
