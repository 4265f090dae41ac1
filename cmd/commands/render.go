package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pods-community/pods-cli/internal/cli"
	"github.com/pods-community/pods-cli/pkg/mention"
	"github.com/pods-community/pods-cli/pkg/tui"
)

var (
	renderWidth int
)

// RenderOutput is the structured form of a rendered post
type RenderOutput struct {
	Text     string            `json:"text" yaml:"text"`
	Mentions int               `json:"mentions" yaml:"mentions"`
	Segments []mention.Segment `json:"segments" yaml:"segments"`
}

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render a post with its mentions highlighted",
		Long: `Render finished post text the way readers see it.

Both mention forms are recognized: the plain @username form and the
rich @[Display Name](id) form. Text is read from stdin when no
argument is given or the argument is "-".

Examples:
  # Render a post
  pods render "thanks @[Ann Lee](42) and @bob"

  # Render from a file, wrapped to 60 columns
  pods render --width 60 < post.txt

  # Show the parsed segments
  pods render -o json "hi @alice"`,
		RunE: runRender,
	}

	cmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "Wrap width (0 disables wrapping; defaults to ui.wrap_width)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	width := renderWidth
	settings := cli.NewCommandContext().LoadSettingsWithDefault()
	if !cmd.Flags().Changed("width") {
		width = settings.UI.WrapWidth
	}
	if err := cli.ValidateWidth(width); err != nil {
		return err
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	scanner := scannerFor(settings)

	if cli.IsStructured(format) {
		segments := scanner.Parse(text)
		result := RenderOutput{
			Text:     mention.Visible(segments),
			Segments: segments,
		}
		for _, seg := range segments {
			if seg.IsMention() {
				result.Mentions++
			}
		}
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMentions(scanner, text, width))
	return nil
}
