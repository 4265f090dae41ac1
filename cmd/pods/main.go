package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/pods-community/pods-cli/cmd/commands"
	"github.com/pods-community/pods-cli/internal/cli"
	"github.com/pods-community/pods-cli/pkg/files"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	outputFlag  string
	quietFlag   bool
	noColorFlag bool
	verboseFlag bool
	yesFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "pods",
	Short: "Terminal client for writing posts to your pod",
	Long: `pods is a terminal client for writing community posts. Type @ to
mention people from your local user directory and see the post rendered
as readers will see it before you send it.

Run without a command to open the composer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(quietFlag, noColorFlag, yesFlag, verboseFlag)
		if noColorFlag {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		return cli.ValidateOutputFormat(outputFlag)
	},
	RunE: commands.RunCompose,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new pods project",
	Long:  `Creates the .pods folder with default settings and an empty user directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}

		cli.PrintInfo("Initializing pods project in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			return fmt.Errorf("failed to initialize project structure: %w", err)
		}

		cli.PrintSuccess("Created .pods folder structure")
		cli.PrintSuccess("Add people with 'pods users add <username> --id <id>'")
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'pods' to start writing.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pods",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pods version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational messages")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to confirmations")

	// Flags shared with `pods compose` so the bare command accepts them too
	rootCmd.Flags().AddFlagSet(commands.ComposeFlags())

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewComposeCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewMentionsCommand())
	rootCmd.AddCommand(commands.NewUsersCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
