package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pods-community/pods-cli/internal/cli"
	"github.com/pods-community/pods-cli/pkg/mention"
	"github.com/pods-community/pods-cli/pkg/models"
)

var (
	usersSearchLimit int
	usersAddName     string
	usersAddID       string
	usersAddAvatar   string
	usersRemoveForce bool
)

// UsersResult is the structured output of users list and users search
type UsersResult struct {
	Query string                 `json:"query,omitempty" yaml:"query,omitempty"`
	Count int                    `json:"count" yaml:"count"`
	Users []models.CandidateUser `json:"users" yaml:"users"`
}

// NewUsersCommand creates the users command and its subcommands
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the local user directory",
		Long: `Manage the people that mention autocomplete suggests.

The directory lives in .pods/users.yaml.

Examples:
  pods users list
  pods users search ali
  pods users add alice --name "Alice Liddell" --id 42
  pods users remove alice`,
		Aliases: []string{"user"},
	}

	cmd.AddCommand(newUsersSearchCommand())
	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersAddCommand())
	cmd.AddCommand(newUsersRemoveCommand())

	return cmd
}

func newUsersSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Search users the way mention autocomplete does",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runUsersSearch,
	}

	cmd.Flags().IntVarP(&usersSearchLimit, "limit", "n", mention.MaxSuggestions, "Maximum number of results")

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List every user in the directory",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runUsersList,
	}
}

func newUsersAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Add or update a user",
		Long: `Add a user to the directory, or update the user with the same
username. The id is required because rich mentions carry it.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runUsersAdd,
	}

	cmd.Flags().StringVar(&usersAddName, "name", "", "Display name (defaults to the username)")
	cmd.Flags().StringVar(&usersAddID, "id", "", "Numeric user id")
	cmd.Flags().StringVar(&usersAddAvatar, "avatar", "", "Avatar URL")
	cmd.MarkFlagRequired("id")

	return cmd
}

func newUsersRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <username>",
		Short:   "Remove a user",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runUsersRemove,
	}

	cmd.Flags().BoolVarP(&usersRemoveForce, "force", "f", false, "Remove without confirmation")

	return cmd
}

func runUsersSearch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if err := cli.ValidateLimit(usersSearchLimit); err != nil {
		return err
	}

	ctx := cli.NewCommandContext()
	defer ctx.Sync()

	lookup, err := ctx.Lookup()
	if err != nil {
		return err
	}

	query := args[0]
	found, err := lookup.SearchUsers(context.Background(), models.NormalizeUsername(query))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(found) > usersSearchLimit {
		found = found[:usersSearchLimit]
	}
	ctx.Logger().Debug("User search",
		zap.String("query", query),
		zap.Int("results", len(found)))

	result := UsersResult{Query: query, Count: len(found), Users: found}
	if result.Users == nil {
		result.Users = []models.CandidateUser{}
	}

	if cli.IsStructured(format) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	if result.Count == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No users match %q\n", query)
		return nil
	}
	printUsers(cmd, result.Users)
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	registry, err := cli.NewCommandContext().Registry()
	if err != nil {
		return err
	}

	all := registry.ListUsers()
	result := UsersResult{Count: len(all), Users: all}

	if cli.IsStructured(format) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	if result.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No users yet. Add one with 'pods users add'")
		return nil
	}
	printUsers(cmd, all)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d user%s\n", result.Count, plural(result.Count))
	return nil
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	username, err := cli.ValidateUsernameArg(args[0])
	if err != nil {
		return err
	}

	ctx := cli.NewCommandContext()
	defer ctx.Sync()

	registry, err := ctx.Registry()
	if err != nil {
		return err
	}

	_, existed := registry.GetUser(username)
	user := models.CandidateUser{
		ID:          usersAddID,
		Username:    username,
		DisplayName: usersAddName,
		AvatarURL:   usersAddAvatar,
	}
	if err := registry.AddUser(user); err != nil {
		return err
	}
	if err := registry.Save(); err != nil {
		return err
	}

	ctx.Logger().Info("User saved",
		zap.String("username", username),
		zap.String("id", usersAddID),
		zap.Bool("updated", existed))

	if existed {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated @%s\n", username)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Added @%s\n", username)
	}
	return nil
}

func runUsersRemove(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	defer ctx.Sync()

	registry, err := ctx.Registry()
	if err != nil {
		return err
	}

	user, ok := registry.GetUser(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUserNotFound, args[0])
	}

	if !usersRemoveForce {
		confirmed, err := cli.Confirm(fmt.Sprintf("Remove @%s (%s)?", user.Username, user.DisplayName), false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := registry.RemoveUser(user.Username); err != nil {
		return err
	}
	if err := registry.Save(); err != nil {
		return err
	}

	ctx.Logger().Info("User removed", zap.String("username", user.Username))
	fmt.Fprintf(cmd.OutOrStdout(), "Removed @%s\n", user.Username)
	return nil
}

func printUsers(cmd *cobra.Command, list []models.CandidateUser) {
	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("Username", "Name", "ID")
	for _, u := range list {
		table.Row("@"+u.Username, cli.TruncateString(cli.OrDash(u.DisplayName), 32), u.ID)
	}
	table.Flush()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
