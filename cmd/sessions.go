package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// sessionsCmd groups the session store commands
var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"session"},
	Short:   "Manage transcript sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Args:  cobra.NoArgs,
	RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
		store := app.workspace.Store()
		currentID := ""
		if current := store.Current(); current != nil {
			currentID = current.ID
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\tID\tTITLE\tUPDATED\tWORDS")
		for _, s := range store.Sessions() {
			marker := ""
			if s.ID == currentID {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", marker, s.ID, s.Title, s.UpdatedAt.Local().Format("2006-01-02 15:04"), wordCount(s.Transcript))
		}
		return w.Flush()
	}),
}

var sessionsCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a session and make it current",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
		title := ""
		if len(args) == 1 {
			title = args[0]
		}
		session, err := app.workspace.CreateSession(commandContext(cmd), title)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", session.ID, session.Title)
		return nil
	}),
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
		session, err := app.workspace.Store().Session(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n\n", session.Title, session.ID)
		fmt.Fprintln(out, session.Transcript)
		return nil
	}),
}

var sessionsSelectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Make a session current",
	Args:  cobra.ExactArgs(1),
	RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
		session, err := app.workspace.SelectSession(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Current session: %s\n", session.Title)
		return nil
	}),
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
		session, err := app.workspace.Store().RenameSession(commandContext(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", session.ID, session.Title)
		return nil
	}),
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
		return app.workspace.DeleteSession(commandContext(cmd), args[0])
	}),
}

var sessionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every session",
	Args:  cobra.NoArgs,
	RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete every session without --yes")
		}
		return app.workspace.ResetSessions(commandContext(cmd))
	}),
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsCreateCmd, sessionsShowCmd,
		sessionsSelectCmd, sessionsRenameCmd, sessionsDeleteCmd, sessionsResetCmd)

	sessionsResetCmd.Flags().Bool("yes", false, "confirm deleting every session")
}

// withApplication loads config and wires the pipeline around a session command
func withApplication(run func(cmd *cobra.Command, app *application, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := newApplication(commandContext(cmd), cfg, appOptions{})
		if err != nil {
			return err
		}
		defer app.close(context.Background())
		return run(cmd, app, args)
	}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
