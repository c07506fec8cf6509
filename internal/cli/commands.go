package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ariel-frischer/taskmanager/internal/commands"
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Manage task manager command templates",
	Long:  `Commands for installing and listing the task manager command templates.`,
}

var commandsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bundled command templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := commands.ListTemplates()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tARGUMENTS\tDESCRIPTION")
		for _, t := range templates {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, t.ArgumentHint, t.Description)
		}
		return tw.Flush()
	},
}

func init() {
	commandsCmd.GroupID = GroupCommands
	commandsCmd.AddCommand(commandsListCmd)
	rootCmd.AddCommand(commandsCmd)
}
