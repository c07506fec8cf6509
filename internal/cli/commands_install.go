package cli

import (
	"fmt"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/ariel-frischer/taskmanager/internal/commands"
	"github.com/ariel-frischer/taskmanager/internal/install"
	"github.com/spf13/cobra"
)

var commandsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install command templates for the configured assistants",
	Long: `Install command templates to .ai/<assistant>/tasks/ for each assistant.

Without --source the bundled templates are installed. With --source every
.md file of that directory is installed instead. Existing files are
skipped unless --overwrite is given. Files without a description in their
frontmatter are reported as errors unless --no-validate is given.

Unlike init, this command does not touch .ai/task-manager/.`,
	Example: `  taskmanager commands install
  taskmanager commands install --source ./my-commands --assistants claude,gemini
  taskmanager commands install --overwrite --format toml`,
	Args: cobra.NoArgs,
	RunE: runCommandsInstall,
}

var (
	commandsInstall installFlags
	installSource   string
)

func init() {
	commandsCmd.AddCommand(commandsInstallCmd)
	commandsInstall.register(commandsInstallCmd, true)
	commandsInstallCmd.Flags().StringVar(&installSource, "source", "", "Directory of .md command templates (default: bundled templates)")
}

func runCommandsInstall(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(cmd)
	if err != nil {
		return err
	}
	ids, opts, err := commandsInstall.resolve(cmd, proj.Config)
	if err != nil {
		return err
	}
	cfg, err := assistant.NewConfig(proj.Root, ids...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var result *install.MultiResult
	if installSource != "" {
		fmt.Fprintf(out, "Installing commands from %s...\n\n", installSource)
		result = install.InstallCommandsForAssistants(installSource, cfg, opts)
	} else {
		fmt.Fprintf(out, "Installing bundled commands...\n\n")
		result = install.New(install.WithSourceFs(commands.CommandsFS())).InstallForAssistants(".", cfg, opts)
	}

	printCommandsReport(out, result)
	return commandsOutcome(result)
}
