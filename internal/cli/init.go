package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/ariel-frischer/taskmanager/internal/build"
	"github.com/ariel-frischer/taskmanager/internal/errors"
	"github.com/ariel-frischer/taskmanager/internal/install"
	"github.com/ariel-frischer/taskmanager/internal/progress"
	"github.com/ariel-frischer/taskmanager/internal/scaffold"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install or refresh the task manager in a project",
	Long: `Install the task manager configuration and command templates.

On the first run every bundled file is written to .ai/task-manager/ and
the command templates are installed for each assistant under
.ai/<assistant>/tasks/.

On later runs bundled files you have not touched are refreshed, files
you added are left alone and scripts are always replaced. For each
bundled file you modified you are asked whether to keep your version or
overwrite it. --yes keeps every modified file, --force overwrites them.`,
	Example: `  # First install for Claude
  taskmanager init

  # Install for several assistants with TOML commands
  taskmanager init --assistants claude,gemini --format toml

  # Refresh and replace any modified files
  taskmanager init --force`,
	RunE: runInit,
}

var (
	initInstall installFlags
	initForce   bool
	initYes     bool
)

func init() {
	initCmd.GroupID = GroupGettingStarted
	initInstall.register(initCmd, true)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite modified configuration files without asking")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Keep modified configuration files without asking")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(cmd)
	if err != nil {
		return err
	}
	assistants, installOpts, err := initInstall.resolve(cmd, proj.Config)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	display := progress.NewDisplay(out, progress.DetectTerminalCapabilities())

	opts := scaffold.Options{
		Root:       proj.Root,
		Assistants: assistants,
		Install:    installOpts,
		Force:      initForce,
		Version:    build.MetadataVersion(),
	}
	if !initYes && !proj.Config.SkipConfirmations {
		prompt := newPromptResolver(cmd.InOrStdin(), out)
		opts.Resolver = scaffold.ResolverFunc(func(conflicts []scaffold.Conflict) (map[string]scaffold.Resolution, error) {
			if display.Active() {
				display.Finish(progress.StatusWarning, fmt.Sprintf("%d modified file(s) need a decision", len(conflicts)))
			}
			return prompt.Resolve(conflicts)
		})
	}

	display.Start("Installing task manager into " + proj.Root)
	report, err := scaffold.New().Init(opts)
	if err != nil {
		if display.Active() {
			display.Finish(progress.StatusFailed, "")
		}
		if stderrors.Is(err, assistant.ErrInvalidAssistant) {
			return errors.InvalidAssistant(err, assistant.Names())
		}
		return errors.WrapWithMessage(err, errors.Filesystem, "init failed: "+err.Error(),
			"Check that you have write permission in "+proj.Root,
		)
	}
	if display.Active() {
		status := progress.StatusOK
		if !report.Commands.Success {
			status = progress.StatusFailed
		}
		display.Finish(status, "")
	}

	printInitReport(out, report)
	return commandsOutcome(report.Commands)
}

func printInitReport(out io.Writer, report *scaffold.Report) {
	bold := color.New(color.Bold)

	fmt.Fprintln(out)
	if report.FirstTime {
		bold.Fprintln(out, "Configuration (first install):")
	} else {
		bold.Fprintln(out, "Configuration:")
	}
	var parts []string
	for _, a := range []scaffold.Action{
		scaffold.ActionCreated,
		scaffold.ActionUpdated,
		scaffold.ActionUnchanged,
		scaffold.ActionOverwritten,
		scaffold.ActionKept,
		scaffold.ActionScript,
	} {
		if n := report.Count(a); n > 0 {
			label := string(a)
			if a == scaffold.ActionScript {
				label = "scripts"
			}
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	fmt.Fprintf(out, "  %s\n", strings.Join(parts, ", "))
	for _, o := range report.Config {
		if o.Action == scaffold.ActionKept {
			fmt.Fprintf(out, "  kept your version of %s\n", o.Path)
		}
	}

	if report.VersionMismatch {
		color.New(color.FgYellow).Fprintf(out,
			"  files were first installed by taskmanager %s; kept files may not match the %s templates\n",
			report.RecordedVersion, build.Version)
	}

	fmt.Fprintln(out)
	printCommandsReport(out, report.Commands)
}

// printCommandsReport prints one line per assistant and each file error.
func printCommandsReport(out io.Writer, result *install.MultiResult) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	bold.Fprintln(out, "Commands:")
	for _, msg := range result.Errors {
		red.Fprintf(out, "  %s\n", msg)
	}
	for _, r := range result.Results {
		fmt.Fprintf(out, "  %-9s %d installed, %d skipped", r.Assistant, len(r.Result.Installed), len(r.Result.Skipped))
		if n := len(r.Result.Errors); n > 0 {
			red.Fprintf(out, ", %d failed", n)
		}
		fmt.Fprintf(out, "  (%s)\n", install.DestinationDir(".", r.Assistant))
		for _, msg := range r.Result.Errors {
			red.Fprintf(out, "    %s\n", msg)
		}
	}
}

// commandsOutcome converts a failed install into the matching CLI error.
func commandsOutcome(result *install.MultiResult) error {
	if result.Success {
		return nil
	}
	if len(result.Errors) > 0 {
		return errors.PathValidationFailed(result.Errors)
	}
	_, _, failed := result.Totals()
	return errors.InstallIncomplete(failed)
}
