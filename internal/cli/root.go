// Package cli implements the taskmanager command tree.
package cli

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/taskmanager/internal/config"
	"github.com/ariel-frischer/taskmanager/internal/errors"
	"github.com/ariel-frischer/taskmanager/internal/git"
	"github.com/ariel-frischer/taskmanager/internal/logging"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output.
const (
	GroupGettingStarted = "getting-started"
	GroupCommands       = "commands"
	GroupPlans          = "plans"
)

var (
	rootDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "taskmanager",
	Short: "Scaffold an AI task manager into a project",
	Long: `taskmanager installs a plan/task workflow for AI coding assistants.

It writes the shared configuration tree to .ai/task-manager/ and installs
the command templates (create-plan, generate-tasks, execute-blueprint,
execute-task) for every configured assistant under .ai/<assistant>/tasks/.
Re-running init refreshes the bundled files and asks before replacing any
file you have modified.`,
	Example: `  # Set up the task manager for Claude and Gemini
  taskmanager init --assistants claude,gemini

  # Show a plan and its tasks
  taskmanager plan show 1

  # Convert a markdown command to TOML
  taskmanager convert .ai/claude/tasks/create-plan.md`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging(cmd.ErrOrStderr(), logLevel)
		return nil
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupCommands, Title: "Command Templates:"},
		&cobra.Group{ID: GroupPlans, Title: "Plans:"},
	)

	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root (default: enclosing git repository or current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	reportError(rootCmd.ErrOrStderr(), err)
	return exitCodeFor(err)
}

// reportError prints err with remediation when it carries any.
func reportError(w io.Writer, err error) {
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.FprintError(w, cliErr)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// initLogging configures the global logger. An empty level means warn.
func initLogging(w io.Writer, level string) {
	cfg := logging.DefaultConfig()
	cfg.Output = w
	if level != "" {
		cfg.Level = logging.ParseLevel(level)
	}
	logging.Init(cfg)
}

// project is the resolved root plus its effective configuration.
type project struct {
	Root   string
	Config *config.Configuration
}

// loadProject resolves the project root from --root and loads its
// configuration. The config log level applies unless --log-level was given.
func loadProject(cmd *cobra.Command) (*project, error) {
	root, err := git.ResolveProjectRoot(rootDir)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Filesystem,
			"cannot determine project root",
			"Pass the project directory explicitly: --root <dir>",
		)
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectRoot:   root,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, errors.ConfigLoadFailed(err)
	}

	if !cmd.Flags().Changed("log-level") {
		initLogging(cmd.ErrOrStderr(), cfg.LogLevel)
	}
	log := logging.Component("cli")
	log.Debug().Str("root", root).Strs("assistants", cfg.Assistants).Msg("project loaded")

	return &project{Root: root, Config: cfg}, nil
}

// exitCodeFor maps an error to the exit code for its category.
func exitCodeFor(err error) int {
	var cliErr *errors.CLIError
	if !stderrors.As(err, &cliErr) {
		return ExitInstallErrors
	}
	switch cliErr.Category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Filesystem:
		return ExitFilesystem
	case errors.Configuration:
		return ExitConfig
	default:
		return ExitInstallErrors
	}
}
