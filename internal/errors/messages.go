package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the taskmanager CLI.

// InvalidAssistant creates an error for an unrecognized assistant id.
func InvalidAssistant(err error, available []string) *CLIError {
	e := WrapWithMessage(err, Argument,
		"unsupported assistant",
		"Supported assistants: "+strings.Join(available, ", "),
		"Pass a comma-separated list: --assistants claude,gemini",
	)
	e.Usage = "taskmanager init --assistants <id>[,<id>...]"
	return e
}

// InvalidFormat creates an error for an unknown --format value.
func InvalidFormat(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid format: %s", provided),
		"--format md|toml|native",
		"md copies command files unchanged",
		"toml converts every command to the TOML prompt format",
		"native uses each assistant's own format",
	)
}

// InvalidPlanID creates an error for a plan id that is not a positive integer.
func InvalidPlanID(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid plan id: %s", provided),
		"taskmanager plan show <id>",
		"Plan ids are positive integers (e.g., 1 or 01)",
		"List plans with: taskmanager plan list",
	)
}

// PlanNotFound creates an error for a plan id absent from both roots.
func PlanNotFound(id int) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("plan %d not found in plans/ or archive/", id),
		"List plans with: taskmanager plan list",
		"Check that --root points at the project containing .ai/task-manager",
	)
}

// PathValidationFailed creates an error for an unreadable source or unwritable destination.
func PathValidationFailed(messages []string) *CLIError {
	return NewFilesystemError(
		strings.Join(messages, "; "),
		"Check that the source directory exists and contains .md command files",
		"Check that you have write permission in the project directory",
	)
}

// ConfigLoadFailed creates an error for an invalid configuration file or value.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .ai/task-manager/config.yml and ~/.config/taskmanager/config.yml",
		"Unset TASKMANAGER_* environment variables to rule them out",
	)
}

// InstallIncomplete creates an error when some command files failed to install.
func InstallIncomplete(failed int) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("%d command file(s) failed to install", failed),
		"Add a description field to the frontmatter of each listed file",
		"Or rerun with --no-validate to install them anyway",
	)
}
