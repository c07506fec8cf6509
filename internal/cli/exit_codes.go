package cli

// Exit codes for the taskmanager CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitInstallErrors indicates the run finished but some files failed
	ExitInstallErrors = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitFilesystem indicates an unusable source or destination path
	ExitFilesystem = 4

	// ExitConfig indicates an invalid configuration file or value
	ExitConfig = 5
)
