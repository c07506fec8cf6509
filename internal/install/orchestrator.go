package install

import (
	"fmt"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
)

// InstallForAssistants validates the source and destination paths, then
// installs for every assistant of cfg in configured order. Success is true
// only when no path error occurred and no assistant recorded a file error;
// skipped files never affect it.
func (in *Installer) InstallForAssistants(sourceDir string, cfg *assistant.Config, opts Options) *MultiResult {
	multi := &MultiResult{Results: []AssistantResult{}, Errors: []string{}}

	if err := in.ValidatePaths(sourceDir, cfg.DestRoot()); err != nil {
		multi.Errors = append(multi.Errors, fmt.Sprintf("Path validation failed: %v", err))
		in.log.Error().Err(err).Msg("path validation failed")
		return multi
	}

	for _, id := range cfg.Assistants() {
		result, err := in.InstallForAssistant(sourceDir, cfg.DestRoot(), id, opts)
		if err != nil {
			multi.Errors = append(multi.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		multi.Results = append(multi.Results, AssistantResult{Assistant: id, Result: result})
	}

	multi.Success = len(multi.Errors) == 0
	for _, r := range multi.Results {
		if r.Result.HasErrors() {
			multi.Success = false
		}
	}
	return multi
}

// GetCommandFiles lists and parses the command files of sourceDir on the
// OS filesystem.
func GetCommandFiles(sourceDir string) ([]CommandFile, error) {
	return New().CommandFiles(sourceDir)
}

// InstallCommandsForAssistant installs sourceDir for one assistant on the
// OS filesystem.
func InstallCommandsForAssistant(sourceDir, destRoot string, id assistant.ID, opts Options) (*Result, error) {
	return New().InstallForAssistant(sourceDir, destRoot, id, opts)
}

// InstallCommandsForAssistants installs sourceDir for every assistant of
// cfg on the OS filesystem.
func InstallCommandsForAssistants(sourceDir string, cfg *assistant.Config, opts Options) *MultiResult {
	return New().InstallForAssistants(sourceDir, cfg, opts)
}
