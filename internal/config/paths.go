package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/taskmanager/config.yml
// - macOS: ~/Library/Application Support/taskmanager/config.yml
// - Windows: %APPDATA%\taskmanager\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "taskmanager", "config.yml"), nil
}

// ProjectConfigDir returns <root>/.ai/task-manager.
func ProjectConfigDir(root string) string {
	return filepath.Join(root, ".ai", "task-manager")
}

// ProjectConfigPath returns the path to the project-level config file.
func ProjectConfigPath(root string) string {
	return filepath.Join(ProjectConfigDir(root), "config.yml")
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON config file.
func LegacyProjectConfigPath(root string) string {
	return filepath.Join(ProjectConfigDir(root), "config.json")
}
