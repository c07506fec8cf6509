// taskmanager - AI task manager scaffolding
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/taskmanager

// Package config provides hierarchical configuration management for taskmanager using koanf.
// Configuration is loaded with priority: environment variables > project config
// (<root>/.ai/task-manager/config.yml) > user config (~/.config/taskmanager/config.yml) > defaults.
// A legacy project config.json is still read when no YAML project config exists.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TASKMANAGER_"

// Configuration represents the taskmanager CLI configuration
type Configuration struct {
	// Assistants lists the assistants commands are installed for, in order.
	// Can be set via TASKMANAGER_ASSISTANTS=claude,gemini.
	Assistants []string `koanf:"assistants" validate:"required,min=1,dive,required"`
	// Format selects md (raw copy), toml (convert) or native (per assistant).
	Format string `koanf:"format" validate:"required,oneof=md toml native"`
	// Overwrite replaces existing command files instead of skipping them.
	Overwrite bool `koanf:"overwrite"`
	// Validate rejects command files without a description.
	Validate bool `koanf:"validate"`
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn warning error"`
	// SkipConfirmations keeps modified files without prompting (can also be set via TASKMANAGER_YES)
	SkipConfirmations bool `koanf:"skip_confirmations"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectRoot is the directory holding .ai/task-manager. Empty skips project config.
	ProjectRoot string
	// ProjectConfigPath overrides the project config path (for testing)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (for testing)
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration for the project at root.
// Priority: Environment variables > Project config > User config > Defaults
func Load(root string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectRoot: root})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, override string) error {
	path := override
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	projectYAMLPath := opts.ProjectConfigPath
	if projectYAMLPath == "" && opts.ProjectRoot != "" {
		projectYAMLPath = ProjectConfigPath(opts.ProjectRoot)
	}
	legacyProjectPath := ""
	if opts.ProjectRoot != "" {
		legacyProjectPath = LegacyProjectConfigPath(opts.ProjectRoot)
	}

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyProjectExists && !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n\n", legacyProjectPath, projectYAMLPath)
		}
	} else if legacyProjectExists {
		if err := k.Load(file.Provider(legacyProjectPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyProjectPath, err)
		}
		if !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyProjectPath)
			fmt.Fprintf(warningWriter, "  Move its settings to %s.\n\n", ProjectConfigPath(opts.ProjectRoot))
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Assistants = assistant.SplitList(cfg.Assistants)
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if os.Getenv(EnvPrefix+"YES") != "" {
		cfg.SkipConfirmations = true
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: TASKMANAGER_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
