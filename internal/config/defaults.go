package config

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"assistants":         []string{"claude"},
		"format":             "native",
		"overwrite":          false,
		"validate":           true,
		"log_level":          "warn",
		"skip_confirmations": false,
	}
}
