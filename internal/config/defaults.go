package config

import (
	"os"
	"path/filepath"
)

// Environment variables that override the settings file.
const (
	EnvExecutablePath = "TPLCTL_EXECUTABLE_PATH"
	EnvConfigFile     = "TPLCTL_CONFIG_FILE"
)

// DefaultCommandTimeout is the default devinit timeout in seconds.
const DefaultCommandTimeout = 30

// DefaultSettings returns the default settings.
func DefaultSettings() *Settings {
	return &Settings{
		Environment: EnvironmentSettings{
			ExecutablePath:    "",
			ConfigurationFile: "",
		},
		Automation: AutomationSettings{
			TemplateAssociations:     map[string]string{},
			DefaultTemplateVariables: map[string]map[string]string{},
		},
		CommandTimeout: DefaultCommandTimeout,
	}
}

// DefaultSettingsPath returns the default settings file path.
func DefaultSettingsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "tplctl", "settings.json")
}
