package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Loader defines the interface for loading settings files.
type Loader interface {
	// Load loads settings from the specified file path.
	Load(path string) (*Settings, error)
	// LoadOrDefault loads settings or returns defaults if the file doesn't exist.
	LoadOrDefault(path string) (*Settings, error)
	// Validate validates the settings.
	Validate(settings *Settings) error
}

// FileLoader implements the Loader interface for file-based settings.
// JSON files may contain comments; .yaml and .yml files are decoded as YAML.
type FileLoader struct {
	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(key string) string
}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{Getenv: os.Getenv}
}

// Load loads settings from the specified file path.
func (l *FileLoader) Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "settings file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read settings file", err)
	}

	settings, err := decodeSettings(path, data)
	if err != nil {
		return nil, err
	}

	if err := l.finalize(settings); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to resolve paths", err)
	}

	if err := l.Validate(settings); err != nil {
		if cfgErr, ok := err.(*ConfigError); ok {
			cfgErr.File = path
		}
		return nil, err
	}

	return settings, nil
}

// LoadOrDefault loads settings or returns defaults if the file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Settings, error) {
	settings, err := l.Load(path)
	if err != nil {
		if IsNotFound(err) {
			settings = DefaultSettings()
			if err := l.finalize(settings); err != nil {
				return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to resolve paths", err)
			}
			return settings, nil
		}
		return nil, err
	}
	return settings, nil
}

// Validate validates the settings.
func (l *FileLoader) Validate(settings *Settings) error {
	if settings.CommandTimeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "command_timeout", "timeout cannot be negative")
	}
	if err := validateAssociations(settings.Automation.TemplateAssociations); err != nil {
		return err
	}
	return validateDefaultVariables(settings.Automation.DefaultTemplateVariables)
}

// decodeSettings decodes data by file extension and merges defaults for
// missing fields.
func decodeSettings(path string, data []byte) (*Settings, error) {
	var settings Settings

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax", err)
		}
	}

	mergeSettings(&settings, DefaultSettings())
	return &settings, nil
}

// finalize applies environment overrides and expands paths.
func (l *FileLoader) finalize(settings *Settings) error {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(EnvExecutablePath); v != "" {
		settings.Environment.ExecutablePath = v
	}
	if v := getenv(EnvConfigFile); v != "" {
		settings.Environment.ConfigurationFile = v
	}

	exe, err := expandSettingPath(settings.Environment.ExecutablePath)
	if err != nil {
		return err
	}
	settings.Environment.ExecutablePath = exe

	rc, err := expandSettingPath(settings.Environment.ConfigurationFile)
	if err != nil {
		return err
	}
	settings.Environment.ConfigurationFile = rc

	return nil
}

// expandSettingPath expands path unless it is empty or a bare program name,
// which os/exec resolves through PATH itself.
func expandSettingPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path[0] != '~' && !strings.ContainsRune(path, filepath.Separator) && !strings.ContainsRune(path, '/') {
		return path, nil
	}
	return ExpandPath(path)
}

// mergeSettings merges missing fields from defaults into settings.
func mergeSettings(settings, defaults *Settings) {
	if settings.Automation.TemplateAssociations == nil {
		settings.Automation.TemplateAssociations = defaults.Automation.TemplateAssociations
	}
	if settings.Automation.DefaultTemplateVariables == nil {
		settings.Automation.DefaultTemplateVariables = defaults.Automation.DefaultTemplateVariables
	}
	if settings.CommandTimeout == 0 {
		settings.CommandTimeout = defaults.CommandTimeout
	}
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator || path[1] == '/' {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}
