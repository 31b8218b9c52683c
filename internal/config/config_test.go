package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// testLoader returns a loader that sees only the given environment.
func testLoader(env map[string]string) *FileLoader {
	return &FileLoader{Getenv: func(key string) string { return env[key] }}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	require.NotNil(t, settings)
	assert.Empty(t, settings.Environment.ExecutablePath)
	assert.Empty(t, settings.Environment.ConfigurationFile)
	assert.NotNil(t, settings.Automation.TemplateAssociations)
	assert.NotNil(t, settings.Automation.DefaultTemplateVariables)
	assert.Equal(t, DefaultCommandTimeout, settings.CommandTimeout)
}

func TestDefaultSettingsPath(t *testing.T) {
	path := DefaultSettingsPath()
	if path == "" {
		t.Skip("no home directory")
	}
	assert.Equal(t, "settings.json", filepath.Base(path))
	assert.Equal(t, "tplctl", filepath.Base(filepath.Dir(path)))
}

func TestLoadSettings(t *testing.T) {
	loader := testLoader(nil)

	t.Run("JSON with comments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, `{
  // devinit lives outside PATH here
  "environment": {
    "executable_path": "/opt/devinit/bin/devinit",
    "configuration_file": "/etc/devinit/devinitrc.yml"
  },
  "automation": {
    "template_associations": {"*.py": "python"},
    "default_template_variables": {"python": {"author": "Jane"}}
  },
  "command_timeout": 5
}`)

		settings, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/opt/devinit/bin/devinit", settings.Environment.ExecutablePath)
		assert.Equal(t, "/etc/devinit/devinitrc.yml", settings.Environment.ConfigurationFile)
		assert.Equal(t, map[string]string{"*.py": "python"}, settings.Automation.TemplateAssociations)
		assert.Equal(t, "Jane", settings.Automation.DefaultTemplateVariables["python"]["author"])
		assert.Equal(t, 5, settings.CommandTimeout)
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		writeFile(t, path, `environment:
  executable_path: devinit
automation:
  default_template_variables:
    base:
      license: MIT
`)

		settings, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "devinit", settings.Environment.ExecutablePath, "bare names stay unexpanded")
		assert.Equal(t, "MIT", settings.Automation.DefaultTemplateVariables["base"]["license"])
		assert.Equal(t, DefaultCommandTimeout, settings.CommandTimeout)
		assert.NotNil(t, settings.Automation.TemplateAssociations)
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, `{"environment": {"configuration_file": "conf/devinitrc.yml"}}`)

		settings, err := loader.Load(path)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(settings.Environment.ConfigurationFile))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load("/nonexistent/settings.json")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, "{ invalid json }")

		_, err := loader.Load(path)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ConfigInvalid, cfgErr.Type)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yml")
		writeFile(t, path, "environment: [unclosed")

		_, err := loader.Load(path)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ConfigInvalid, cfgErr.Type)
	})

	t.Run("validation failure names the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, `{"command_timeout": -1}`)

		_, err := loader.Load(path)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ConfigValidationFailed, cfgErr.Type)
		assert.Equal(t, path, cfgErr.File)
		assert.Equal(t, "command_timeout", cfgErr.Field)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("returns defaults for missing file", func(t *testing.T) {
		settings, err := testLoader(nil).LoadOrDefault("/nonexistent/settings.json")
		require.NoError(t, err)
		assert.Equal(t, DefaultCommandTimeout, settings.CommandTimeout)
	})

	t.Run("environment overrides apply to defaults", func(t *testing.T) {
		loader := testLoader(map[string]string{
			EnvExecutablePath: "/usr/local/bin/devinit",
			EnvConfigFile:     "/srv/devinitrc.yml",
		})

		settings, err := loader.LoadOrDefault("/nonexistent/settings.json")
		require.NoError(t, err)
		assert.Equal(t, "/usr/local/bin/devinit", settings.Environment.ExecutablePath)
		assert.Equal(t, "/srv/devinitrc.yml", settings.Environment.ConfigurationFile)
	})

	t.Run("environment overrides win over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, `{"environment": {"executable_path": "/opt/devinit"}}`)

		settings, err := testLoader(map[string]string{EnvExecutablePath: "/env/devinit"}).LoadOrDefault(path)
		require.NoError(t, err)
		assert.Equal(t, "/env/devinit", settings.Environment.ExecutablePath)
	})

	t.Run("invalid file is still an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, "not json")

		_, err := testLoader(nil).LoadOrDefault(path)
		assert.Error(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/devinitrc.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "devinitrc.yml"), got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")), "missing .env is not an error")

	key := "TPLCTL_TEST_DOTENV_VALUE"
	t.Setenv(key, "")
	os.Unsetenv(key)
	path := filepath.Join(dir, ".env")
	writeFile(t, path, key+"=from-dotenv\n")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}
