package config

// Settings represents the persisted tplctl settings.
type Settings struct {
	// Environment locates devinit and its configuration file.
	Environment EnvironmentSettings `json:"environment" yaml:"environment"`
	// Automation holds template associations and stored variable defaults.
	Automation AutomationSettings `json:"automation" yaml:"automation"`
	// CommandTimeout bounds each devinit invocation in seconds (0 = default).
	CommandTimeout int `json:"command_timeout" yaml:"command_timeout"`
}

// EnvironmentSettings locates the devinit executable and devinitrc file.
type EnvironmentSettings struct {
	// ExecutablePath is the path to devinit. Empty means search PATH.
	ExecutablePath string `json:"executable_path" yaml:"executable_path"`
	// ConfigurationFile is the devinitrc.yml passed with --config.
	// Empty means devinit uses its own default location.
	ConfigurationFile string `json:"configuration_file" yaml:"configuration_file"`
}

// AutomationSettings holds per-template automation data.
type AutomationSettings struct {
	// TemplateAssociations maps filename globs to file template names.
	TemplateAssociations map[string]string `json:"template_associations" yaml:"template_associations"`
	// DefaultTemplateVariables maps a template name to its stored variable defaults.
	DefaultTemplateVariables map[string]map[string]string `json:"default_template_variables" yaml:"default_template_variables"`
}
