package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate validates settings with the default loader.
func Validate(settings *Settings) error {
	return NewLoader().Validate(settings)
}

// validateAssociations checks that every association has a valid glob and a
// template name.
func validateAssociations(associations map[string]string) error {
	for _, pattern := range sortedKeys(associations) {
		field := fmt.Sprintf("automation.template_associations[%q]", pattern)
		if strings.TrimSpace(pattern) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", field, "association pattern cannot be empty")
		}
		if !doublestar.ValidatePattern(pattern) {
			return NewConfigErrorWithField(ConfigValidationFailed, "", field, "invalid glob pattern")
		}
		if strings.TrimSpace(associations[pattern]) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", field, "template name cannot be empty")
		}
	}
	return nil
}

// validateDefaultVariables checks that stored defaults can be passed to
// devinit as -D bindings.
func validateDefaultVariables(defaults map[string]map[string]string) error {
	templates := make([]string, 0, len(defaults))
	for name := range defaults {
		templates = append(templates, name)
	}
	sort.Strings(templates)

	for _, name := range templates {
		for _, key := range sortedKeys(defaults[name]) {
			field := fmt.Sprintf("automation.default_template_variables[%q]", name)
			if key == "" {
				return NewConfigErrorWithField(ConfigValidationFailed, "", field, "variable name cannot be empty")
			}
			if strings.Contains(key, "=") {
				return NewConfigErrorWithField(ConfigValidationFailed, "", field,
					fmt.Sprintf("variable name %q cannot contain '='", key))
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
