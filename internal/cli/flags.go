package cli

import (
	"fmt"
	"strings"

	"github.com/tacogips/tplctl/internal/runner"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagSettings      = "settings"
	FlagDevinit       = "devinit"
	FlagDevinitConfig = "devinit-config"
	FlagDefine        = "define"
	FlagSkipDefaults  = "skip-defaults"
	FlagAssertEmpty   = "assert-empty"
	FlagProject       = "project"
	FlagJSON          = "json"
	FlagNoColor       = "no-color"
	FlagQuiet         = "quiet"
	FlagDebug         = "debug"

	// Flag descriptions
	DescSettings      = "Path to settings file (default ~/.config/tplctl/settings.json)"
	DescDevinit       = "Path to the devinit executable (default: search PATH)"
	DescDevinitConfig = "Path to the devinitrc file passed to devinit"
	DescDefine        = "Set a template variable (key=value, repeatable)"
	DescSkipDefaults  = "Ignore stored default variables"
	DescAssertEmpty   = "Only write to a missing or empty file"
	DescProject       = "List project templates instead of file templates"
	DescJSON          = "Output as JSON"
	DescNoColor       = "Disable colored output"
	DescQuiet         = "Suppress non-error output"
	DescDebug         = "Enable debug logging"
)

// parseDefines converts repeated key=value flag values into ordered bindings.
// The value may itself contain '='; the key may not be empty.
func parseDefines(values []string) (*runner.Variables, error) {
	vars := &runner.Variables{}
	for _, raw := range values {
		key, value, found := strings.Cut(raw, "=")
		if !found {
			return nil, fmt.Errorf("invalid variable %q: expected key=value", raw)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid variable %q: key cannot be empty", raw)
		}
		vars.Set(key, value)
	}
	return vars, nil
}
