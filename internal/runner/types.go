package runner

import (
	"fmt"
	"strings"
)

// ToolName is the canonical executable name of the generator tool.
const ToolName = "devinit"

// Subcommand selects the devinit subcommand to run.
type Subcommand int

const (
	// SubcommandFile renders a file template.
	SubcommandFile Subcommand = iota
	// SubcommandProject renders a project template.
	SubcommandProject
	// SubcommandList lists the available templates.
	SubcommandList
)

// String returns the command-line token for the subcommand.
func (s Subcommand) String() string {
	switch s {
	case SubcommandFile:
		return "file"
	case SubcommandProject:
		return "project"
	case SubcommandList:
		return "list"
	default:
		return fmt.Sprintf("Subcommand(%d)", int(s))
	}
}

// OutputMode selects what a file or project invocation produces.
// It is ignored for SubcommandList.
type OutputMode int

const (
	// OutputToPath writes the rendered template to Spec.OutputPath.
	OutputToPath OutputMode = iota
	// OutputDryRun prints the rendered template on stdout instead of writing it.
	OutputDryRun
	// OutputListVars prints the variables still needed by the template.
	OutputListVars
)

// String returns a readable name for the output mode.
func (m OutputMode) String() string {
	switch m {
	case OutputToPath:
		return "path"
	case OutputDryRun:
		return "dry-run"
	case OutputListVars:
		return "list-vars"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// Variables is an insertion-ordered mapping of template variable bindings.
// The zero value is an empty mapping ready to use.
type Variables struct {
	keys   []string
	values map[string]string
}

// NewVariables creates a mapping from key/value pairs given in order.
// It panics if pairs has an odd length.
func NewVariables(pairs ...string) *Variables {
	if len(pairs)%2 != 0 {
		panic("runner.NewVariables: odd number of arguments")
	}
	v := &Variables{}
	for i := 0; i < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

// Set binds key to value. Rebinding an existing key keeps its position.
func (v *Variables) Set(key, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns the value bound to key.
func (v *Variables) Get(key string) (string, bool) {
	if v == nil || v.values == nil {
		return "", false
	}
	val, ok := v.values[key]
	return val, ok
}

// Len returns the number of bindings.
func (v *Variables) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Keys returns the keys in insertion order.
func (v *Variables) Keys() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Merge applies every binding of other on top of v, in other's order.
// Values from other win on collision.
func (v *Variables) Merge(other *Variables) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		v.Set(k, other.values[k])
	}
}

// Clone returns an independent copy.
func (v *Variables) Clone() *Variables {
	out := &Variables{}
	out.Merge(v)
	return out
}

// Map returns the bindings as a plain map.
func (v *Variables) Map() map[string]string {
	out := make(map[string]string, v.Len())
	if v == nil {
		return out
	}
	for _, k := range v.keys {
		out[k] = v.values[k]
	}
	return out
}

// Spec describes one devinit invocation.
//
// Spec is a value: the With* helpers return a modified copy and never touch
// the receiver, and Variables is cloned on every copy so a built Spec cannot
// be changed through a shared mapping.
type Spec struct {
	// ExecutablePath is the devinit binary. Empty means search PATH.
	ExecutablePath string
	// ConfigPath is the devinitrc file passed with --config. Empty means unset.
	ConfigPath string
	// Subcommand is the devinit subcommand.
	Subcommand Subcommand
	// OutputMode selects the output flag. Ignored for SubcommandList.
	OutputMode OutputMode
	// OutputPath is the --path value. Only used with OutputToPath.
	OutputPath string
	// TemplateName is the final positional argument. Ignored for SubcommandList.
	TemplateName string
	// Variables are emitted as -D bindings. Ignored for SubcommandList.
	Variables *Variables
	// AssertEmpty asks devinit to write only to an absent or empty target.
	AssertEmpty bool
}

func (s Spec) clone() Spec {
	s.Variables = s.Variables.Clone()
	return s
}

// WithSubcommand returns a copy of s running subcommand.
func (s Spec) WithSubcommand(subcommand Subcommand) Spec {
	out := s.clone()
	out.Subcommand = subcommand
	return out
}

// WithOutputMode returns a copy of s using mode.
func (s Spec) WithOutputMode(mode OutputMode) Spec {
	out := s.clone()
	out.OutputMode = mode
	return out
}

// WithOutputPath returns a copy of s writing to path.
func (s Spec) WithOutputPath(path string) Spec {
	out := s.clone()
	out.OutputPath = path
	return out
}

// WithTemplateName returns a copy of s rendering name.
func (s Spec) WithTemplateName(name string) Spec {
	out := s.clone()
	out.TemplateName = name
	return out
}

// WithVariables returns a copy of s carrying a copy of vars.
func (s Spec) WithVariables(vars *Variables) Spec {
	out := s
	out.Variables = vars.Clone()
	return out
}

// WithVariable returns a copy of s with key bound to value.
func (s Spec) WithVariable(key, value string) Spec {
	out := s.clone()
	out.Variables.Set(key, value)
	return out
}

// WithAssertEmpty returns a copy of s with the assert-empty flag set to assert.
func (s Spec) WithAssertEmpty(assert bool) Spec {
	out := s.clone()
	out.AssertEmpty = assert
	return out
}

// Validate reports bindings and enum values devinit cannot receive.
func (s Spec) Validate() error {
	switch s.Subcommand {
	case SubcommandFile, SubcommandProject, SubcommandList:
	default:
		return fmt.Errorf("unknown subcommand: %s", s.Subcommand)
	}
	if s.Subcommand == SubcommandList {
		return nil
	}

	switch s.OutputMode {
	case OutputToPath, OutputDryRun, OutputListVars:
	default:
		return fmt.Errorf("unknown output mode: %s", s.OutputMode)
	}

	for _, key := range s.Variables.Keys() {
		if key == "" {
			return fmt.Errorf("variable name cannot be empty")
		}
		if strings.Contains(key, "=") {
			return fmt.Errorf("variable name %q cannot contain '='", key)
		}
	}
	return nil
}
