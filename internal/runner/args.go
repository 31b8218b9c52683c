package runner

import (
	shellquote "github.com/kballard/go-shellquote"
)

// Argument tokens understood by devinit.
const (
	argConfig      = "--config="
	argParsable    = "--parsable"
	argPath        = "--path="
	argDryRun      = "--dry-run"
	argListVars    = "--list-vars"
	argDefine      = "-D"
	argAssertEmpty = "--assert-empty"
)

// BuildArgs converts spec into the devinit argument vector, excluding the
// executable itself:
//
//	[--config=<path>] --parsable {list|file|project}
//	  [--path=<out> | --dry-run | --list-vars]
//	  (-D<key>=<value>)* [--assert-empty] <template>
//
// Everything after the subcommand token is omitted for SubcommandList.
// Arguments are passed to the process directly, never through a shell, so
// values are not quoted.
func BuildArgs(spec Spec) []string {
	args := make([]string, 0, 5+spec.Variables.Len())

	if spec.ConfigPath != "" {
		args = append(args, argConfig+spec.ConfigPath)
	}

	args = append(args, argParsable, spec.Subcommand.String())

	if spec.Subcommand == SubcommandList {
		return args
	}

	switch spec.OutputMode {
	case OutputToPath:
		args = append(args, argPath+spec.OutputPath)
	case OutputDryRun:
		args = append(args, argDryRun)
	case OutputListVars:
		args = append(args, argListVars)
	}

	for _, key := range spec.Variables.Keys() {
		value, _ := spec.Variables.Get(key)
		args = append(args, argDefine+key+"="+value)
	}

	if spec.AssertEmpty {
		args = append(args, argAssertEmpty)
	}

	return append(args, spec.TemplateName)
}

// CommandLine renders an invocation as a shell-quoted string for diagnostics.
func CommandLine(executablePath string, args []string) string {
	if executablePath == "" {
		executablePath = ToolName
	}
	return shellquote.Join(append([]string{executablePath}, args...)...)
}
