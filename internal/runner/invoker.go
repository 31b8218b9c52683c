package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tacogips/tplctl/internal/debug"
)

// Outcome is the captured result of a successful devinit invocation.
type Outcome struct {
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
	// Command is the invocation as a shell-quoted string.
	Command string
}

// Invoker runs devinit with an argument vector.
type Invoker interface {
	// Invoke runs the executable with args and waits for it to exit.
	// An empty executablePath means search PATH for ToolName.
	Invoke(ctx context.Context, executablePath string, args []string) (*Outcome, error)
}

// CommandFunc creates the command for a resolved executable.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// ProcessInvoker implements Invoker with os/exec.
type ProcessInvoker struct {
	// LookPath searches PATH. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
	// CommandContext creates commands. Defaults to exec.CommandContext.
	CommandContext CommandFunc
	// Timeout bounds each invocation. Zero means no limit.
	Timeout time.Duration
}

// NewProcessInvoker creates a ProcessInvoker using the real PATH and os/exec.
func NewProcessInvoker(timeout time.Duration) *ProcessInvoker {
	return &ProcessInvoker{
		LookPath:       exec.LookPath,
		CommandContext: exec.CommandContext,
		Timeout:        timeout,
	}
}

// ResolveExecutable returns executablePath verbatim when set, otherwise the
// PATH location of ToolName.
func (p *ProcessInvoker) ResolveExecutable(executablePath string) (string, error) {
	if executablePath != "" {
		return executablePath, nil
	}

	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	resolved, err := lookPath(ToolName)
	if err != nil || resolved == "" {
		debug.Debug("[runner] %s not found on PATH: %v", ToolName, err)
		return "", NewRunnerError(ExecutableNotFound,
			fmt.Sprintf("%s executable not found on PATH; set the executable path in settings", ToolName), err)
	}
	debug.DebugValue("[runner] Resolved executable", resolved)
	return resolved, nil
}

// Invoke implements Invoker.
func (p *ProcessInvoker) Invoke(ctx context.Context, executablePath string, args []string) (*Outcome, error) {
	resolved, err := p.ResolveExecutable(executablePath)
	if err != nil {
		return nil, err
	}

	commandLine := CommandLine(resolved, args)
	debug.DebugValue("[runner] Command", commandLine)

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	newCommand := p.CommandContext
	if newCommand == nil {
		newCommand = exec.CommandContext
	}

	var stdout, stderr bytes.Buffer
	cmd := newCommand(ctx, resolved, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	debug.Debug("[runner] Process finished in %s", time.Since(start).Round(time.Millisecond))

	if runErr != nil {
		return nil, p.normalizeRunError(ctx, runErr, commandLine, stderr.String())
	}

	return &Outcome{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Command: commandLine,
	}, nil
}

// normalizeRunError maps a failed run to a RunnerError, preferring the
// captured stderr text over the runtime's error message.
func (p *ProcessInvoker) normalizeRunError(ctx context.Context, runErr error, commandLine, stderrText string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			re := NewRunnerError(Timeout, fmt.Sprintf("%s timed out", ToolName), ctxErr)
			re.Command = commandLine
			re.Stderr = stderrText
			return re
		}
		return fmt.Errorf("%s interrupted: %w", ToolName, ctxErr)
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		debug.Debug("[runner] Failed to start process: %v", runErr)
		re := NewRunnerError(ExecutableNotFound, fmt.Sprintf("failed to start %s", ToolName), runErr)
		re.Command = commandLine
		return re
	}

	msg := strings.TrimSpace(stderrText)
	if msg == "" {
		msg = runErr.Error()
	}

	typ := ProcessFailed
	if exitErr.ExitCode() == exitNoConfig {
		typ = ConfigNotFound
	}
	debug.Debug("[runner] Process exited with status %d (%s)", exitErr.ExitCode(), typ)

	re := NewRunnerError(typ, msg, nil)
	re.Command = commandLine
	re.Stderr = stderrText
	re.ExitCode = exitErr.ExitCode()
	return re
}

// Run validates spec, builds its arguments and invokes it.
func Run(ctx context.Context, invoker Invoker, spec Spec) (*Outcome, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invocation: %w", err)
	}
	return invoker.Invoke(ctx, spec.ExecutablePath, BuildArgs(spec))
}
