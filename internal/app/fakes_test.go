package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/tacogips/tplctl/internal/runner"
)

type invocation struct {
	executable string
	args       []string
}

// fakeInvoker answers list-vars calls and render calls with scripted results
// and records every invocation.
type fakeInvoker struct {
	listVarsOut string
	listVarsErr error
	renderOut   string
	renderErr   error
	listOut     string
	listErr     error

	calls []invocation
}

func (f *fakeInvoker) Invoke(_ context.Context, executablePath string, args []string) (*runner.Outcome, error) {
	f.calls = append(f.calls, invocation{executable: executablePath, args: slices.Clone(args)})

	switch {
	case slices.Contains(args, "list"):
		if f.listErr != nil {
			return nil, f.listErr
		}
		return &runner.Outcome{Stdout: f.listOut}, nil
	case slices.Contains(args, "--list-vars"):
		if f.listVarsErr != nil {
			return nil, f.listVarsErr
		}
		return &runner.Outcome{Stdout: f.listVarsOut}, nil
	default:
		if f.renderErr != nil {
			return nil, f.renderErr
		}
		return &runner.Outcome{Stdout: f.renderOut}, nil
	}
}

// scriptedPrompter answers from a map and cancels on identifiers listed in
// cancelOn.
type scriptedPrompter struct {
	answers  map[string]string
	cancelOn map[string]bool
	err      error

	asked []string
}

func (p *scriptedPrompter) PromptForValue(_ context.Context, identifier string) (string, bool, error) {
	p.asked = append(p.asked, identifier)
	if p.err != nil {
		return "", false, p.err
	}
	if p.cancelOn[identifier] {
		return "", false, nil
	}
	value, ok := p.answers[identifier]
	if !ok {
		return "", false, fmt.Errorf("unscripted prompt for %q", identifier)
	}
	return value, true, nil
}

func newTestState() *runner.State {
	return runner.NewState(runner.StaticProvider{Executable: "/usr/bin/devinit", Config: "/home/jane/devinitrc.yml"})
}
