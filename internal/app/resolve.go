package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/tacogips/tplctl/internal/debug"
	"github.com/tacogips/tplctl/internal/runner"
)

// Prompter asks the user for the value of one template variable.
type Prompter interface {
	// PromptForValue returns ok=false when the prompt was dismissed without
	// a value.
	PromptForValue(ctx context.Context, identifier string) (value string, ok bool, err error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, identifier string) (string, bool, error)

// PromptForValue implements Prompter.
func (f PrompterFunc) PromptForValue(ctx context.Context, identifier string) (string, bool, error) {
	return f(ctx, identifier)
}

// RenderOptions contains options for rendering a file template.
type RenderOptions struct {
	// TemplateName is the file template to render.
	TemplateName string
	// OutputPath is where devinit writes the result. Unused for previews.
	OutputPath string
	// StoredDefaults are the configured defaults for TemplateName.
	StoredDefaults map[string]string
	// Explicit are values given by the caller. They override stored defaults.
	Explicit *runner.Variables
	// SkipDefaults ignores StoredDefaults.
	SkipDefaults bool
	// AssertEmpty asks devinit to write only to an absent or empty file.
	AssertEmpty bool
}

// RenderResult contains the results of a render.
type RenderResult struct {
	// Outcome is the captured output of the final devinit call.
	Outcome *runner.Outcome
	// Spec is the dispatched invocation.
	Spec runner.Spec
	// Variables are the bindings sent to devinit.
	Variables *runner.Variables
	// Prompted lists the identifiers the user was asked for, in order.
	Prompted []string
}

// Resolver fills in template variables and renders file templates.
type Resolver struct {
	// State supplies the executable and config paths.
	State *runner.State
	// Invoker runs devinit.
	Invoker runner.Invoker
	// Prompter asks for missing variables.
	Prompter Prompter
}

// NewResolver creates a Resolver.
func NewResolver(state *runner.State, invoker runner.Invoker, prompter Prompter) *Resolver {
	return &Resolver{
		State:    state,
		Invoker:  invoker,
		Prompter: prompter,
	}
}

// Resolution phases, for debug output.
const (
	phaseListing     = "ListingVariables"
	phasePrompting   = "Prompting"
	phaseMerging     = "Merging"
	phaseDispatching = "Dispatching"
	phaseDone        = "Done"
	phaseCancelled   = "Cancelled"
	phaseFailed      = "Failed"
)

// ResolveAndRender renders opts.TemplateName into opts.OutputPath, prompting
// for every variable devinit reports as still unspecified.
//
// A failure while listing variables is returned unchanged and nothing is
// prompted. If any prompt is dismissed the whole render is abandoned and
// ErrInputCancelled is returned; devinit is not called again.
func (r *Resolver) ResolveAndRender(ctx context.Context, opts RenderOptions) (*RenderResult, error) {
	debug.DebugSection("[app] ResolveAndRender")
	debug.DebugValue("[app] Template", opts.TemplateName)
	debug.DebugValue("[app] OutputPath", opts.OutputPath)
	debug.DebugValue("[app] SkipDefaults", opts.SkipDefaults)
	debug.DebugValue("[app] AssertEmpty", opts.AssertEmpty)

	if opts.OutputPath == "" {
		return nil, NewValidationError("output path cannot be empty", nil)
	}

	spec := r.State.NewSpec().
		WithOutputMode(runner.OutputToPath).
		WithOutputPath(opts.OutputPath).
		WithAssertEmpty(opts.AssertEmpty)
	return r.resolveAndDispatch(ctx, opts, spec)
}

// Preview resolves variables like ResolveAndRender but runs devinit in
// dry-run mode; the rendered text is in the outcome's Stdout.
func (r *Resolver) Preview(ctx context.Context, opts RenderOptions) (*RenderResult, error) {
	debug.DebugSection("[app] Preview")
	debug.DebugValue("[app] Template", opts.TemplateName)

	spec := r.State.NewSpec().WithOutputMode(runner.OutputDryRun)
	return r.resolveAndDispatch(ctx, opts, spec)
}

// ListRemainingVariables asks devinit which variables of templateName are
// not bound by known, in first-occurrence order.
func (r *Resolver) ListRemainingVariables(ctx context.Context, templateName string, known *runner.Variables) ([]string, error) {
	spec := r.State.NewSpec().
		WithOutputMode(runner.OutputListVars).
		WithTemplateName(templateName).
		WithVariables(known)

	outcome, err := runner.Run(ctx, r.Invoker, spec)
	if err != nil {
		return nil, err
	}
	return ParseVariableList(outcome.Stdout)
}

func (r *Resolver) resolveAndDispatch(ctx context.Context, opts RenderOptions, spec runner.Spec) (*RenderResult, error) {
	if opts.TemplateName == "" {
		return nil, NewValidationError("template name cannot be empty", nil)
	}

	known := KnownVariables(opts.StoredDefaults, opts.Explicit, opts.SkipDefaults)
	debug.DebugJSON("[app] Known variables", known.Map())

	debug.Debug("[app] Resolution phase: %s", phaseListing)
	remaining, err := r.ListRemainingVariables(ctx, opts.TemplateName, known)
	if err != nil {
		debug.Debug("[app] Resolution phase: %s (%v)", phaseFailed, err)
		return nil, err
	}
	debug.DebugValue("[app] Remaining variables", remaining)

	answers, err := r.promptAll(ctx, remaining)
	if err != nil {
		return nil, err
	}

	debug.Debug("[app] Resolution phase: %s", phaseMerging)
	merged := MergeAnswers(known, answers)

	debug.Debug("[app] Resolution phase: %s", phaseDispatching)
	spec = spec.
		WithSubcommand(runner.SubcommandFile).
		WithTemplateName(opts.TemplateName).
		WithVariables(merged)

	outcome, err := runner.Run(ctx, r.Invoker, spec)
	if err != nil {
		debug.Debug("[app] Resolution phase: %s (%v)", phaseFailed, err)
		return nil, err
	}
	debug.Debug("[app] Resolution phase: %s", phaseDone)

	return &RenderResult{
		Outcome:   outcome,
		Spec:      spec,
		Variables: merged,
		Prompted:  remaining,
	}, nil
}

// promptAll asks for each identifier in order, stopping at the first
// dismissed prompt.
func (r *Resolver) promptAll(ctx context.Context, identifiers []string) (*runner.Variables, error) {
	answers := &runner.Variables{}
	if len(identifiers) == 0 {
		return answers, nil
	}
	if r.Prompter == nil {
		return nil, NewPromptError(fmt.Sprintf("no prompt available for %d unspecified variables", len(identifiers)), nil)
	}

	for i, id := range identifiers {
		debug.Debug("[app] Resolution phase: %s %d/%d (%s)", phasePrompting, i+1, len(identifiers), id)

		value, ok, err := r.Prompter.PromptForValue(ctx, id)
		if err != nil {
			if IsCancelled(err) {
				debug.Debug("[app] Resolution phase: %s", phaseCancelled)
				return nil, ErrInputCancelled
			}
			return nil, NewPromptError(fmt.Sprintf("failed to prompt for variable %q", id), err)
		}
		if !ok {
			debug.Debug("[app] Resolution phase: %s", phaseCancelled)
			return nil, ErrInputCancelled
		}
		answers.Set(id, value)
	}
	return answers, nil
}

// KnownVariables builds the bindings known before prompting: stored defaults
// in key order (unless skipped), then explicit values, which win.
func KnownVariables(storedDefaults map[string]string, explicit *runner.Variables, skipDefaults bool) *runner.Variables {
	known := &runner.Variables{}
	if !skipDefaults {
		keys := make([]string, 0, len(storedDefaults))
		for k := range storedDefaults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			known.Set(k, storedDefaults[k])
		}
	}
	known.Merge(explicit)
	return known
}

// MergeAnswers combines known bindings with prompt answers. Answers always
// win over known values of the same name.
func MergeAnswers(known, answers *runner.Variables) *runner.Variables {
	merged := known.Clone()
	for _, id := range answers.Keys() {
		value, _ := answers.Get(id)
		merged.Set(id, value)
	}
	return merged
}
