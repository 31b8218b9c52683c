package app

import (
	"context"

	"github.com/tacogips/tplctl/internal/config"
	"github.com/tacogips/tplctl/internal/debug"
	"github.com/tacogips/tplctl/internal/runner"
)

// TemplatePicker lets the user choose one of the available templates.
type TemplatePicker interface {
	// PickTemplate returns ok=false when the choice was dismissed.
	PickTemplate(ctx context.Context, templates []TemplateDescriptor) (name string, ok bool, err error)
}

// SelectOptions contains options for choosing the template to render.
type SelectOptions struct {
	// TemplateName is used as-is when set.
	TemplateName string
	// OutputPath is matched against Associations.
	OutputPath string
	// Associations maps glob patterns to template names.
	Associations map[string]string
	// Picker is asked when neither of the above yields a template.
	Picker TemplatePicker
}

// SelectTemplate decides which file template to render: the explicit name,
// then the first association matching the output path, then the picker over
// devinit's file templates.
func SelectTemplate(ctx context.Context, state *runner.State, invoker runner.Invoker, opts SelectOptions) (string, error) {
	if opts.TemplateName != "" {
		return opts.TemplateName, nil
	}

	if opts.OutputPath != "" {
		if name, ok := config.MatchAssociation(opts.Associations, opts.OutputPath); ok {
			debug.Debug("[app] Template %q associated with %s", name, opts.OutputPath)
			return name, nil
		}
	}

	if opts.Picker == nil {
		return "", NewTemplateSelectionError("no template given and no association matches", nil)
	}

	templates, err := ListTemplates(ctx, state, invoker)
	if err != nil {
		return "", err
	}
	if len(templates) == 0 {
		return "", NewTemplateSelectionError("devinit reports no file templates", nil)
	}

	name, ok, err := opts.Picker.PickTemplate(ctx, templates)
	if err != nil {
		if IsCancelled(err) {
			return "", ErrInputCancelled
		}
		return "", NewTemplateSelectionError("failed to choose a template", err)
	}
	if !ok {
		return "", ErrInputCancelled
	}
	return name, nil
}
