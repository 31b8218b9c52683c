package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/tacogips/tplctl/internal/app"
)

// askFunc matches survey.AskOne.
type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// SurveyPrompter asks for template variables and templates on the terminal.
// It implements app.Prompter and app.TemplatePicker.
type SurveyPrompter struct {
	ask askFunc
}

var (
	_ app.Prompter       = (*SurveyPrompter)(nil)
	_ app.TemplatePicker = (*SurveyPrompter)(nil)
)

// NewSurveyPrompter creates a SurveyPrompter reading from the terminal.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{ask: survey.AskOne}
}

// PromptForValue asks for the value of one variable. Ctrl-C dismisses the
// prompt and reports ok=false. An empty answer is a valid value.
func (p *SurveyPrompter) PromptForValue(ctx context.Context, identifier string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var value string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Define template variable %q:", identifier),
		Help:    fmt.Sprintf("What is %q equal to?", identifier),
	}
	if err := p.ask(prompt, &value); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// PickTemplate asks the user to choose one of templates.
func (p *SurveyPrompter) PickTemplate(ctx context.Context, templates []app.TemplateDescriptor) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	options := make([]string, len(templates))
	sources := make(map[string]string, len(templates))
	for i, t := range templates {
		options[i] = t.Name
		sources[t.Name] = t.Source
	}

	var choice string
	prompt := &survey.Select{
		Message: "Choose from available file templates:",
		Help:    "Select a file template to render",
		Options: options,
		Description: func(value string, index int) string {
			return sources[value]
		},
	}
	if err := p.ask(prompt, &choice); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", false, nil
		}
		return "", false, err
	}
	return choice, true, nil
}
