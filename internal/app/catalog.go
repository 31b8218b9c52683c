package app

import (
	"context"
	"encoding/json"

	"github.com/tacogips/tplctl/internal/debug"
	"github.com/tacogips/tplctl/internal/runner"
)

// TemplateDescriptor identifies a template known to devinit.
type TemplateDescriptor struct {
	// Name is the template name passed back to devinit.
	Name string `json:"name"`
	// Source is where devinit found the template.
	Source string `json:"source"`
}

// Catalog is the parsed output of `devinit --parsable list`.
type Catalog struct {
	// File contains the file templates.
	File []TemplateDescriptor `json:"file"`
	// Project contains the project templates.
	Project []TemplateDescriptor `json:"project"`
}

// ListCatalog runs `devinit list` and parses both template collections.
func ListCatalog(ctx context.Context, state *runner.State, invoker runner.Invoker) (*Catalog, error) {
	debug.DebugSection("[app] ListCatalog")

	spec := state.NewSpec().WithSubcommand(runner.SubcommandList)
	outcome, err := runner.Run(ctx, invoker, spec)
	if err != nil {
		debug.Debug("[app] Template listing failed: %v", err)
		return nil, err
	}

	catalog, err := ParseCatalog(outcome.Stdout)
	if err != nil {
		return nil, err
	}
	debug.Debug("[app] Found %d file and %d project templates", len(catalog.File), len(catalog.Project))
	return catalog, nil
}

// ListTemplates returns the file templates known to devinit.
func ListTemplates(ctx context.Context, state *runner.State, invoker runner.Invoker) ([]TemplateDescriptor, error) {
	catalog, err := ListCatalog(ctx, state, invoker)
	if err != nil {
		return nil, err
	}
	return catalog.File, nil
}

// ListProjectTemplates returns the project templates known to devinit.
func ListProjectTemplates(ctx context.Context, state *runner.State, invoker runner.Invoker) ([]TemplateDescriptor, error) {
	catalog, err := ListCatalog(ctx, state, invoker)
	if err != nil {
		return nil, err
	}
	return catalog.Project, nil
}

// ParseCatalog decodes list output. Missing collections decode as empty.
func ParseCatalog(stdout string) (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal([]byte(stdout), &catalog); err != nil {
		return nil, runner.NewMalformedOutputError("a template catalog", err)
	}
	if catalog.File == nil {
		catalog.File = []TemplateDescriptor{}
	}
	if catalog.Project == nil {
		catalog.Project = []TemplateDescriptor{}
	}
	return &catalog, nil
}

// ParseVariableList decodes list-vars output: a JSON array of identifiers.
func ParseVariableList(stdout string) ([]string, error) {
	var identifiers []string
	if err := json.Unmarshal([]byte(stdout), &identifiers); err != nil {
		return nil, runner.NewMalformedOutputError("a JSON array of variable names", err)
	}
	if identifiers == nil {
		// "null" is not a list.
		return nil, runner.NewMalformedOutputError("a JSON array of variable names", nil)
	}
	return identifiers, nil
}
