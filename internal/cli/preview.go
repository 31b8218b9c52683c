package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tplctl/internal/app"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [template]",
	Short: "Print a rendered file template without writing it",
	Long: `Resolve template variables like "render" and print what devinit would
write, without touching any file.

Examples:
  tplctl preview license
  tplctl preview license -D author="Jane Doe" | less`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

// Preview command flags
var (
	previewDefines      []string
	previewSkipDefaults bool
)

func init() {
	previewCmd.Flags().StringArrayVarP(&previewDefines, FlagDefine, "D", nil, DescDefine)
	previewCmd.Flags().BoolVar(&previewSkipDefaults, FlagSkipDefaults, false, DescSkipDefaults)
}

func runPreview(cmd *cobra.Command, args []string) error {
	var templateName string
	if len(args) == 1 {
		templateName = args[0]
	}

	explicit, err := parseDefines(previewDefines)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	prompter := NewSurveyPrompter()
	templateName, err = app.SelectTemplate(cmd.Context(), s.state, s.invoker, app.SelectOptions{
		TemplateName: templateName,
		Picker:       prompter,
	})
	if err != nil {
		return err
	}

	resolver := app.NewResolver(s.state, s.invoker, prompter)
	result, err := resolver.Preview(cmd.Context(), app.RenderOptions{
		TemplateName:   templateName,
		StoredDefaults: s.provider.DefaultVariables(templateName),
		Explicit:       explicit,
		SkipDefaults:   previewSkipDefaults,
	})
	if err != nil {
		return wrapRenderError(templateName, err)
	}

	fmt.Fprint(stdout, result.Outcome.Stdout)
	return nil
}
