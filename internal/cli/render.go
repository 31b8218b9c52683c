package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tplctl/internal/app"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [template] <output>",
	Short: "Render a file template",
	Long: `Render a devinit file template into a file.

Without a template name, the first filename association in the settings that
matches <output> is used; failing that you are asked to choose one.

Variables come from the stored defaults for the template, then from -D flags.
Anything devinit still reports as unspecified is asked for interactively.
Press Ctrl-C at any prompt to abandon the render.

Examples:
  tplctl render python src/main.py
  tplctl render src/main.py
  tplctl render license LICENSE -D author="Jane Doe" -D year=2024
  tplctl render license LICENSE --assert-empty`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

// Render command flags
var (
	renderDefines      []string
	renderSkipDefaults bool
	renderAssertEmpty  bool
)

func init() {
	renderCmd.Flags().StringArrayVarP(&renderDefines, FlagDefine, "D", nil, DescDefine)
	renderCmd.Flags().BoolVar(&renderSkipDefaults, FlagSkipDefaults, false, DescSkipDefaults)
	renderCmd.Flags().BoolVar(&renderAssertEmpty, FlagAssertEmpty, false, DescAssertEmpty)
}

func runRender(cmd *cobra.Command, args []string) error {
	var templateName, outputPath string
	if len(args) == 2 {
		templateName, outputPath = args[0], args[1]
	} else {
		outputPath = args[0]
	}

	explicit, err := parseDefines(renderDefines)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	stop := s.watchSettings()
	defer stop()

	prompter := NewSurveyPrompter()
	templateName, err = app.SelectTemplate(cmd.Context(), s.state, s.invoker, app.SelectOptions{
		TemplateName: templateName,
		OutputPath:   outputPath,
		Associations: s.provider.Associations(),
		Picker:       prompter,
	})
	if err != nil {
		return err
	}

	resolver := app.NewResolver(s.state, s.invoker, prompter)
	result, err := resolver.ResolveAndRender(cmd.Context(), app.RenderOptions{
		TemplateName:   templateName,
		OutputPath:     outputPath,
		StoredDefaults: s.provider.DefaultVariables(templateName),
		Explicit:       explicit,
		SkipDefaults:   renderSkipDefaults,
		AssertEmpty:    renderAssertEmpty,
	})
	if err != nil {
		return wrapRenderError(templateName, err)
	}

	printSuccess(fmt.Sprintf("Rendered %q to %s", templateName, result.Spec.OutputPath))
	return nil
}
