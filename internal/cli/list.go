package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tacogips/tplctl/internal/app"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long: `List the templates devinit can render.

File templates are listed by default; use --project for project templates.

Examples:
  tplctl list
  tplctl list --project
  tplctl list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// List command flags
var (
	listProject bool
	listJSON    bool
)

func init() {
	listCmd.Flags().BoolVar(&listProject, FlagProject, false, DescProject)
	listCmd.Flags().BoolVar(&listJSON, FlagJSON, false, DescJSON)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	var templates []app.TemplateDescriptor
	kind := "file"
	if listProject {
		kind = "project"
		templates, err = app.ListProjectTemplates(cmd.Context(), s.state, s.invoker)
	} else {
		templates, err = app.ListTemplates(cmd.Context(), s.state, s.invoker)
	}
	if err != nil {
		return err
	}

	if listJSON {
		data, err := json.MarshalIndent(templates, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal templates: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	if len(templates) == 0 {
		printInfo(fmt.Sprintf("No %s templates found.", kind))
		return nil
	}
	printHeader(fmt.Sprintf("%d %s templates", len(templates), kind))
	return writeTemplateTable(stdout, templates)
}

// writeTemplateTable prints one "name  source" row per template.
func writeTemplateTable(w io.Writer, templates []app.TemplateDescriptor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range templates {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, dim(t.Source))
	}
	return tw.Flush()
}
