package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tplctl/internal/app"
)

// varsCmd represents the vars command
var varsCmd = &cobra.Command{
	Use:   "vars <template>",
	Short: "List the variables a template still needs",
	Long: `Print the variables of a file template that are not covered by the
stored defaults or -D flags, in the order devinit reports them.

Examples:
  tplctl vars license
  tplctl vars license -D year=2024 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runVars,
}

// Vars command flags
var (
	varsDefines      []string
	varsSkipDefaults bool
	varsJSON         bool
)

func init() {
	varsCmd.Flags().StringArrayVarP(&varsDefines, FlagDefine, "D", nil, DescDefine)
	varsCmd.Flags().BoolVar(&varsSkipDefaults, FlagSkipDefaults, false, DescSkipDefaults)
	varsCmd.Flags().BoolVar(&varsJSON, FlagJSON, false, DescJSON)
}

func runVars(cmd *cobra.Command, args []string) error {
	templateName := args[0]

	explicit, err := parseDefines(varsDefines)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	known := app.KnownVariables(s.provider.DefaultVariables(templateName), explicit, varsSkipDefaults)
	resolver := app.NewResolver(s.state, s.invoker, nil)
	remaining, err := resolver.ListRemainingVariables(cmd.Context(), templateName, known)
	if err != nil {
		return err
	}

	if varsJSON {
		data, err := json.Marshal(remaining)
		if err != nil {
			return fmt.Errorf("failed to marshal variables: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	if len(remaining) == 0 {
		printInfo(fmt.Sprintf("All variables of %q are specified.", templateName))
		return nil
	}
	for _, id := range remaining {
		fmt.Fprintln(stdout, id)
	}
	return nil
}
