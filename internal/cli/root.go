package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tacogips/tplctl/internal/app"
	"github.com/tacogips/tplctl/internal/config"
	"github.com/tacogips/tplctl/internal/debug"
)

// Global flags
var (
	globalSettings      string
	globalDevinit       string
	globalDevinitConfig string
	globalNoColor       bool
	globalQuiet         bool
	globalDebug         bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tplctl",
	Short: "Render devinit templates from the command line",
	Long: `tplctl drives the devinit template tool.

It lists the templates devinit knows about, asks for any template variables
that are still unspecified, and has devinit render the result.

Stored default variables and filename associations are read from
~/.config/tplctl/settings.json (JSONC or YAML).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)

		// Environment overrides may live in a .env next to the project.
		return config.LoadDotEnv(".env")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if app.IsCancelled(err) {
			return
		}
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&globalSettings, FlagSettings, "", DescSettings)
	rootCmd.PersistentFlags().StringVar(&globalDevinit, FlagDevinit, "", DescDevinit)
	rootCmd.PersistentFlags().StringVar(&globalDevinitConfig, FlagDevinitConfig, "", DescDevinitConfig)
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	if _, ok := err.(*renderFailure); ok {
		printErrorMsg(err.Error())
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
}

// renderFailure reports a failed render or preview of a named template.
type renderFailure struct {
	template string
	err      error
}

func (e *renderFailure) Error() string {
	return fmt.Sprintf("Failed to render template %q: %v", e.template, e.err)
}

func (e *renderFailure) Unwrap() error {
	return e.err
}

// wrapRenderError attaches the template name to err. Cancellation passes
// through untouched so Execute can stay silent about it.
func wrapRenderError(template string, err error) error {
	if err == nil || app.IsCancelled(err) {
		return err
	}
	return &renderFailure{template: template, err: err}
}
