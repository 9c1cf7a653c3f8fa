// Package cli wires the uv command tree. Each command lives in its own file
// and registers itself with the root command in an init function.
package cli

import (
	goerrors "errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skshetry/uv/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "uv",
	Short: "An extremely fast Python package manager",
	Long: `uv manages Python projects: it initializes packages, registers them
with an enclosing workspace, and pins the interpreter version they run under.`,
	Example: `  uv init            # Initialize a project in the current directory
  uv init path/to/foo  # Initialize a project at the given path
  uv init --name bar   # Initialize with an explicit package name`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a project config file (default .uv/config.yml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command and renders any failure as a structured
// error on stderr. The process exit status is decided by the caller.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		renderError(err)
		return err
	}
	return nil
}

func renderError(err error) {
	var cliErr *errors.CLIError
	if !goerrors.As(err, &cliErr) {
		cliErr = errors.Wrap(err, errors.Runtime)
	}
	errors.FprintError(os.Stderr, cliErr)
}
