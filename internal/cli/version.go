package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skshetry/uv/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
