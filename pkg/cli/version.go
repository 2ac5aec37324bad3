package cli

import (
	"fmt"
	"runtime"

	"github.com/getmockd/tempoid/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tempoid version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JSON {
			return output.JSON(cmd.OutOrStdout(), map[string]string{
				"version":   Version,
				"commit":    Commit,
				"buildDate": BuildDate,
				"goVersion": runtime.Version(),
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tempoid %s (commit %s, built %s, %s)\n", Version, Commit, BuildDate, runtime.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
