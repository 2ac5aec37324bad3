package cli

import (
	"fmt"

	"github.com/getmockd/tempoid/pkg/cli/internal/output"
	"github.com/getmockd/tempoid/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// configEntry is one effective setting.
type configEntry struct {
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display effective configuration",
	Long: `Config prints every setting with its effective value and the layer it came
from: default, global, local, file, env or flag.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := make([]configEntry, 0, len(cliconfig.Keys))
		for _, key := range cliconfig.Keys {
			source, ok := cfg.Sources[key]
			if !ok {
				continue
			}
			entries = append(entries, configEntry{Key: key, Value: cfg.Value(key), Source: source})
		}

		if cfg.JSON {
			return output.JSON(cmd.OutOrStdout(), struct {
				ConfigFile string        `json:"configFile,omitempty"`
				Settings   []configEntry `json:"settings"`
			}{cfg.ConfigFile, entries})
		}

		out := cmd.OutOrStdout()
		if cfg.ConfigFile != "" {
			fmt.Fprintf(out, "Config file: %s\n\n", cfg.ConfigFile)
		}
		tw := output.Table(out)
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%v\t%s\n", e.Key, e.Value, e.Source)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
