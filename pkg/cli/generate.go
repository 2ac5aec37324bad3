package cli

import (
	"bufio"
	"fmt"

	"github.com/getmockd/tempoid/pkg/alphabet"
	"github.com/getmockd/tempoid/pkg/cli/internal/output"
	"github.com/getmockd/tempoid/pkg/cliconfig"
	"github.com/getmockd/tempoid/pkg/tempoid"
	"github.com/spf13/cobra"
)

var (
	generateShape shapeFlags
	generateCount int
	generateTime  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate time-sortable identifiers",
	Long: `Generate prints identifiers, one per line, or a JSON array with --json.

The time segment holds the current time in milliseconds, or the instant given
by --time. With --start-time the epoch moves to that instant. Timestamps that
do not fit in the time segment wrap around.`,
	Example: `  tempoid generate
  tempoid generate -n 10 --alphabet hex
  tempoid generate --time 0 --time-length 4 --random-length 0 --alphabet numbers`,
	Aliases: []string{"gen"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		generateShape.apply(cmd, cfg)
		if cmd.Flags().Changed("count") {
			cfg.Count = generateCount
			cfg.Sources["count"] = cliconfig.SourceFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		genCfg, err := cfg.GenerationConfig()
		if err != nil {
			return err
		}
		if generateTime != "" {
			at, err := cliconfig.ParseTimestamp(generateTime)
			if err != nil {
				return fmt.Errorf("--time: %w", err)
			}
			genCfg.Time = at
		}

		gen := tempoid.New(tempoid.WithLogger(logger))
		ids := make([]tempoid.ID, 0, cfg.Count)
		for range cfg.Count {
			id, err := gen.GenerateCustom(genCfg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		logger.Debug("generated identifiers", "count", len(ids), "length", genCfg.Len())
		if unsortedBatch(genCfg, len(ids)) {
			output.Warn(cmd.ErrOrStderr(), "alphabet is not in ascending order; these identifiers sort by decoded time, not as plain strings")
		}

		if cfg.JSON {
			return output.JSON(cmd.OutOrStdout(), ids)
		}
		w := bufio.NewWriter(cmd.OutOrStdout())
		for _, id := range ids {
			fmt.Fprintln(w, id)
		}
		return w.Flush()
	},
}

// unsortedBatch reports whether several identifiers with a time segment were
// written in an alphabet whose encodings do not sort as strings.
func unsortedBatch(c tempoid.Config, count int) bool {
	return count > 1 && c.TimeLength > 0 && !alphabet.Ascending(c.Alphabet)
}

func init() {
	generateShape.register(generateCmd)
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", cliconfig.DefaultCount, "Number of identifiers to generate")
	generateCmd.Flags().StringVar(&generateTime, "time", "", "Fixed timestamp as Unix milliseconds or RFC 3339 (default: now)")
	rootCmd.AddCommand(generateCmd)
}
