package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/getmockd/tempoid/pkg/cli/internal/output"
	"github.com/getmockd/tempoid/pkg/tempoid"
	"github.com/spf13/cobra"
)

var inspectShape shapeFlags

// inspection describes one identifier checked against a configuration.
type inspection struct {
	ID         string     `json:"id"`
	TimePart   string     `json:"timePart,omitempty"`
	RandomPart string     `json:"randomPart"`
	Time       *time.Time `json:"time,omitempty"`
	Length     int        `json:"length"`
	Valid      bool       `json:"valid"`
	Problem    string     `json:"problem,omitempty"`
}

// inspectID splits s according to c and decodes its time segment. Unpadded
// identifiers are split by taking the random segment from the end.
func inspectID(s string, c tempoid.Config) inspection {
	n := utf8.RuneCountInString(s)
	res := inspection{ID: s, Length: n}

	if bad := strings.IndexFunc(s, func(r rune) bool { return !strings.ContainsRune(c.Alphabet, r) }); bad >= 0 {
		r, _ := utf8.DecodeRuneInString(s[bad:])
		res.Problem = fmt.Sprintf("character %q is not in the alphabet", r)
		return res
	}

	switch {
	case c.PadLeft && n != c.Len():
		res.Problem = fmt.Sprintf("length %d, expected %d", n, c.Len())
		return res
	case !c.PadLeft && (n < c.RandomLength || n > c.Len()):
		res.Problem = fmt.Sprintf("length %d, expected %d to %d", n, c.RandomLength, c.Len())
		return res
	}

	split := c
	split.TimeLength = n - c.RandomLength
	id := tempoid.Parse(s)
	res.TimePart, res.RandomPart = id.Segments(split)
	if split.TimeLength > 0 {
		at, err := id.Time(split)
		if err != nil {
			res.Problem = err.Error()
			return res
		}
		res.Time = &at
	}
	res.Valid = true
	return res
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <id>...",
	Short: "Split identifiers into segments and decode their time",
	Long: `Inspect checks identifiers against the configured shape, prints their time
and random segments, and decodes the time segment back to a UTC timestamp.

Decoded times are only meaningful when the identifier was generated with the
same alphabet, lengths and start time, and its time segment did not wrap.
Put -- before identifiers that start with a dash.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inspectShape.apply(cmd, cfg)
		genCfg, err := cfg.GenerationConfig()
		if err != nil {
			return err
		}

		results := make([]inspection, 0, len(args))
		invalid := 0
		for _, arg := range args {
			res := inspectID(arg, genCfg)
			if !res.Valid {
				invalid++
				logger.Debug("identifier rejected", "id", arg, "problem", res.Problem)
			}
			results = append(results, res)
		}

		if cfg.JSON {
			if err := output.JSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
		} else {
			tw := output.Table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tTIME\tTIME SEGMENT\tRANDOM SEGMENT\tSTATUS")
			for _, res := range results {
				at := "-"
				if res.Time != nil {
					at = res.Time.Format(time.RFC3339Nano)
				}
				status := "ok"
				if !res.Valid {
					status = res.Problem
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", res.ID, at, dash(res.TimePart), dash(res.RandomPart), status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}

		if invalid > 0 {
			return fmt.Errorf("%w: %d of %d", ErrInvalidIDs, invalid, len(args))
		}
		return nil
	},
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	inspectShape.register(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}
