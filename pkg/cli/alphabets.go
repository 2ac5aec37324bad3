package cli

import (
	"fmt"

	"github.com/getmockd/tempoid/pkg/alphabet"
	"github.com/getmockd/tempoid/pkg/cli/internal/output"
	"github.com/getmockd/tempoid/pkg/tempoid"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// alphabetInfo describes a catalog alphabet.
type alphabetInfo struct {
	Name          string `json:"name"`
	Size          int    `json:"size"`
	MaxTimeLength int    `json:"maxTimeLength"`
	Sortable      bool   `json:"sortable"`
	Characters    string `json:"characters"`
}

func catalogInfo() []alphabetInfo {
	names := alphabet.Names()
	infos := make([]alphabetInfo, 0, len(names))
	for _, name := range names {
		a, _ := alphabet.Lookup(name)
		size := alphabet.Size(a)
		infos = append(infos, alphabetInfo{
			Name:          name,
			Size:          size,
			MaxTimeLength: tempoid.MaxTimeLength(size),
			Sortable:      alphabet.Ascending(a),
			Characters:    a,
		})
	}
	return infos
}

var alphabetsCmd = &cobra.Command{
	Use:   "alphabets",
	Short: "List the built-in alphabets",
	Long: `Alphabets lists the catalog alphabets that --alphabet accepts by name.

Sortable alphabets have their characters in ascending byte order, so
identifiers of equal length sort by time as plain strings. The others still
carry the time, but it has to be decoded to compare.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := catalogInfo()
		if cfg.JSON {
			return output.JSON(cmd.OutOrStdout(), infos)
		}

		out := cmd.OutOrStdout()
		title := cases.Title(language.English)
		for _, group := range []struct {
			name     string
			sortable bool
		}{{"sortable", true}, {"unordered", false}} {
			fmt.Fprintf(out, "%s:\n", title.String(group.name))
			tw := output.Table(out)
			for _, info := range infos {
				if info.Sortable != group.sortable {
					continue
				}
				fmt.Fprintf(tw, "  %s\t%d chars\tmax time length %d\t%s\n", info.Name, info.Size, info.MaxTimeLength, info.Characters)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alphabetsCmd)
}
