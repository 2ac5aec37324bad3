package cli

import (
	"github.com/getmockd/tempoid/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// shapeFlags are the identifier shape flags shared by generate, inspect and bench.
type shapeFlags struct {
	timeLength   int
	randomLength int
	alphabet     string
	startTime    string
	padLeft      bool
}

func (f *shapeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.timeLength, "time-length", cliconfig.NewDefault().TimeLength, "Characters in the time segment (0 disables it)")
	fs.IntVar(&f.randomLength, "random-length", cliconfig.NewDefault().RandomLength, "Characters in the random segment")
	fs.StringVarP(&f.alphabet, "alphabet", "a", cliconfig.DefaultAlphabet, "Catalog alphabet name or a literal set of characters")
	fs.StringVar(&f.startTime, "start-time", "", "Custom epoch as Unix milliseconds or RFC 3339")
	fs.BoolVar(&f.padLeft, "pad-left", true, "Left-pad the time segment to its full length")
}

// apply copies explicitly set flags into c.
func (f *shapeFlags) apply(cmd *cobra.Command, c *cliconfig.CLIConfig) {
	fs := cmd.Flags()
	if fs.Changed("time-length") {
		c.TimeLength = f.timeLength
		c.Sources["timeLength"] = cliconfig.SourceFlag
	}
	if fs.Changed("random-length") {
		c.RandomLength = f.randomLength
		c.Sources["randomLength"] = cliconfig.SourceFlag
	}
	if fs.Changed("alphabet") {
		c.Alphabet = f.alphabet
		c.Sources["alphabet"] = cliconfig.SourceFlag
	}
	if fs.Changed("start-time") {
		c.StartTime = f.startTime
		c.Sources["startTime"] = cliconfig.SourceFlag
	}
	if fs.Changed("pad-left") {
		c.PadLeft = f.padLeft
		c.Sources["padLeft"] = cliconfig.SourceFlag
	}
}
