// Package cliconfig provides configuration types and loading for the tempoid CLI.
package cliconfig

// CLIConfig is the complete configuration for the tempoid CLI.
// Values are layered with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Explicit config file (--config or TEMPOID_CONFIG)
// 4. Local config file (.tempoidrc.yaml in the current directory)
// 5. Global config file (<user config dir>/tempoid/config.yaml)
// 6. Default values (lowest priority)
type CLIConfig struct {
	// Identifier shape
	TimeLength   int    `yaml:"timeLength" json:"timeLength"`
	RandomLength int    `yaml:"randomLength" json:"randomLength"`
	Alphabet     string `yaml:"alphabet" json:"alphabet"`
	PadLeft      bool   `yaml:"padLeft" json:"padLeft"`
	StartTime    string `yaml:"startTime,omitempty" json:"startTime,omitempty"`

	// Output settings
	Count int  `yaml:"count" json:"count"`
	JSON  bool `yaml:"json" json:"json"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// ConfigFile is an explicit config file to load after the local one.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were present in a loaded file, so explicit
	// zero and false values can override lower layers.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Keys lists the configuration keys in display order.
var Keys = []string{
	"timeLength",
	"randomLength",
	"alphabet",
	"padLeft",
	"startTime",
	"count",
	"json",
	"logLevel",
	"logFormat",
}

// Value returns the value stored under key, or nil for unknown keys.
func (c *CLIConfig) Value(key string) any {
	switch key {
	case "timeLength":
		return c.TimeLength
	case "randomLength":
		return c.RandomLength
	case "alphabet":
		return c.Alphabet
	case "padLeft":
		return c.PadLeft
	case "startTime":
		return c.StartTime
	case "count":
		return c.Count
	case "json":
		return c.JSON
	case "logLevel":
		return c.LogLevel
	case "logFormat":
		return c.LogFormat
	default:
		return nil
	}
}
