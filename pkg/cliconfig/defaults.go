package cliconfig

import (
	"github.com/getmockd/tempoid/pkg/tempoid"
)

// DefaultAlphabet is the catalog name of the default alphabet.
const DefaultAlphabet = "alphanumeric"

// DefaultCount is how many identifiers generate prints.
const DefaultCount = 1

// DefaultLogLevel keeps the CLI quiet unless something fails.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log output format.
const DefaultLogFormat = "text"

// NewDefault creates a CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		TimeLength:   tempoid.DefaultTimeLength,
		RandomLength: tempoid.DefaultRandomLength,
		Alphabet:     DefaultAlphabet,
		PadLeft:      true,
		Count:        DefaultCount,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Sources:      make(map[string]string),
	}
	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}
	delete(cfg.Sources, "startTime")
	return cfg
}
