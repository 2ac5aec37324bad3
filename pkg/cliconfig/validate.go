package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/tempoid/pkg/alphabet"
	"github.com/getmockd/tempoid/pkg/tempoid"
)

// MaxCount bounds how many identifiers a single generate call prints.
const MaxCount = 1_000_000

// ErrInvalidTimestamp is returned when a timestamp is neither milliseconds
// nor RFC 3339.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Validate checks the configuration for errors.
func (c *CLIConfig) Validate() error {
	if c.Count < 1 || c.Count > MaxCount {
		return fmt.Errorf("count %d is out of range (1-%d)", c.Count, MaxCount)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	if _, err := c.GenerationConfig(); err != nil {
		return err
	}
	return nil
}

// GenerationConfig converts the CLI settings into a tempoid.Config. Catalog
// alphabet names are resolved; anything else is used as a literal alphabet.
func (c *CLIConfig) GenerationConfig() (tempoid.Config, error) {
	cfg := tempoid.Config{
		TimeLength:   c.TimeLength,
		RandomLength: c.RandomLength,
		PadLeft:      c.PadLeft,
		Alphabet:     alphabet.Resolve(c.Alphabet),
	}
	if c.StartTime != "" {
		start, err := ParseTimestamp(c.StartTime)
		if err != nil {
			return tempoid.Config{}, fmt.Errorf("startTime: %w", err)
		}
		cfg.StartTime = start
	}
	if err := cfg.Validate(); err != nil {
		return tempoid.Config{}, err
	}
	return cfg, nil
}

// ParseTimestamp parses s as Unix milliseconds or an RFC 3339 time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: want Unix milliseconds or RFC 3339", ErrInvalidTimestamp, s)
	}
	return t, nil
}
