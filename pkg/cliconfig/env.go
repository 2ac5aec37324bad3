package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvTimeLength   = "TEMPOID_TIME_LENGTH"
	EnvRandomLength = "TEMPOID_RANDOM_LENGTH"
	EnvAlphabet     = "TEMPOID_ALPHABET"
	EnvPadLeft      = "TEMPOID_PAD_LEFT"
	EnvStartTime    = "TEMPOID_START_TIME"
	EnvCount        = "TEMPOID_COUNT"
	EnvJSON         = "TEMPOID_JSON"
	EnvLogLevel     = "TEMPOID_LOG_LEVEL"
	EnvLogFormat    = "TEMPOID_LOG_FORMAT"
	EnvConfig       = "TEMPOID_CONFIG"
)

// LoadEnvConfig applies environment variables to cfg. Only variables that are
// present and parse are applied.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v, ok := envInt(EnvTimeLength); ok {
		cfg.TimeLength = v
		cfg.Sources["timeLength"] = SourceEnv
	}
	if v, ok := envInt(EnvRandomLength); ok {
		cfg.RandomLength = v
		cfg.Sources["randomLength"] = SourceEnv
	}
	if v := os.Getenv(EnvAlphabet); v != "" {
		cfg.Alphabet = v
		cfg.Sources["alphabet"] = SourceEnv
	}
	if v, ok := envBool(EnvPadLeft); ok {
		cfg.PadLeft = v
		cfg.Sources["padLeft"] = SourceEnv
	}
	if v := os.Getenv(EnvStartTime); v != "" {
		cfg.StartTime = v
		cfg.Sources["startTime"] = SourceEnv
	}
	if v, ok := envInt(EnvCount); ok {
		cfg.Count = v
		cfg.Sources["count"] = SourceEnv
	}
	if v, ok := envBool(EnvJSON); ok {
		cfg.JSON = v
		cfg.Sources["json"] = SourceEnv
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}
	if v := os.Getenv(EnvConfig); v != "" {
		cfg.ConfigFile = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string) (bool, bool) {
	switch os.Getenv(name) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}
