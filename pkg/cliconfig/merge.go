package cliconfig

// MergeConfig merges source into target and records sourceType for every
// applied value. Strings and positive counts merge when non-empty; keys whose
// zero value is meaningful (timeLength, randomLength, padLeft, json) merge
// only when present in source.SetFields.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if isSet(source, "timeLength") {
		target.TimeLength = source.TimeLength
		target.Sources["timeLength"] = sourceType
	}
	if isSet(source, "randomLength") {
		target.RandomLength = source.RandomLength
		target.Sources["randomLength"] = sourceType
	}
	if source.Alphabet != "" {
		target.Alphabet = source.Alphabet
		target.Sources["alphabet"] = sourceType
	}
	if isSet(source, "padLeft") {
		target.PadLeft = source.PadLeft
		target.Sources["padLeft"] = sourceType
	}
	if source.StartTime != "" {
		target.StartTime = source.StartTime
		target.Sources["startTime"] = sourceType
	}
	if source.Count != 0 {
		target.Count = source.Count
		target.Sources["count"] = sourceType
	}
	if isSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
}

// isSet reports whether key was explicitly present in cfg. Programmatic
// configs without SetFields fall back to treating non-zero values as set.
func isSet(cfg *CLIConfig, key string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[key]
	}
	switch key {
	case "timeLength":
		return cfg.TimeLength != 0
	case "randomLength":
		return cfg.RandomLength != 0
	case "padLeft":
		return cfg.PadLeft
	case "json":
		return cfg.JSON
	}
	return false
}
