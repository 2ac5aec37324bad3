// Package logging builds the slog loggers used across tempoid.
//
// Library packages never log on their own initiative to a global logger.
// They accept a *slog.Logger through an option and fall back to Nop():
//
//	pool := entropy.NewPool(entropy.WithLogger(logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})))
//
// The CLI constructs its logger from the --log-level and --log-format flags
// (or TEMPOID_LOG_LEVEL / TEMPOID_LOG_FORMAT) and writes to stderr so stdout
// stays reserved for identifiers.
package logging
