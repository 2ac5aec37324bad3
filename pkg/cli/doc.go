// Package cli provides the command-line interface for tempoid.
//
// Commands:
//   - generate: Print one or more identifiers
//   - inspect: Split identifiers into segments and decode their timestamps
//   - alphabets: List the built-in alphabets
//   - bench: Generate identifiers concurrently and report throughput
//   - config: Display effective configuration and where each value came from
//   - version: Show tempoid version
//
// Settings are layered: flags, then TEMPOID_* environment variables, then an
// explicit --config file, then .tempoidrc.yaml in the working directory, then
// the global config file, then defaults.
//
// Usage:
//
//	tempoid generate
//	tempoid generate -n 5 --alphabet hex --time-length 12
//	tempoid generate --time 2024-01-01T00:00:00Z --random-length 0
//	tempoid inspect 0jxOUSQRf3kQ9aZbXc1Lm
//	tempoid bench --workers 8 --per-worker 100000 --metrics
package cli
