// Package config loads, validates and normalizes the TOML configuration for
// the refrain CLI.
//
// Configuration sections by subsystem:
//   - Paths: library database, media directories and log directory
//   - Matching: scoring weights, thresholds and worker count
//   - Lyrics: lyrics source directories and the lyrics-specific thresholds
//   - Tools: external binary names and timeouts (ffprobe, fpcalc)
//   - Logging: log format and level
package config
