// Package logging wires log/slog with the console and JSON handlers the CLI
// uses, plus the standardized attribute keys shared across components.
package logging
