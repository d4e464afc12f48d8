// Package chromaprint extracts raw audio fingerprints via the fpcalc binary.
//
// fpcalc -raw prints a FINGERPRINT= line holding comma-separated 32-bit
// integers; that sequence is the content signature the scorer compares
// bit-by-bit. The Extractor satisfies the engine's FingerprintProvider
// interface.
package chromaprint

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"refrain/internal/match"
)

// Extractor runs fpcalc with a fixed timeout per file.
type Extractor struct {
	// Binary is the executable name, "fpcalc" when empty.
	Binary string
	// Timeout bounds a single invocation; 0 means no extra deadline.
	Timeout time.Duration
}

// Fingerprint returns the raw chromaprint signature of path.
func (e *Extractor) Fingerprint(ctx context.Context, path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("fpcalc: empty path")
	}

	binary := strings.TrimSpace(e.Binary)
	if binary == "" {
		binary = "fpcalc"
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, "-raw", path)
	output, err := cmd.Output()
	if err != nil {
		return nil, match.Wrap(match.ErrExternalTool, "fpcalc", path, err)
	}
	return ParseRawOutput(string(output))
}

// ParseRawOutput finds the FINGERPRINT= line in fpcalc output and parses it.
func ParseRawOutput(output string) ([]uint32, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(line, "FINGERPRINT="); ok {
			return ParseRaw(value)
		}
	}
	return nil, errors.New("fpcalc parse: no FINGERPRINT line in output")
}

// ParseRaw parses a comma-separated raw fingerprint. Some fpcalc builds print
// the values signed, so negative numbers are accepted and reinterpreted as
// their unsigned bit patterns.
func ParseRaw(value string) ([]uint32, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("fpcalc parse: empty fingerprint")
	}

	parts := strings.Split(value, ",")
	out := make([]uint32, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fpcalc parse value %q: %w", part, err)
		}
		if parsed < -1<<31 || parsed > 1<<32-1 {
			return nil, fmt.Errorf("fpcalc parse value %q: out of 32-bit range", part)
		}
		out = append(out, uint32(parsed))
	}
	if len(out) == 0 {
		return nil, errors.New("fpcalc parse: empty fingerprint")
	}
	return out, nil
}
