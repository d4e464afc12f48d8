// Package ffprobe extracts track durations via the ffprobe binary.
//
// Only the container duration is probed; the full stream inspection the tool
// can do is not needed here. The Prober satisfies the engine's
// DurationProvider interface and honors a per-invocation timeout.
package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"refrain/internal/match"
)

// Prober runs ffprobe with a fixed timeout per file.
type Prober struct {
	// Binary is the executable name, "ffprobe" when empty.
	Binary string
	// Timeout bounds a single invocation; 0 means no extra deadline.
	Timeout time.Duration
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration returns the container duration of path in seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("ffprobe: empty path")
	}

	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		"--", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, match.Wrap(match.ErrExternalTool, "ffprobe", path, err)
	}
	return ParseDuration(output)
}

// ParseDuration decodes the duration from ffprobe's JSON output.
func ParseDuration(output []byte) (float64, error) {
	var decoded probeOutput
	if err := json.Unmarshal(output, &decoded); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}
	raw := strings.TrimSpace(decoded.Format.Duration)
	if raw == "" {
		return 0, errors.New("ffprobe parse: no duration in output")
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe parse duration %q: %w", raw, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("ffprobe parse: negative duration %v", seconds)
	}
	return seconds, nil
}
