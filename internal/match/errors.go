package match

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks a query or reference record that could not be read or
	// parsed. The record is skipped and tallied; the batch continues.
	ErrInput = errors.New("input error")
	// ErrExternalTool marks a failed or timed-out extraction subprocess.
	// The affected signal is treated as absent.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks an unusable engine or workflow configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrFatal marks a catastrophic condition that aborts the whole run,
	// such as an entirely unreadable reference collection.
	ErrFatal = errors.New("fatal")
)

// Wrap tags an error with one of the sentinel markers above while preserving
// component and operation context for the log line.
func Wrap(marker error, component, operation string, err error) error {
	if marker == nil {
		marker = ErrFatal
	}
	detail := buildDetail(component, operation)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation string) string {
	parts := make([]string, 0, 2)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "engine failure"
	}
	return strings.Join(parts, ": ")
}
