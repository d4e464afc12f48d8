package match

import "context"

// DurationProvider extracts the playback duration of a file in seconds.
// Implementations must honor the context deadline; on failure the engine
// treats the duration as unknown.
type DurationProvider interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FingerprintProvider extracts a content fingerprint as an ordered sequence
// of 32-bit integers. On failure the engine skips the fingerprint signal.
type FingerprintProvider interface {
	Fingerprint(ctx context.Context, path string) ([]uint32, error)
}
