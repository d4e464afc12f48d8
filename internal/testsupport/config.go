// Package testsupport holds shared helpers for package tests: temp-dir
// configs, seeded library databases and on-disk media fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"refrain/internal/config"
)

// NewConfig produces a config rooted in unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDB = filepath.Join(base, "library.db")
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.DownloadsDir = filepath.Join(base, "downloads")
	cfg.Paths.UploadDir = filepath.Join(base, "upload")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Lyrics.MappingCSV = filepath.Join(base, "reports", "lyrics_mapping.csv")
	return &cfg
}
