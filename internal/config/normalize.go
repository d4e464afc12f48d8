package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// normalize expands paths and backfills zero values with defaults so the rest
// of the program never sees an empty field where one has a sensible default.
func (c *Config) normalize() error {
	defaults := Default()

	pathFields := []struct {
		name  string
		value *string
	}{
		{"library_db", &c.Paths.LibraryDB},
		{"library_dir", &c.Paths.LibraryDir},
		{"downloads_dir", &c.Paths.DownloadsDir},
		{"upload_dir", &c.Paths.UploadDir},
		{"report_dir", &c.Paths.ReportDir},
		{"log_dir", &c.Paths.LogDir},
	}
	for _, field := range pathFields {
		trimmed := strings.TrimSpace(*field.value)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("normalize %s: %w", field.name, err)
		}
		*field.value = expanded
	}

	for source, dir := range c.Lyrics.Sources {
		expanded, err := expandPath(strings.TrimSpace(dir))
		if err != nil {
			return fmt.Errorf("normalize lyrics source %q: %w", source, err)
		}
		c.Lyrics.Sources[source] = expanded
	}

	if strings.TrimSpace(c.Lyrics.MappingCSV) == "" {
		c.Lyrics.MappingCSV = defaults.Lyrics.MappingCSV
	}
	if !filepath.IsAbs(c.Lyrics.MappingCSV) && c.Paths.ReportDir != "" {
		c.Lyrics.MappingCSV = filepath.Join(c.Paths.ReportDir, c.Lyrics.MappingCSV)
	}

	if c.Matching.Workers <= 0 {
		c.Matching.Workers = defaults.Matching.Workers
	}
	if c.Matching.TopCandidates <= 0 {
		c.Matching.TopCandidates = defaults.Matching.TopCandidates
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = defaults.Tools.FFprobe
	}
	if strings.TrimSpace(c.Tools.Fpcalc) == "" {
		c.Tools.Fpcalc = defaults.Tools.Fpcalc
	}
	if c.Tools.FFprobeTimeoutSecs <= 0 {
		c.Tools.FFprobeTimeoutSecs = defaults.Tools.FFprobeTimeoutSecs
	}
	if c.Tools.FpcalcTimeoutSecs <= 0 {
		c.Tools.FpcalcTimeoutSecs = defaults.Tools.FpcalcTimeoutSecs
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	return nil
}
