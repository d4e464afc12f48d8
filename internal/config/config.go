package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and database location configuration.
type Paths struct {
	// LibraryDB is the song catalog SQLite database (consumed, not owned).
	LibraryDB string `toml:"library_db"`
	// LibraryDir is the root of the existing audio library.
	LibraryDir string `toml:"library_dir"`
	// DownloadsDir holds freshly downloaded tracks awaiting deduplication.
	DownloadsDir string `toml:"downloads_dir"`
	// UploadDir receives unique tracks, one subdirectory per artist.
	UploadDir string `toml:"upload_dir"`
	// ReportDir receives CSV mappings and JSON run reports.
	ReportDir string `toml:"report_dir"`
	// LogDir receives log files and the dedupe lock file.
	LogDir string `toml:"log_dir"`
}

// Matching contains the scoring weights and classification thresholds.
type Matching struct {
	NameThreshold        float64 `toml:"name_threshold"`
	DurationTolerance    float64 `toml:"duration_tolerance"`
	FingerprintThreshold float64 `toml:"fingerprint_threshold"`
	FingerprintGate      float64 `toml:"fingerprint_gate"`
	MatchThreshold       float64 `toml:"match_threshold"`
	ReviewThreshold      float64 `toml:"review_threshold"`
	TopCandidates        int     `toml:"top_candidates"`
	// Workers bounds the classification worker pool. 1 disables parallelism.
	Workers int `toml:"workers"`

	TitleWeight       float64 `toml:"title_weight"`
	ArtistWeight      float64 `toml:"artist_weight"`
	DurationWeight    float64 `toml:"duration_weight"`
	FingerprintWeight float64 `toml:"fingerprint_weight"`
}

// Lyrics contains configuration for the lyrics-to-song matching workflow.
type Lyrics struct {
	// Sources maps a source name to the directory of *.txt lyrics files.
	Sources map[string]string `toml:"sources"`
	// MappingCSV is the output mapping file path.
	MappingCSV string `toml:"mapping_csv"`
	// MatchThreshold and ReviewThreshold replace the duration-aware defaults:
	// lyrics queries only carry title and artist signals.
	MatchThreshold  float64 `toml:"match_threshold"`
	ReviewThreshold float64 `toml:"review_threshold"`
}

// Tools contains external binary names and invocation timeouts.
type Tools struct {
	FFprobe            string `toml:"ffprobe"`
	Fpcalc             string `toml:"fpcalc"`
	FFprobeTimeoutSecs int    `toml:"ffprobe_timeout"`
	FpcalcTimeoutSecs  int    `toml:"fpcalc_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for refrain.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Lyrics   Lyrics   `toml:"lyrics"`
	Tools    Tools    `toml:"tools"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/refrain/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("refrain.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into. Read-side
// paths (library, downloads) are left alone so a misconfiguration surfaces
// as a validation error instead of an empty directory.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.UploadDir, c.Paths.ReportDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFprobeTimeout returns the duration probe timeout.
func (c *Config) FFprobeTimeout() time.Duration {
	return time.Duration(c.Tools.FFprobeTimeoutSecs) * time.Second
}

// FpcalcTimeout returns the fingerprint extraction timeout.
func (c *Config) FpcalcTimeout() time.Duration {
	return time.Duration(c.Tools.FpcalcTimeoutSecs) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
