package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists = true for missing file")
	}
	if path == "" {
		t.Error("resolved path must not be empty")
	}
	if cfg.Matching.MatchThreshold != 70 {
		t.Errorf("MatchThreshold = %v, want default 70", cfg.Matching.MatchThreshold)
	}
	if cfg.Tools.FFprobe != "ffprobe" {
		t.Errorf("FFprobe = %q, want default", cfg.Tools.FFprobe)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refrain.toml")
	content := `
[paths]
report_dir = "` + dir + `/reports"

[matching]
match_threshold = 80.0
review_threshold = 60.0
workers = 4

[lyrics]
mapping_csv = "mapping.csv"

[lyrics.sources]
sattarov = "` + dir + `/lyrics"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for present file")
	}
	if cfg.Matching.MatchThreshold != 80 {
		t.Errorf("MatchThreshold = %v, want 80", cfg.Matching.MatchThreshold)
	}
	if cfg.Matching.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Matching.Workers)
	}
	if got := cfg.Lyrics.Sources["sattarov"]; got != filepath.Join(dir, "lyrics") {
		t.Errorf("lyrics source = %q, want expanded path", got)
	}
	// Relative mapping CSV resolves under report_dir.
	if !strings.HasPrefix(cfg.Lyrics.MappingCSV, filepath.Join(dir, "reports")) {
		t.Errorf("MappingCSV = %q, want under report_dir", cfg.Lyrics.MappingCSV)
	}
}

func TestLoadRejectsBadThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refrain.toml")
	content := `
[matching]
match_threshold = 50.0
review_threshold = 60.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for review > match threshold")
	}
}

func TestMatchPolicyRoundTrip(t *testing.T) {
	cfg := Default()
	policy := cfg.MatchPolicy()
	if policy.Weights.Title != 40 || policy.Weights.Fingerprint != 30 {
		t.Errorf("unexpected weights: %+v", policy.Weights)
	}
	if policy.ScanAllOnMiss {
		t.Error("dedupe policy must not scan all on miss")
	}

	lyrics := cfg.LyricsPolicy()
	if !lyrics.ScanAllOnMiss {
		t.Error("lyrics policy must scan all on miss")
	}
	if lyrics.MatchThreshold != 35 {
		t.Errorf("lyrics MatchThreshold = %v, want 35", lyrics.MatchThreshold)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("Load(sample) exists=%v err=%v", exists, err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.UploadDir = filepath.Join(dir, "upload")
	cfg.Paths.ReportDir = filepath.Join(dir, "reports")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, d := range []string{cfg.Paths.UploadDir, cfg.Paths.ReportDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", d)
		}
	}
}
