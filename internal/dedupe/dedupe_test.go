package dedupe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"refrain/internal/config"
	"refrain/internal/logging"
	"refrain/internal/testsupport"
)

type fakeDurations struct {
	byPath map[string]float64
}

func (f *fakeDurations) Duration(_ context.Context, path string) (float64, error) {
	if d, ok := f.byPath[path]; ok {
		return d, nil
	}
	return 0, errors.New("no probe data")
}

type fakeFingerprints struct {
	byPath map[string][]uint32
}

func (f *fakeFingerprints) Fingerprint(_ context.Context, path string) ([]uint32, error) {
	if fp, ok := f.byPath[path]; ok {
		return fp, nil
	}
	return nil, errors.New("no fingerprint data")
}

func setupWorkflow(t *testing.T) (*Workflow, *config.Config, map[string]string) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	paths := map[string]string{
		"existing":  filepath.Join(cfg.Paths.LibraryDir, "Edip Asanov", "Edip Asanov - Qaradeniz.mp3"),
		"duplicate": filepath.Join(cfg.Paths.DownloadsDir, "Edip Asanov", "Edip Asanov - Qaradeniz.mp3"),
		"uncertain": filepath.Join(cfg.Paths.DownloadsDir, "Someone Else", "Someone Else - Qaradeniz.mp3"),
		"unique":    filepath.Join(cfg.Paths.DownloadsDir, "Urie Kerman", "Urie Kerman - Brand New Song.mp3"),
	}
	for _, path := range paths {
		testsupport.WriteFile(t, path, "mp3 bytes")
	}

	sharedFP := []uint32{0xAAAA5555, 0x12345678, 0xFFFF0000, 42}
	otherFP := []uint32{0x5555AAAA, ^uint32(0x12345678), 0x0000FFFF, ^uint32(42)}

	durations := &fakeDurations{byPath: map[string]float64{
		paths["existing"]:  180,
		paths["duplicate"]: 180,
		paths["uncertain"]: 180,
		paths["unique"]:    200,
	}}
	fingerprints := &fakeFingerprints{byPath: map[string][]uint32{
		paths["existing"]:  sharedFP,
		paths["duplicate"]: sharedFP,
		paths["uncertain"]: otherFP,
	}}

	workflow := NewWorkflowWithProviders(cfg, durations, fingerprints, logging.NewNop())
	return workflow, cfg, paths
}

func TestRunClassifiesAndStages(t *testing.T) {
	workflow, cfg, paths := setupWorkflow(t)

	outcome, err := workflow.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(outcome.Duplicates) != 1 {
		t.Fatalf("duplicates = %+v, want the re-downloaded track", outcome.Duplicates)
	}
	dup := outcome.Duplicates[0]
	if dup.Path != paths["duplicate"] || dup.ExistingPath != paths["existing"] {
		t.Fatalf("duplicate = %+v", dup)
	}
	if dup.Score < 70 {
		t.Fatalf("duplicate score = %.1f, want high confidence", dup.Score)
	}
	if dup.CopiedTo != "" {
		t.Fatal("duplicate was staged; duplicates must stay in downloads")
	}

	if len(outcome.Uncertain) != 1 {
		t.Fatalf("uncertain = %+v, want the same-title different-artist track", outcome.Uncertain)
	}
	unc := outcome.Uncertain[0]
	if filepath.Dir(unc.CopiedTo) != filepath.Join(cfg.Paths.UploadDir, "_UNCERTAIN") {
		t.Fatalf("uncertain staged to %s", unc.CopiedTo)
	}

	if len(outcome.Unique) != 1 {
		t.Fatalf("unique = %+v, want the brand new track", outcome.Unique)
	}
	uniq := outcome.Unique[0]
	if filepath.Dir(uniq.CopiedTo) != filepath.Join(cfg.Paths.UploadDir, "Urie Kerman") {
		t.Fatalf("unique staged to %s, want per-artist folder", uniq.CopiedTo)
	}
	if _, err := os.Stat(uniq.CopiedTo); err != nil {
		t.Fatalf("staged copy missing: %v", err)
	}

	if outcome.Summary.Match != 1 || outcome.Summary.Review != 1 || outcome.Summary.NoMatch != 1 {
		t.Fatalf("summary = %+v", outcome.Summary)
	}
	if outcome.CopyFailures != 0 {
		t.Fatalf("copy failures = %d", outcome.CopyFailures)
	}
	if _, err := os.Stat(outcome.ReportPath); err != nil {
		t.Fatalf("run report missing: %v", err)
	}
}

func TestRunLockPreventsConcurrentRuns(t *testing.T) {
	workflow, cfg, _ := setupWorkflow(t)

	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(filepath.Join(cfg.Paths.LogDir, lockFile))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = held.Unlock() }()

	if _, err := workflow.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("Run under held lock = %v, want ErrAlreadyRunning", err)
	}
}

func TestRunEmptyDownloads(t *testing.T) {
	workflow, cfg, _ := setupWorkflow(t)
	if err := os.RemoveAll(cfg.Paths.DownloadsDir); err != nil {
		t.Fatal(err)
	}
	if _, err := workflow.Run(context.Background()); err == nil {
		t.Fatal("Run with no downloads succeeded, want error")
	}
}

func TestRunDurationProbeFailureDegrades(t *testing.T) {
	workflow, _, paths := setupWorkflow(t)

	// Drop the duplicate's duration data: it still matches on names and
	// fingerprint alone.
	durations := workflow.durations.(*fakeDurations)
	delete(durations.byPath, paths["duplicate"])

	outcome, err := workflow.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(outcome.Duplicates) != 1 {
		t.Fatalf("duplicates = %+v, want the re-download still caught", outcome.Duplicates)
	}
}
