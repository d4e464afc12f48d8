// Package dedupe classifies freshly downloaded tracks against the existing
// audio library and stages the unique ones for upload.
//
// Downloads land as "Artist - Title.mp3" under one folder per artist. Each
// file is scored against the library by title, artist, duration and, for
// plausible candidates, audio fingerprint. Duplicates are reported and left
// alone; uncertain tracks are staged into a review folder; unique tracks are
// copied, hash-verified, into per-artist upload folders.
package dedupe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"refrain/internal/catalog"
	"refrain/internal/config"
	"refrain/internal/fileutil"
	"refrain/internal/logging"
	"refrain/internal/match"
	"refrain/internal/media/chromaprint"
	"refrain/internal/media/ffprobe"
	"refrain/internal/report"
	"refrain/internal/scan"
)

// uncertainFolder is where review-band tracks are staged inside the upload
// directory.
const uncertainFolder = "_UNCERTAIN"

// lockFile serializes dedupe runs; concurrent runs would race on the upload
// directory.
const lockFile = "dedupe.lock"

// ErrAlreadyRunning reports a concurrent dedupe run holding the lock.
var ErrAlreadyRunning = errors.New("another deduplication run is in progress")

// TrackDecision is the terminal outcome for one downloaded file.
type TrackDecision struct {
	Path         string   `json:"path"`
	Artist       string   `json:"artist"`
	Title        string   `json:"title"`
	ArtistFolder string   `json:"artist_folder"`
	Score        float64  `json:"score,omitempty"`
	Reasons      []string `json:"reasons,omitempty"`
	// ExistingPath is the library track this download duplicates or
	// resembles. Empty for unique tracks.
	ExistingPath string `json:"existing_path,omitempty"`
	// CopiedTo is the staged destination for unique and uncertain tracks.
	CopiedTo string `json:"copied_to,omitempty"`
}

// Outcome is everything one dedupe run produced.
type Outcome struct {
	RunID      string
	Summary    match.Summary
	Unique     []TrackDecision
	Duplicates []TrackDecision
	Uncertain  []TrackDecision
	ReportPath string
	// CopyFailures counts staging copies that failed; the run keeps going.
	CopyFailures int
}

// Workflow wires scanning, probing and matching for dedupe runs.
type Workflow struct {
	cfg          *config.Config
	durations    match.DurationProvider
	fingerprints match.FingerprintProvider
	logger       *slog.Logger
}

// NewWorkflow builds a dedupe workflow with ffprobe and fpcalc providers
// configured from cfg.
func NewWorkflow(cfg *config.Config, logger *slog.Logger) *Workflow {
	return &Workflow{
		cfg: cfg,
		durations: &ffprobe.Prober{
			Binary:  cfg.Tools.FFprobe,
			Timeout: cfg.FFprobeTimeout(),
		},
		fingerprints: &chromaprint.Extractor{
			Binary:  cfg.Tools.Fpcalc,
			Timeout: cfg.FpcalcTimeout(),
		},
		logger: logging.NewComponentLogger(logger, "dedupe"),
	}
}

// NewWorkflowWithProviders builds a dedupe workflow around explicit
// providers. Used by tests and callers that precompute media properties.
func NewWorkflowWithProviders(cfg *config.Config, durations match.DurationProvider, fingerprints match.FingerprintProvider, logger *slog.Logger) *Workflow {
	return &Workflow{
		cfg:          cfg,
		durations:    durations,
		fingerprints: fingerprints,
		logger:       logging.NewComponentLogger(logger, "dedupe"),
	}
}

// Run indexes the library, classifies every download and stages unique and
// uncertain tracks under the upload directory. Holds an exclusive file lock
// for the duration of the run.
func (w *Workflow) Run(ctx context.Context) (*Outcome, error) {
	if err := os.MkdirAll(w.cfg.Paths.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	lock := flock.New(filepath.Join(w.cfg.Paths.LogDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire dedupe lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	defer func() { _ = lock.Unlock() }()

	started := time.Now()

	index, err := w.indexLibrary(ctx)
	if err != nil {
		return nil, err
	}

	downloads, err := scan.AudioFiles(w.cfg.Paths.DownloadsDir)
	if err != nil {
		return nil, err
	}
	if len(downloads) == 0 {
		return nil, fmt.Errorf("%w: no downloads found under %s", match.ErrInput, w.cfg.Paths.DownloadsDir)
	}
	w.logger.Info("scanned downloads", logging.Int("files", len(downloads)))

	queries := make([]catalog.NameRecord, 0, len(downloads))
	for _, path := range downloads {
		queries = append(queries, w.queryRecord(ctx, path))
	}

	policy := w.cfg.MatchPolicy()
	scorer := match.NewScorer(policy, w.durations, w.fingerprints, w.logger)
	classifier := match.NewClassifier(index, scorer, policy, w.logger)
	batch := match.NewBatch(classifier, w.cfg.Matching.Workers, w.logger)

	results := batch.Run(ctx, queries)

	outcome := &Outcome{}
	for _, result := range results {
		outcome.Summary.Add(result)
		w.dispatch(result, outcome)
	}

	rep := report.NewRunReport("dedupe", outcome.Summary, reportDetails{
		Library:    index.Len(),
		Downloads:  len(downloads),
		Unique:     outcome.Unique,
		Duplicates: outcome.Duplicates,
		Uncertain:  outcome.Uncertain,
	})
	outcome.RunID = rep.ID
	if outcome.ReportPath, err = report.SaveJSON(w.cfg.Paths.ReportDir, rep); err != nil {
		return nil, err
	}

	w.logger.Info("dedupe run complete",
		logging.String(logging.FieldRunID, outcome.RunID),
		logging.Int("unique", len(outcome.Unique)),
		logging.Int("duplicates", len(outcome.Duplicates)),
		logging.Int("uncertain", len(outcome.Uncertain)),
		logging.Duration("elapsed", time.Since(started)))
	return outcome, nil
}

// indexLibrary scans the library directory and builds the reference index.
// Durations are probed up front; fingerprints stay lazy.
func (w *Workflow) indexLibrary(ctx context.Context) (*catalog.Index, error) {
	files, err := scan.AudioFiles(w.cfg.Paths.LibraryDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: library directory %s holds no tracks", match.ErrInput, w.cfg.Paths.LibraryDir)
	}

	records := make([]catalog.NameRecord, 0, len(files))
	for _, path := range files {
		name := scan.ParseTrackName(path)
		rec := catalog.NewRecord(path, name.Title, name.Artist)
		rec.Path = path
		rec.Source = "library"
		rec.Duration = w.probeDuration(ctx, path)
		records = append(records, rec)
	}

	index := catalog.BuildIndex(records)
	w.logger.Info("indexed library",
		logging.Int("tracks", index.Len()),
		logging.Int("titles", index.KeyCount()),
		logging.Int("duration_buckets", index.DurationBucketCount()))
	return index, nil
}

func (w *Workflow) queryRecord(ctx context.Context, path string) catalog.NameRecord {
	name := scan.ParseTrackName(path)
	rec := catalog.NewRecord(path, name.Title, name.Artist)
	rec.Path = path
	rec.Source = filepath.Base(filepath.Dir(path))
	rec.Duration = w.probeDuration(ctx, path)
	return rec
}

// probeDuration returns the track duration, or 0 when probing fails. A
// broken file loses the duration signal but still matches on names.
func (w *Workflow) probeDuration(ctx context.Context, path string) float64 {
	if w.durations == nil {
		return 0
	}
	duration, err := w.durations.Duration(ctx, path)
	if err != nil {
		w.logger.Warn("duration probe failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err))
		return 0
	}
	return duration
}

// dispatch routes one classified download: duplicates are only recorded,
// uncertain tracks go to the review folder, unique tracks to their artist's
// upload folder. Copy errors are logged and counted, never fatal.
func (w *Workflow) dispatch(result match.Result, outcome *Outcome) {
	decision := TrackDecision{
		Path:         result.Query.Path,
		Artist:       result.Query.SecondaryLabel,
		Title:        result.Query.DisplayName,
		ArtistFolder: result.Query.Source,
	}
	if result.Best != nil {
		decision.Score = result.Best.Score
		decision.Reasons = result.Best.Reasons
		decision.ExistingPath = result.Best.Record.Path
	}

	switch result.Confidence {
	case match.ConfidenceMatch:
		outcome.Duplicates = append(outcome.Duplicates, decision)
	case match.ConfidenceReview:
		w.stage(&decision, filepath.Join(w.cfg.Paths.UploadDir, uncertainFolder), outcome)
		outcome.Uncertain = append(outcome.Uncertain, decision)
	default:
		w.stage(&decision, filepath.Join(w.cfg.Paths.UploadDir, decision.ArtistFolder), outcome)
		outcome.Unique = append(outcome.Unique, decision)
	}
}

func (w *Workflow) stage(decision *TrackDecision, dir string, outcome *Outcome) {
	dst, err := fileutil.CopyIntoDir(decision.Path, dir)
	if err != nil {
		w.logger.Error("staging copy failed",
			logging.String(logging.FieldPath, decision.Path),
			logging.Error(err))
		outcome.CopyFailures++
		return
	}
	decision.CopiedTo = dst
}

type reportDetails struct {
	Library    int             `json:"library_tracks"`
	Downloads  int             `json:"downloads"`
	Unique     []TrackDecision `json:"unique"`
	Duplicates []TrackDecision `json:"duplicates"`
	Uncertain  []TrackDecision `json:"uncertain"`
}
