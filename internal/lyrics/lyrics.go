// Package lyrics matches scraped lyrics text files against the song catalog
// and writes the lyrics-to-song mapping CSV.
//
// Lyrics filenames carry the song title, frequently in Cyrillic, and
// sometimes the artist. The catalog stores titles in Latin script. The
// matching engine's transliterating normalizer is what bridges the two.
package lyrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"refrain/internal/catalog"
	"refrain/internal/config"
	"refrain/internal/library"
	"refrain/internal/logging"
	"refrain/internal/match"
	"refrain/internal/report"
	"refrain/internal/scan"
)

// Outcome is everything one lyrics run produced.
type Outcome struct {
	RunID      string
	Summary    match.Summary
	Results    []match.Result
	Groups     []match.VariantGroup
	Rows       []report.Row
	CSVPath    string
	ReportPath string
	// SkippedDirs lists configured source directories that did not exist.
	SkippedDirs []string
}

// Workflow wires the store, scanner and matching engine for lyrics runs.
type Workflow struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewWorkflow builds a lyrics workflow from configuration.
func NewWorkflow(cfg *config.Config, logger *slog.Logger) *Workflow {
	return &Workflow{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "lyrics"),
	}
}

// Run loads the catalog, scans every lyrics source, classifies each file
// against the catalog and writes the mapping CSV plus a JSON run report.
func (w *Workflow) Run(ctx context.Context) (*Outcome, error) {
	started := time.Now()

	store, err := library.Open(w.cfg.Paths.LibraryDB)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	songs, err := store.Songs(ctx)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: library %s holds no songs", match.ErrInput, w.cfg.Paths.LibraryDB)
	}

	records := make([]catalog.NameRecord, 0, len(songs))
	albums := make(map[string]string, len(songs))
	for _, song := range songs {
		records = append(records, song.Record())
		albums[song.ID] = song.Album
	}
	w.logger.Info("loaded song catalog",
		logging.Int("songs", len(songs)),
		logging.String("db", w.cfg.Paths.LibraryDB))

	files, skipped, err := scan.LyricsFiles(w.cfg.Lyrics.Sources)
	if err != nil {
		return nil, err
	}
	for _, dir := range skipped {
		w.logger.Warn("lyrics source directory missing, skipping",
			logging.String("dir", dir))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no lyrics files found in %d configured sources", match.ErrInput, len(w.cfg.Lyrics.Sources))
	}
	w.logger.Info("scanned lyrics sources",
		logging.Int("files", len(files)),
		logging.Int("sources", len(w.cfg.Lyrics.Sources)))

	queries := make([]catalog.NameRecord, 0, len(files))
	for _, file := range files {
		// The stem doubles as the artist label: when the filename carries
		// the artist name, key containment rewards the right song's artist.
		query := catalog.NewRecord(file.Path, file.Stem, file.Stem)
		query.Path = file.Path
		query.Source = file.Source
		queries = append(queries, query)
	}

	policy := w.cfg.LyricsPolicy()
	index := catalog.BuildIndex(records)
	scorer := match.NewScorer(policy, nil, nil, w.logger)
	classifier := match.NewClassifier(index, scorer, policy, w.logger)
	batch := match.NewBatch(classifier, w.cfg.Matching.Workers, w.logger)

	results := batch.Run(ctx, queries)

	var summary match.Summary
	for _, result := range results {
		summary.Add(result)
	}
	groups := match.GroupVariants(results)
	rows := report.BuildRows(results, groups, albums)

	if err := report.SaveCSV(w.cfg.Lyrics.MappingCSV, rows); err != nil {
		return nil, err
	}

	finished := time.Now()
	runID, err := store.RecordRun(ctx, "lyrics", started, finished, summary, results)
	if err != nil {
		return nil, err
	}

	rep := report.NewRunReport("lyrics", summary, runDetails{
		RunID:       runID,
		Sources:     len(w.cfg.Lyrics.Sources),
		Files:       len(files),
		Variants:    countVariantGroups(groups),
		SkippedDirs: skipped,
	})
	reportPath, err := report.SaveJSON(w.cfg.Paths.ReportDir, rep)
	if err != nil {
		return nil, err
	}

	w.logger.Info("lyrics run complete",
		logging.String(logging.FieldRunID, runID),
		logging.Int("matched", summary.Match),
		logging.Int("review", summary.Review),
		logging.Int("no_match", summary.NoMatch),
		logging.Duration("elapsed", finished.Sub(started)))

	return &Outcome{
		RunID:       runID,
		Summary:     summary,
		Results:     results,
		Groups:      groups,
		Rows:        rows,
		CSVPath:     w.cfg.Lyrics.MappingCSV,
		ReportPath:  reportPath,
		SkippedDirs: skipped,
	}, nil
}

type runDetails struct {
	RunID       string   `json:"run_id"`
	Sources     int      `json:"sources"`
	Files       int      `json:"files"`
	Variants    int      `json:"variant_groups"`
	SkippedDirs []string `json:"skipped_dirs,omitempty"`
}

// countVariantGroups counts groups where more than one lyrics file mapped to
// the same song.
func countVariantGroups(groups []match.VariantGroup) int {
	n := 0
	for _, group := range groups {
		if group.Size() > 1 {
			n++
		}
	}
	return n
}
