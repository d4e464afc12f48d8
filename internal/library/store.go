package library

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"refrain/internal/catalog"
	"refrain/internal/match"
)

//go:embed schema.sql
var schemaSQL string

// Song is one media_file row, as read from the server's database.
type Song struct {
	ID     string
	Title  string
	Artist string
	Album  string
}

// Record converts the song into the matching engine's record shape.
func (s Song) Record() catalog.NameRecord {
	rec := catalog.NewRecord(s.ID, s.Title, s.Artist)
	rec.Source = "library"
	return rec
}

// Store wraps the library SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to an existing library database. The database must already
// exist; this tool never creates a song catalog, only reads one. Run-history
// side tables are created if missing.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("library database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open library db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create run tables: %w", err)
	}
	return nil
}

// Songs reads every song from the media_file table in title order.
func (s *Store) Songs(ctx context.Context) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, COALESCE(artist, ''), COALESCE(album, '')
         FROM media_file
         ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Album); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// Run summarizes one recorded matching run.
type Run struct {
	ID         string
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    match.Summary
}

// RecordRun persists a run and its per-query results in one transaction and
// returns the generated run ID.
func (s *Store) RecordRun(ctx context.Context, kind string, started, finished time.Time, summary match.Summary, results []match.Result) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO match_run (id, kind, started_at, finished_at, total, matched, review, no_match, skipped)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, kind,
		started.UTC().Format(time.RFC3339Nano),
		finished.UTC().Format(time.RFC3339Nano),
		summary.Total(), summary.Match, summary.Review, summary.NoMatch, summary.Skipped)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO match_result (run_id, query, source, song_id, score, confidence)
         VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare result insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, result := range results {
		var songID any
		var score float64
		if result.Best != nil && result.Best.Record != nil {
			songID = result.Best.Record.ID
			score = result.Best.Score
		}
		if _, err := stmt.ExecContext(ctx,
			runID, result.Query.DisplayName, result.Query.Source,
			songID, score, string(result.Confidence)); err != nil {
			return "", fmt.Errorf("insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// Runs returns recorded runs, newest first, capped at limit (0 means all).
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, kind, started_at, finished_at, total, matched, review, no_match, skipped
              FROM match_run ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		var total int
		if err := rows.Scan(&run.ID, &run.Kind, &started, &finished,
			&total, &run.Summary.Match, &run.Summary.Review,
			&run.Summary.NoMatch, &run.Summary.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
