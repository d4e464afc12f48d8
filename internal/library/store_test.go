package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"refrain/internal/catalog"
	"refrain/internal/match"
	"refrain/internal/testsupport"
)

func createLibraryDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "library.db")
	testsupport.SeedLibraryDB(t, path, []testsupport.Song{
		{ID: "s1", Title: "Qaradeniz", Artist: "Edip Asanov", Album: "Qaradeniz"},
		{ID: "s2", Title: "Bağçalarda kestane", Artist: "Urie Kerman"},
		{ID: "s3", Title: "Ey güzel Qırım"},
	})
	return path
}

func TestOpenMissingDatabase(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("Open on a missing database succeeded, want error")
	}
}

func TestSongs(t *testing.T) {
	store, err := Open(createLibraryDB(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	songs, err := store.Songs(context.Background())
	if err != nil {
		t.Fatalf("Songs failed: %v", err)
	}
	if len(songs) != 3 {
		t.Fatalf("Songs = %d rows, want 3", len(songs))
	}
	// Title order, NULL artist and album read as empty strings.
	if songs[0].Title != "Bağçalarda kestane" {
		t.Fatalf("songs[0].Title = %q, want title order", songs[0].Title)
	}
	for _, song := range songs {
		if song.ID == "s3" && (song.Artist != "" || song.Album != "") {
			t.Fatalf("NULL columns not folded to empty: %+v", song)
		}
	}

	rec := songs[0].Record()
	if rec.Key != "bagcalarda kestane" {
		t.Fatalf("Record().Key = %q", rec.Key)
	}
	if rec.Source != "library" {
		t.Fatalf("Record().Source = %q, want library", rec.Source)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store, err := Open(createLibraryDB(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	song := catalog.NewRecord("s1", "Qaradeniz", "Edip Asanov")
	results := []match.Result{
		{
			Query:      catalog.NameRecord{DisplayName: "КЪАРАДЕНИЗ", Source: "qirimtatar"},
			Best:       &match.Candidate{Record: &song, Score: 72.5},
			Confidence: match.ConfidenceMatch,
		},
		{
			Query:      catalog.NameRecord{DisplayName: "Unknown song", Source: "qirimtatar"},
			Confidence: match.ConfidenceNoMatch,
		},
	}
	summary := match.Summary{Match: 1, NoMatch: 1}
	started := time.Now().Add(-time.Minute)

	runID, err := store.RecordRun(ctx, "lyrics", started, time.Now(), summary, results)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if runID == "" {
		t.Fatal("RecordRun returned empty run ID")
	}

	runs, err := store.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs = %d, want 1", len(runs))
	}
	run := runs[0]
	if run.ID != runID || run.Kind != "lyrics" {
		t.Fatalf("run = %+v", run)
	}
	if run.Summary.Match != 1 || run.Summary.NoMatch != 1 {
		t.Fatalf("run summary = %+v", run.Summary)
	}
	if run.StartedAt.IsZero() || run.FinishedAt.Before(run.StartedAt) {
		t.Fatalf("run timestamps = %v .. %v", run.StartedAt, run.FinishedAt)
	}
}

func TestRunTablesDoNotTouchSongs(t *testing.T) {
	path := createLibraryDB(t)

	// Open twice: schema setup must be idempotent against an existing file.
	for i := 0; i < 2; i++ {
		store, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		songs, err := store.Songs(context.Background())
		if err != nil {
			t.Fatalf("Songs #%d failed: %v", i+1, err)
		}
		if len(songs) != 3 {
			t.Fatalf("Songs #%d = %d rows, want 3", i+1, len(songs))
		}
		_ = store.Close()
	}
}
