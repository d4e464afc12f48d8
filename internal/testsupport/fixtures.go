package testsupport

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Song seeds one media_file row. Empty Artist and Album become NULLs.
type Song struct {
	ID     string
	Title  string
	Artist string
	Album  string
}

// SeedLibraryDB creates a library database at path with the media_file table
// the music server would own, populated with songs.
func SeedLibraryDB(t testing.TB, path string, songs []Song) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`CREATE TABLE media_file (
        id TEXT PRIMARY KEY,
        title TEXT NOT NULL,
        artist TEXT,
        album TEXT
    )`); err != nil {
		t.Fatalf("create media_file: %v", err)
	}

	for _, song := range songs {
		if _, err := db.Exec(
			"INSERT INTO media_file (id, title, artist, album) VALUES (?, ?, ?, ?)",
			song.ID, song.Title, nullable(song.Artist), nullable(song.Album)); err != nil {
			t.Fatalf("insert song %s: %v", song.ID, err)
		}
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// WriteFile creates path with contents, creating parent directories.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
