// Package scan discovers lyrics and audio files on disk and parses track
// names out of filenames.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// progressFile is bookkeeping left behind by the lyrics scrapers; never a
// lyrics file itself.
const progressFile = "_progress.txt"

// TrackName is the artist/title pair parsed from an "Artist - Title"
// filename. Artist is empty when the filename carries no separator.
type TrackName struct {
	Artist string
	Title  string
}

// ParseTrackName splits a file path's stem on the first " - " separator.
func ParseTrackName(path string) TrackName {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if artist, title, ok := strings.Cut(stem, " - "); ok {
		return TrackName{
			Artist: strings.TrimSpace(artist),
			Title:  strings.TrimSpace(title),
		}
	}
	return TrackName{Title: strings.TrimSpace(stem)}
}

// LyricsFile is one discovered lyrics text file.
type LyricsFile struct {
	// Path is the absolute or caller-relative file path.
	Path string
	// Source names the scrape source the file's directory belongs to.
	Source string
	// Stem is the filename without extension; it carries the song title and
	// sometimes the artist.
	Stem string
}

// LyricsFiles collects *.txt files from each source directory, skipping the
// scrapers' progress files. Directories that do not exist are returned in
// skipped rather than failing the whole scan. Output is deterministic:
// sources in name order, files in name order within each source.
func LyricsFiles(sources map[string]string) (files []LyricsFile, skipped []string, err error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dir := sources[name]
		entries, readErr := os.ReadDir(dir)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				skipped = append(skipped, dir)
				continue
			}
			return nil, nil, fmt.Errorf("read lyrics dir %s: %w", dir, readErr)
		}

		for _, entry := range entries {
			if entry.IsDir() || entry.Name() == progressFile {
				continue
			}
			if !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
				continue
			}
			files = append(files, LyricsFile{
				Path:   filepath.Join(dir, entry.Name()),
				Source: name,
				Stem:   strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			})
		}
	}
	return files, skipped, nil
}

// AudioFiles walks dir recursively and returns every MP3 path in walk order.
// A missing directory yields an empty result, not an error; downloads and
// library folders legitimately start out absent.
func AudioFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".mp3") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}
