// Package report renders matching results as the CSV mapping file and as
// JSON run reports.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"refrain/internal/match"
)

// Row is one line of the lyrics mapping CSV.
type Row struct {
	Source      string
	LyricsFile  string
	SongID      string
	SongTitle   string
	Artist      string
	Album       string
	Score       float64
	Status      string
	HasVariants bool
	VariantRank string
	FilePath    string
}

// statusFor maps a confidence bucket to the CSV status column.
func statusFor(confidence match.Confidence) string {
	switch confidence {
	case match.ConfidenceMatch:
		return "HIGH"
	case match.ConfidenceReview:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// BuildRows turns classified results into CSV rows, one per result that found
// a candidate. albums maps song ID to album name; it may be nil. Variant
// columns come from the groups, so two lyrics files mapped to one song show
// their rank within that song's group.
func BuildRows(results []match.Result, groups []match.VariantGroup, albums map[string]string) []Row {
	groupBySong := make(map[string]match.VariantGroup, len(groups))
	for _, group := range groups {
		groupBySong[group.ReferenceID] = group
	}

	rows := make([]Row, 0, len(results))
	for _, result := range results {
		if result.Best == nil || result.Best.Record == nil {
			continue
		}
		song := result.Best.Record
		row := Row{
			Source:     result.Query.Source,
			LyricsFile: filepath.Base(result.Query.Path),
			SongID:     song.ID,
			SongTitle:  song.DisplayName,
			Artist:     song.SecondaryLabel,
			Album:      albums[song.ID],
			Score:      result.Best.Score,
			Status:     statusFor(result.Confidence),
			FilePath:   result.Query.Path,
		}
		if group, ok := groupBySong[song.ID]; ok && group.Size() > 1 {
			row.HasVariants = true
			row.VariantRank = fmt.Sprintf("%d/%d", group.Rank(result.Query.ID), group.Size())
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the mapping rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	header := []string{
		"Source", "Lyrics File", "Song ID", "Song Title", "Artist", "Album",
		"Score", "Status", "Has Variants", "Variant Rank", "File Path",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		hasVariants := "NO"
		if row.HasVariants {
			hasVariants = "YES"
		}
		record := []string{
			row.Source,
			row.LyricsFile,
			row.SongID,
			row.SongTitle,
			row.Artist,
			row.Album,
			fmt.Sprintf("%.2f", row.Score),
			row.Status,
			hasVariants,
			row.VariantRank,
			row.FilePath,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// SaveCSV writes the mapping CSV to path, creating parent directories.
func SaveCSV(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := WriteCSV(file, rows); err != nil {
		return err
	}
	return file.Close()
}

// RunReport is the JSON artifact saved after each workflow run.
type RunReport struct {
	ID          string        `json:"id"`
	Kind        string        `json:"kind"`
	GeneratedAt time.Time     `json:"generated_at"`
	Summary     match.Summary `json:"summary"`
	// Details carries workflow-specific payload (duplicate pairs, uncertain
	// tracks, variant groups).
	Details any `json:"details,omitempty"`
}

// NewRunReport stamps a report with a fresh ID and the current time.
func NewRunReport(kind string, summary match.Summary, details any) RunReport {
	return RunReport{
		ID:          uuid.NewString(),
		Kind:        kind,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Details:     details,
	}
}

// SaveJSON writes the report indented to dir, named by kind and ID, and
// returns the file path.
func SaveJSON(dir string, rep RunReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", rep.Kind, rep.ID))
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}
