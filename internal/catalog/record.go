package catalog

import "refrain/internal/textnorm"

// NameRecord is one reference or query entity: a song row, a lyrics file, or
// a downloaded track. Constructed once from raw source data and treated as
// immutable afterwards; the normalized keys are derived at construction.
type NameRecord struct {
	// ID identifies the record in its source collection (database id or path).
	ID string
	// DisplayName is the raw title as found in the source.
	DisplayName string
	// SecondaryLabel is the raw artist (or other secondary) name, may be empty.
	SecondaryLabel string

	// Key is the normalized comparison key derived from DisplayName.
	Key string
	// SecondaryKey is the normalized key derived from SecondaryLabel.
	SecondaryKey string

	// Duration in seconds; 0 means unknown.
	Duration float64
	// Fingerprint is an optional precomputed content fingerprint.
	Fingerprint []uint32

	// Path locates the backing file when the record came from the filesystem.
	Path string
	// Source names the collection the record came from (lyrics source name,
	// library directory, downloads folder).
	Source string
}

// NewRecord derives the normalized keys for a record. Callers fill in
// Duration, Fingerprint, Path and Source on the returned value before
// indexing it.
func NewRecord(id, displayName, secondaryLabel string) NameRecord {
	return NameRecord{
		ID:             id,
		DisplayName:    displayName,
		SecondaryLabel: secondaryLabel,
		Key:            textnorm.Normalize(displayName),
		SecondaryKey:   textnorm.Normalize(secondaryLabel),
	}
}
