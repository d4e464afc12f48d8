package catalog

import "math"

// Index buckets a reference collection by normalized key and by rounded
// duration. Built once with BuildIndex; lookups are read-only and safe for
// concurrent use.
type Index struct {
	records    []NameRecord
	byKey      map[string][]*NameRecord
	byDuration map[int][]*NameRecord
}

// BuildIndex constructs the candidate index over records in O(n).
// Bucket contents preserve the original reference order.
func BuildIndex(records []NameRecord) *Index {
	idx := &Index{
		records:    make([]NameRecord, len(records)),
		byKey:      make(map[string][]*NameRecord, len(records)),
		byDuration: make(map[int][]*NameRecord),
	}
	copy(idx.records, records)

	for i := range idx.records {
		rec := &idx.records[i]
		if rec.Key != "" {
			idx.byKey[rec.Key] = append(idx.byKey[rec.Key], rec)
		}
		if rec.Duration > 0 {
			bucket := int(math.Round(rec.Duration))
			idx.byDuration[bucket] = append(idx.byDuration[bucket], rec)
		}
	}
	return idx
}

// Len returns the number of indexed records.
func (x *Index) Len() int {
	return len(x.records)
}

// KeyCount returns the number of distinct normalized keys.
func (x *Index) KeyCount() int {
	return len(x.byKey)
}

// DurationBucketCount returns the number of populated duration buckets.
func (x *Index) DurationBucketCount() int {
	return len(x.byDuration)
}

// All returns every indexed record in reference order. Used by the
// classifier's exhaustive fallback; callers must not mutate the records.
func (x *Index) All() []*NameRecord {
	out := make([]*NameRecord, len(x.records))
	for i := range x.records {
		out[i] = &x.records[i]
	}
	return out
}

// ByKey returns the records sharing the exact normalized key, or an empty
// slice when the key is absent.
func (x *Index) ByKey(key string) []*NameRecord {
	if key == "" {
		return nil
	}
	return x.byKey[key]
}

// ByDurationRange returns all records whose duration lies within tolerance
// seconds of center. Bucket scanning covers round(center)-floor(tol) through
// round(center)+ceil(tol); every hit is re-checked against the exact
// tolerance so bucket-edge records outside the window are excluded.
func (x *Index) ByDurationRange(center, tolerance float64) []*NameRecord {
	if center <= 0 || tolerance < 0 {
		return nil
	}
	mid := int(math.Round(center))
	lo := mid - int(math.Floor(tolerance))
	hi := mid + int(math.Ceil(tolerance))

	var out []*NameRecord
	for bucket := lo; bucket <= hi; bucket++ {
		for _, rec := range x.byDuration[bucket] {
			if math.Abs(rec.Duration-center) <= tolerance {
				out = append(out, rec)
			}
		}
	}
	return out
}
