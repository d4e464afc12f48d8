package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/bits"
	"sync"

	"refrain/internal/catalog"
	"refrain/internal/logging"
	"refrain/internal/textnorm"
)

// Candidate pairs a query with one scored reference record. Transient: it
// exists only inside a Result.
type Candidate struct {
	Record  *catalog.NameRecord
	Score   float64
	Reasons []string
}

// Scorer computes the weighted similarity score between a query and one
// candidate. Safe for concurrent use; the lazy fingerprint cache is the only
// shared state and is mutex-guarded.
type Scorer struct {
	policy       Policy
	durations    DurationProvider
	fingerprints FingerprintProvider
	logger       *slog.Logger

	mu    sync.Mutex
	cache map[string][]uint32
}

// NewScorer builds a scorer. Both providers may be nil, in which case the
// corresponding signals are simply never computed.
func NewScorer(policy Policy, durations DurationProvider, fingerprints FingerprintProvider, logger *slog.Logger) *Scorer {
	return &Scorer{
		policy:       policy.normalized(),
		durations:    durations,
		fingerprints: fingerprints,
		logger:       logging.NewComponentLogger(logger, "scorer"),
		cache:        make(map[string][]uint32),
	}
}

// Score returns the total points and the human-readable reason list for one
// query/candidate pair.
func (s *Scorer) Score(ctx context.Context, query catalog.NameRecord, cand *catalog.NameRecord) (float64, []string) {
	p := s.policy
	score := 0.0
	reasons := make([]string, 0, 4)

	if sim := textnorm.KeySimilarity(query.Key, cand.Key); sim >= p.NameThreshold {
		score += sim * p.Weights.Title
		reasons = append(reasons, fmt.Sprintf("title:%.0f%%", sim*100))
	}

	if sim := textnorm.KeySimilarity(query.SecondaryKey, cand.SecondaryKey); sim >= p.NameThreshold {
		score += sim * p.Weights.Artist
		reasons = append(reasons, fmt.Sprintf("artist:%.0f%%", sim*100))
	}

	if query.Duration > 0 && cand.Duration > 0 {
		diff := math.Abs(query.Duration - cand.Duration)
		if diff <= p.DurationTolerance {
			score += (1 - diff/p.DurationTolerance) * p.Weights.Duration
			reasons = append(reasons, fmt.Sprintf("duration:%.1fs", diff))
		}
	}

	// Fingerprinting is expensive; only corroborate candidates that already
	// look plausible from the cheap signals.
	if score >= p.FingerprintGate {
		if sim, ok := s.fingerprintSimilarity(ctx, query, cand); ok && sim >= p.FingerprintThreshold {
			score += sim * p.Weights.Fingerprint
			reasons = append(reasons, fmt.Sprintf("audio:%.0f%%", sim*100))
		}
	}

	return score, reasons
}

func (s *Scorer) fingerprintSimilarity(ctx context.Context, query catalog.NameRecord, cand *catalog.NameRecord) (float64, bool) {
	queryFP := s.fingerprintFor(ctx, query.Fingerprint, query.Path)
	candFP := s.fingerprintFor(ctx, cand.Fingerprint, cand.Path)
	if len(queryFP) == 0 || len(candFP) == 0 {
		return 0, false
	}
	return FingerprintSimilarity(queryFP, candFP), true
}

// fingerprintFor returns a record's fingerprint, extracting and caching it by
// path on first use. Extraction failure degrades to "no fingerprint".
func (s *Scorer) fingerprintFor(ctx context.Context, precomputed []uint32, path string) []uint32 {
	if len(precomputed) > 0 {
		return precomputed
	}
	if s.fingerprints == nil || path == "" {
		return nil
	}

	s.mu.Lock()
	cached, ok := s.cache[path]
	s.mu.Unlock()
	if ok {
		return cached
	}

	fp, err := s.fingerprints.Fingerprint(ctx, path)
	if err != nil {
		s.logger.Debug("fingerprint extraction failed; signal skipped",
			logging.String("path", path),
			logging.Error(err))
		fp = nil
	}
	s.mu.Lock()
	s.cache[path] = fp
	s.mu.Unlock()
	return fp
}

// FingerprintSimilarity is the fraction of equal bits across the zipped,
// length-truncated fingerprint sequences.
func FingerprintSimilarity(a, b []uint32) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	matching := 0
	for i := 0; i < n; i++ {
		matching += 32 - bits.OnesCount32(a[i]^b[i])
	}
	return float64(matching) / float64(32*n)
}
