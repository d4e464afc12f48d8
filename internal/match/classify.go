package match

import (
	"context"
	"log/slog"
	"sort"

	"refrain/internal/catalog"
	"refrain/internal/logging"
)

// Confidence buckets a classified query.
type Confidence string

const (
	// ConfidenceMatch is a high-confidence, auto-actionable match.
	ConfidenceMatch Confidence = "match"
	// ConfidenceReview needs human confirmation.
	ConfidenceReview Confidence = "review"
	// ConfidenceNoMatch means no reference record plausibly matches.
	// Absence is a valid outcome, not an error.
	ConfidenceNoMatch Confidence = "no_match"
	// ConfidenceSkipped marks a query that carried no usable signal at all:
	// an empty comparison key and no duration.
	ConfidenceSkipped Confidence = "skipped"
)

// Result is the terminal classification for one query.
type Result struct {
	Query      catalog.NameRecord
	Best       *Candidate
	Confidence Confidence
	// Candidates holds the top-N scored candidates, best first. Only the top
	// one drives the classification; the rest are kept for transparency.
	Candidates []Candidate
}

// Classifier gathers, scores and buckets candidates for individual queries.
type Classifier struct {
	index  *catalog.Index
	scorer *Scorer
	policy Policy
	logger *slog.Logger
}

// NewClassifier builds a classifier over a fixed reference index.
func NewClassifier(index *catalog.Index, scorer *Scorer, policy Policy, logger *slog.Logger) *Classifier {
	return &Classifier{
		index:  index,
		scorer: scorer,
		policy: policy.normalized(),
		logger: logging.NewComponentLogger(logger, "classifier"),
	}
}

// Classify scores every distinct candidate reachable from the query's key
// bucket or duration window and buckets the best one by threshold.
func (c *Classifier) Classify(ctx context.Context, query catalog.NameRecord) Result {
	if query.Key == "" && query.Duration <= 0 {
		c.logger.Warn("query carries no usable signal, skipping",
			logging.String(logging.FieldQuery, query.DisplayName),
			logging.String(logging.FieldSource, query.Source))
		return Result{Query: query, Confidence: ConfidenceSkipped}
	}

	candidates := c.gather(query)

	scored := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		score, reasons := c.scorer.Score(ctx, query, cand)
		if score <= 0 {
			continue
		}
		scored = append(scored, Candidate{Record: cand, Score: score, Reasons: reasons})
	}
	// Stable sort keeps reference order for tied scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > c.policy.TopCandidates {
		scored = scored[:c.policy.TopCandidates]
	}

	result := Result{Query: query, Confidence: ConfidenceNoMatch, Candidates: scored}
	if len(scored) == 0 {
		return result
	}

	best := scored[0]
	switch {
	case best.Score >= c.policy.MatchThreshold:
		result.Confidence = ConfidenceMatch
	case best.Score >= c.policy.ReviewThreshold:
		result.Confidence = ConfidenceReview
	default:
		result.Confidence = ConfidenceNoMatch
	}
	if result.Confidence != ConfidenceNoMatch {
		result.Best = &best
	}

	c.logger.Debug("classified query",
		logging.String(logging.FieldQuery, query.DisplayName),
		logging.Float64(logging.FieldScore, best.Score),
		logging.String(logging.FieldConfidence, string(result.Confidence)),
		logging.Int("candidates", len(scored)))
	return result
}

// gather unions exact-key candidates with the duration window, de-duplicated,
// preserving reference order within each bucket. When both buckets miss and
// the policy allows it, the whole collection is scanned instead.
func (c *Classifier) gather(query catalog.NameRecord) []*catalog.NameRecord {
	seen := make(map[*catalog.NameRecord]struct{})
	var out []*catalog.NameRecord

	add := func(records []*catalog.NameRecord) {
		for _, rec := range records {
			if _, ok := seen[rec]; ok {
				continue
			}
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}

	add(c.index.ByKey(query.Key))
	if query.Duration > 0 {
		add(c.index.ByDurationRange(query.Duration, c.policy.DurationTolerance))
	}
	if len(out) == 0 && c.policy.ScanAllOnMiss {
		add(c.index.All())
	}
	return out
}

// Summary tallies one batch by outcome bucket.
type Summary struct {
	Match   int `json:"match"`
	Review  int `json:"review"`
	NoMatch int `json:"no_match"`
	Skipped int `json:"skipped"`
}

// Total returns the number of queries the summary covers.
func (s Summary) Total() int {
	return s.Match + s.Review + s.NoMatch + s.Skipped
}

// Add counts one result into the summary.
func (s *Summary) Add(result Result) {
	switch result.Confidence {
	case ConfidenceMatch:
		s.Match++
	case ConfidenceReview:
		s.Review++
	case ConfidenceSkipped:
		s.Skipped++
	default:
		s.NoMatch++
	}
}
