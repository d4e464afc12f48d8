package match

// Weights are the per-signal point caps. A signal's similarity in [0,1] is
// multiplied by its weight before joining the total.
type Weights struct {
	Title       float64
	Artist      float64
	Duration    float64
	Fingerprint float64
}

// DefaultWeights mirrors the point scale the thresholds were tuned against.
func DefaultWeights() Weights {
	return Weights{
		Title:       40,
		Artist:      30,
		Duration:    20,
		Fingerprint: 30,
	}
}

// Policy centralizes scoring weights, signal thresholds and classification
// cutoffs for one matching run.
type Policy struct {
	Weights Weights

	// NameThreshold is the minimum similarity ratio before a title or artist
	// signal contributes at all.
	NameThreshold float64
	// DurationTolerance is the window, in seconds, for the duration signal
	// and for candidate gathering.
	DurationTolerance float64
	// FingerprintThreshold is the minimum bit similarity before the
	// fingerprint signal contributes.
	FingerprintThreshold float64
	// FingerprintGate is the running score a candidate must reach before
	// fingerprints are extracted at all. Keeps the expensive signal off
	// unlikely candidates.
	FingerprintGate float64

	// MatchThreshold and ReviewThreshold bucket the best candidate's total:
	// >= MatchThreshold is Match, >= ReviewThreshold is Review, below is
	// NoMatch.
	MatchThreshold  float64
	ReviewThreshold float64

	// TopCandidates caps how many scored candidates a result retains.
	TopCandidates int

	// ScanAllOnMiss scores the entire reference collection when neither the
	// key bucket nor the duration window yields a candidate. Used by the
	// lyrics workflow, where queries carry no duration and near-miss titles
	// would otherwise never be found.
	ScanAllOnMiss bool
}

// DefaultPolicy returns the deduplication defaults.
func DefaultPolicy() Policy {
	return Policy{
		Weights:              DefaultWeights(),
		NameThreshold:        0.6,
		DurationTolerance:    3.0,
		FingerprintThreshold: 0.7,
		FingerprintGate:      50,
		MatchThreshold:       70,
		ReviewThreshold:      50,
		TopCandidates:        5,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()

	if p.Weights.Title <= 0 {
		p.Weights.Title = d.Weights.Title
	}
	if p.Weights.Artist < 0 {
		p.Weights.Artist = d.Weights.Artist
	}
	if p.Weights.Duration < 0 {
		p.Weights.Duration = d.Weights.Duration
	}
	if p.Weights.Fingerprint < 0 {
		p.Weights.Fingerprint = d.Weights.Fingerprint
	}
	if p.NameThreshold <= 0 || p.NameThreshold > 1 {
		p.NameThreshold = d.NameThreshold
	}
	if p.DurationTolerance <= 0 {
		p.DurationTolerance = d.DurationTolerance
	}
	if p.FingerprintThreshold <= 0 || p.FingerprintThreshold > 1 {
		p.FingerprintThreshold = d.FingerprintThreshold
	}
	if p.FingerprintGate <= 0 {
		p.FingerprintGate = d.FingerprintGate
	}
	if p.MatchThreshold <= 0 {
		p.MatchThreshold = d.MatchThreshold
	}
	if p.ReviewThreshold <= 0 || p.ReviewThreshold > p.MatchThreshold {
		p.ReviewThreshold = min(d.ReviewThreshold, p.MatchThreshold)
	}
	if p.TopCandidates <= 0 {
		p.TopCandidates = d.TopCandidates
	}
	return p
}
