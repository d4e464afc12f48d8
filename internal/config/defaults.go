package config

import "refrain/internal/match"

// Default returns the built-in configuration values.
func Default() Config {
	policy := match.DefaultPolicy()
	return Config{
		Paths: Paths{
			LibraryDB:    "~/.local/share/refrain/library.db",
			LibraryDir:   "~/Music/library",
			DownloadsDir: "~/Music/downloads",
			UploadDir:    "~/Music/upload",
			ReportDir:    "~/.local/share/refrain/reports",
			LogDir:       "~/.local/share/refrain/logs",
		},
		Matching: Matching{
			NameThreshold:        policy.NameThreshold,
			DurationTolerance:    policy.DurationTolerance,
			FingerprintThreshold: policy.FingerprintThreshold,
			FingerprintGate:      policy.FingerprintGate,
			MatchThreshold:       policy.MatchThreshold,
			ReviewThreshold:      policy.ReviewThreshold,
			TopCandidates:        policy.TopCandidates,
			Workers:              1,
			TitleWeight:          policy.Weights.Title,
			ArtistWeight:         policy.Weights.Artist,
			DurationWeight:       policy.Weights.Duration,
			FingerprintWeight:    policy.Weights.Fingerprint,
		},
		Lyrics: Lyrics{
			Sources:    map[string]string{},
			MappingCSV: "lyrics_mapping.csv",
			// Lyrics queries carry no duration or fingerprint, so most files
			// can only earn title points. An exact or contained title alone
			// must clear the match bar.
			MatchThreshold:  35,
			ReviewThreshold: 25,
		},
		Tools: Tools{
			FFprobe:            "ffprobe",
			Fpcalc:             "fpcalc",
			FFprobeTimeoutSecs: 10,
			FpcalcTimeoutSecs:  30,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// MatchPolicy converts the matching section into the engine policy used by
// the deduplication workflow.
func (c *Config) MatchPolicy() match.Policy {
	return match.Policy{
		Weights: match.Weights{
			Title:       c.Matching.TitleWeight,
			Artist:      c.Matching.ArtistWeight,
			Duration:    c.Matching.DurationWeight,
			Fingerprint: c.Matching.FingerprintWeight,
		},
		NameThreshold:        c.Matching.NameThreshold,
		DurationTolerance:    c.Matching.DurationTolerance,
		FingerprintThreshold: c.Matching.FingerprintThreshold,
		FingerprintGate:      c.Matching.FingerprintGate,
		MatchThreshold:       c.Matching.MatchThreshold,
		ReviewThreshold:      c.Matching.ReviewThreshold,
		TopCandidates:        c.Matching.TopCandidates,
	}
}

// LyricsPolicy converts the lyrics section into the engine policy used by the
// lyrics matching workflow. Lyrics queries have no duration signal, so misses
// fall back to scanning the whole collection.
func (c *Config) LyricsPolicy() match.Policy {
	policy := c.MatchPolicy()
	policy.MatchThreshold = c.Lyrics.MatchThreshold
	policy.ReviewThreshold = c.Lyrics.ReviewThreshold
	policy.ScanAllOnMiss = true
	return policy
}
