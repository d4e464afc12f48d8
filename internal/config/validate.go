package config

import (
	"fmt"
	"strings"

	"refrain/internal/match"
)

// Validate rejects configurations the engine cannot run with. Directory
// existence is deliberately not checked here; workflows report missing
// sources themselves so one bad lyrics directory does not block the rest.
func (c *Config) Validate() error {
	var problems []string

	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Matching.NameThreshold > 0 && c.Matching.NameThreshold <= 1,
		"matching.name_threshold must be in (0, 1], got %v", c.Matching.NameThreshold)
	check(c.Matching.FingerprintThreshold > 0 && c.Matching.FingerprintThreshold <= 1,
		"matching.fingerprint_threshold must be in (0, 1], got %v", c.Matching.FingerprintThreshold)
	check(c.Matching.DurationTolerance > 0,
		"matching.duration_tolerance must be positive, got %v", c.Matching.DurationTolerance)
	check(c.Matching.MatchThreshold > 0,
		"matching.match_threshold must be positive, got %v", c.Matching.MatchThreshold)
	check(c.Matching.ReviewThreshold > 0 && c.Matching.ReviewThreshold <= c.Matching.MatchThreshold,
		"matching.review_threshold must be positive and not above match_threshold, got %v", c.Matching.ReviewThreshold)
	check(c.Lyrics.ReviewThreshold <= c.Lyrics.MatchThreshold,
		"lyrics.review_threshold must not exceed lyrics.match_threshold")
	check(c.Matching.TitleWeight > 0,
		"matching.title_weight must be positive, got %v", c.Matching.TitleWeight)
	check(c.Matching.Workers >= 1 && c.Matching.Workers <= 64,
		"matching.workers must be between 1 and 64, got %d", c.Matching.Workers)

	for source, dir := range c.Lyrics.Sources {
		check(strings.TrimSpace(source) != "", "lyrics.sources contains an empty source name")
		check(strings.TrimSpace(dir) != "", "lyrics.sources[%q] has an empty directory", source)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", match.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}
