// Package match scores query records against a reference index and classifies
// each query as a confident match, a review candidate, or no match.
//
// Candidates are gathered from the index by exact normalized key and by
// duration tolerance window, then scored on a weighted point scale: title
// similarity (up to 40), artist similarity (up to 30), duration closeness
// (up to 20) and, lazily once a candidate already looks plausible, audio
// fingerprint similarity (up to 30). Thresholds bucket the best candidate's
// total: >= 70 Match, >= 50 Review, otherwise NoMatch.
//
// Queries are independent, so the batch runner can spread classification over
// a bounded worker pool; reasons and candidate ordering inside a single result
// stay deterministic either way.
//
// External signal extraction (duration, fingerprints) sits behind the
// DurationProvider and FingerprintProvider interfaces. Providers that fail or
// time out degrade the affected signal to "absent" rather than failing the
// batch.
package match
