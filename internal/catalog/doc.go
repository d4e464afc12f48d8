// Package catalog defines the reference/query record type and the candidate
// index the matching engine looks candidates up in.
//
// An Index is built once per run from the full reference collection and is
// read-only afterwards. Records are bucketed two ways: by normalized title
// key for exact-key candidates, and by whole-second duration bucket for
// tolerance-window lookups.
package catalog
