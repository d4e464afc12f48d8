// Package library reads the song catalog out of the music server's SQLite
// database and records matching runs in side tables.
//
// The media_file table is owned by the music server; this package only reads
// it. Run history lives in match_run and match_result, created on first open
// and invisible to the server.
package library
