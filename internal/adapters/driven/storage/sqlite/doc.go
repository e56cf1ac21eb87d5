// Package sqlite persists answer feedback in a local SQLite database,
// by default ~/.lifta/data/feedback.db.
//
// The driver is modernc.org/sqlite, a pure Go port, so builds need no
// CGO and cross-compile cleanly. The database runs in WAL mode and
// relies on SQLite's own locking for concurrent use.
//
// Schema changes ship as numbered .up.sql/.down.sql pairs embedded
// from the migrations/ directory; NewStore applies the pending up
// scripts when it opens the file.
package sqlite
