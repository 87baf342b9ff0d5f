// Package sqlite keeps the local state bdlens needs between runs in a single
// database at <config dir>/data/session.db: the session cookie for each
// gateway origin, and the ledger of files the inbox watcher has uploaded.
//
// The driver is modernc.org/sqlite, so builds need no cgo. The schema is
// applied from the embedded migrations on open, and the database runs in WAL
// mode so the TUI and a watcher can share it.
package sqlite
