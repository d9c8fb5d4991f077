// Package sqlite provides a SQLite-based implementation of driven.KVStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. UI state (sidebar, theme) and autosaved form drafts are rows of a single
// kv table.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ims/state/state.db
package sqlite
