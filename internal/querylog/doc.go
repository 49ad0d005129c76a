// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package querylog persists one row per recommendation request to the
// append-only recommendations table.
//
// # Backends
//
// NewStore picks a backend from the DSN:
//
//	""                          SQLite at data/reelmatch.db
//	"queries.db"                SQLite
//	"duckdb://data/log.duckdb"  DuckDB
//	"postgres://user@host/db"   PostgreSQL
//	"badger://data/querylog"    BadgerDB
//
// SQL backends apply their schema from embedded migrations when opened.
// Each Record takes its own connection from the pool and returns it before
// the call ends.
//
// # Failure Handling
//
// Recorder puts a circuit breaker in front of Store.Record. A failed write is
// returned as *models.PersistenceError; nothing is retried or queued.
package querylog
