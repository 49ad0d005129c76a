// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package querylog

import (
	"fmt"
	"strings"
)

// DefaultDSN is the SQLite file used when no DSN is configured.
const DefaultDSN = "data/reelmatch.db"

// NewStore opens the query log store selected by the DSN:
//   - empty: SQLite at DefaultDSN
//   - postgres:// or postgresql://: PostgreSQL
//   - duckdb://path or a path ending in .duckdb: DuckDB
//   - badger://dir: BadgerDB
//   - sqlite://path or anything else: SQLite at that path
func NewStore(dsn string) (Store, error) {
	switch {
	case dsn == "":
		return NewSQLiteStore(DefaultDSN)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		s, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return s, nil
	case strings.HasPrefix(dsn, "duckdb://"):
		return NewDuckDBStore(strings.TrimPrefix(dsn, "duckdb://"))
	case strings.HasSuffix(dsn, ".duckdb"):
		return NewDuckDBStore(dsn)
	case strings.HasPrefix(dsn, "badger://"):
		return NewBadgerStore(strings.TrimPrefix(dsn, "badger://"))
	case strings.HasPrefix(dsn, "sqlite://"):
		return NewSQLiteStore(strings.TrimPrefix(dsn, "sqlite://"))
	}
	return NewSQLiteStore(dsn)
}

// BackendFor reports which backend NewStore would pick for dsn without opening it.
func BackendFor(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(dsn, "duckdb://"), strings.HasSuffix(dsn, ".duckdb"):
		return BackendDuckDB
	case strings.HasPrefix(dsn, "badger://"):
		return BackendBadger
	}
	return BackendSQLite
}
