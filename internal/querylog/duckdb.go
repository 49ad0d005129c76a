// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package querylog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/querylog/migrations"
)

// NewDuckDBStore opens (creating if needed) a DuckDB query log at path.
// An empty path opens an in-memory database.
func NewDuckDBStore(path string) (Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.Ping(); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	s := newSQLStore(db, dialect{name: BackendDuckDB, placeholder: questionMark})
	schema, err := migrations.DuckDB.ReadFile("duckdb/001_init.sql")
	if err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("read migration: %w", err)
	}
	if err := s.migrate(schema); err != nil {
		closeQuietly(db)
		return nil, err
	}
	return s, nil
}
