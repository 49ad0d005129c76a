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
	"strings"

	_ "modernc.org/sqlite"

	"github.com/tomtom215/reelmatch/internal/querylog/migrations"
)

// NewSQLiteStore opens (creating if needed) a SQLite query log at path.
func NewSQLiteStore(path string) (Store, error) {
	if path == "" {
		path = DefaultDSN
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; also keeps a :memory: database alive across calls.
	db.SetMaxOpenConns(1)

	s := newSQLStore(db, dialect{name: BackendSQLite, placeholder: questionMark})
	schema, err := migrations.SQLite.ReadFile("sqlite/001_init.sql")
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
