// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tomtom215/reelmatch/internal/querylog/migrations"
)

// NewPostgresStore connects to PostgreSQL and applies the schema.
func NewPostgresStore(dsn string) (Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := newSQLStore(db, dialect{name: BackendPostgres, placeholder: dollarSign})
	schema, err := migrations.Postgres.ReadFile("postgres/001_init.sql")
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
