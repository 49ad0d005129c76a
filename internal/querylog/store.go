// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package querylog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Backend names reported by Store.Backend and used as metric labels.
const (
	BackendSQLite   = "sqlite"
	BackendDuckDB   = "duckdb"
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
)

// ErrClosed is returned by a store after Close.
var ErrClosed = errors.New("query log store closed")

// Store is an append-only log of recommendation queries.
type Store interface {
	// Record inserts one entry and returns it with ID and CreatedAt assigned.
	Record(ctx context.Context, entry models.QueryLogEntry) (models.QueryLogEntry, error)

	// List returns entries in insertion order (or newest first).
	List(ctx context.Context, opts ListOptions) ([]models.QueryLogEntry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Backend names the storage engine.
	Backend() string

	Close() error
}

// ListOptions controls List paging. A zero Limit returns every entry.
type ListOptions struct {
	Limit       int
	Offset      int
	NewestFirst bool
}

// dialect captures the SQL differences between backends.
type dialect struct {
	name        string
	placeholder func(n int) string
}

var (
	questionMark = func(int) string { return "?" }
	dollarSign   = func(n int) string { return fmt.Sprintf("$%d", n) }
)

// sqlStore implements Store over database/sql.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func newSQLStore(db *sql.DB, d dialect) *sqlStore {
	return &sqlStore{db: db, dialect: d, now: time.Now}
}

func (s *sqlStore) Backend() string { return s.dialect.name }

// Record acquires a dedicated connection for the single insert and releases
// it before returning. No transaction outlives the call.
func (s *sqlStore) Record(ctx context.Context, entry models.QueryLogEntry) (models.QueryLogEntry, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return models.QueryLogEntry{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer closeQuietly(conn)

	// Postgres and DuckDB keep microseconds; truncating up front keeps the
	// returned entry equal to what a later read sees.
	entry.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	p := s.dialect.placeholder
	query := fmt.Sprintf(
		`INSERT INTO recommendations (user_id, movie_name, user_query, recommended_movies, created_at)
		VALUES (%s, %s, %s, %s, %s) RETURNING id`,
		p(1), p(2), p(3), p(4), p(5))

	err = conn.QueryRowContext(ctx, query,
		entry.UserID, entry.MovieName, entry.UserQuery, entry.RecommendedMovies, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return models.QueryLogEntry{}, fmt.Errorf("insert recommendation: %w", err)
	}
	return entry, nil
}

func (s *sqlStore) List(ctx context.Context, opts ListOptions) ([]models.QueryLogEntry, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, user_id, movie_name, user_query, recommended_movies, created_at FROM recommendations ORDER BY id`)
	if opts.NewestFirst {
		b.WriteString(" DESC")
	}

	// Paging values are ints, so they are formatted inline; not every
	// dialect accepts parameters in LIMIT.
	if opts.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 && s.dialect.name == BackendSQLite {
			// SQLite only accepts OFFSET after LIMIT.
			b.WriteString(" LIMIT -1")
		}
		fmt.Fprintf(&b, " OFFSET %d", opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer closeQuietly(rows)

	var entries []models.QueryLogEntry
	for rows.Next() {
		var e models.QueryLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.MovieName, &e.UserQuery, &e.RecommendedMovies, timeScanner{&e.CreatedAt}); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return entries, nil
}

func (s *sqlStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recommendations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recommendations: %w", err)
	}
	return n, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// migrate applies the embedded schema one statement at a time.
func (s *sqlStore) migrate(schema []byte) error {
	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply %s schema: %w", s.dialect.name, err)
		}
	}
	return nil
}

// timeScanner accepts the timestamp representations the SQL drivers return.
type timeScanner struct {
	t *time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func (s timeScanner) Scan(v interface{}) error {
	switch x := v.(type) {
	case nil:
		*s.t = time.Time{}
	case time.Time:
		*s.t = x.UTC()
	case string:
		return s.parse(x)
	case []byte:
		return s.parse(string(x))
	case int64:
		*s.t = time.Unix(x, 0).UTC()
	default:
		return fmt.Errorf("unsupported timestamp type %T", v)
	}
	return nil
}

func (s timeScanner) parse(v string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", v)
}

type closer interface {
	Close() error
}

func closeQuietly(c closer) {
	_ = c.Close() //nolint:errcheck
}
