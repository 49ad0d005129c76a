// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateDSN checks the query log DSN shapes that can be rejected without
// opening a connection. Plain paths are accepted as SQLite files.
func validateDSN(dsn string) error {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return validatePostgresURL(dsn)
	case strings.HasPrefix(dsn, "badger://"):
		if strings.TrimPrefix(dsn, "badger://") == "" {
			return fmt.Errorf("badger DSN needs a directory, e.g. badger://data/querylog")
		}
	case strings.HasPrefix(dsn, "duckdb://"):
		if strings.TrimPrefix(dsn, "duckdb://") == "" {
			return fmt.Errorf("duckdb DSN needs a file path, e.g. duckdb://data/querylog.duckdb")
		}
	case strings.Contains(dsn, "://") && !strings.HasPrefix(dsn, "sqlite://"):
		return fmt.Errorf("unsupported scheme in %q (want postgres, duckdb, badger, sqlite or a file path)", redactDSN(dsn))
	}
	return nil
}

func validatePostgresURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("host is required")
	}
	if strings.Trim(parsed.Path, "/") == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}

// redactDSN strips credentials before a DSN is shown in errors or logs.
func redactDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.User == nil {
		return dsn
	}
	return parsed.Redacted()
}

// RedactedDSN returns the query log DSN with any password masked.
func (q QueryLogConfig) RedactedDSN() string {
	return redactDSN(q.DSN)
}
