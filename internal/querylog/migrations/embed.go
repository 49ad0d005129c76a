// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package migrations embeds the recommendations table schema for each SQL dialect.
package migrations

import "embed"

// SQLite holds the SQLite schema.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

// DuckDB holds the DuckDB schema.
//
//go:embed duckdb/*.sql
var DuckDB embed.FS

// Postgres holds the PostgreSQL schema.
//
//go:embed postgres/*.sql
var Postgres embed.FS
