// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command querylog prints every row of the recommendations table, one
// tab-separated line per query, oldest first. It reads the same
// configuration as the server, so QUERYLOG_DSN selects the store.
//
//	QUERYLOG_DSN=duckdb://data/reelmatch.duckdb ./querylog
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/querylog"
)

// header names the columns in output order.
var header = []string{"id", "user_id", "movie_name", "user_query", "recommended_movies", "created_at"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: "console", Timestamp: true})

	if err := run(cfg.QueryLog); err != nil {
		logging.Fatal().Err(err).Str("dsn", cfg.QueryLog.RedactedDSN()).Msg("Failed to dump query log")
	}
}

func run(cfg config.QueryLogConfig) error {
	store, err := querylog.NewStore(cfg.DSN)
	if err != nil {
		return fmt.Errorf("open query log: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing query log")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return dump(ctx, store, os.Stdout)
}

// dump writes a header line and then every entry in insertion order.
func dump(ctx context.Context, store querylog.Store, w io.Writer) error {
	entries, err := store.List(ctx, querylog.ListOptions{})
	if err != nil {
		return fmt.Errorf("list recommendations: %w", err)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, formatRow(e)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatRow(e models.QueryLogEntry) string { //nolint:gocritic // hugeParam
	return strings.Join([]string{
		strconv.FormatInt(e.ID, 10),
		strconv.Itoa(e.UserID),
		cleanField(e.MovieName),
		cleanField(e.UserQuery),
		cleanField(e.RecommendedMovies),
		e.CreatedAt.UTC().Format(time.RFC3339),
	}, "\t")
}

// cleanField keeps free text from breaking the line-per-row layout.
func cleanField(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}
