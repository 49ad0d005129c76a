// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/querylog"
)

func TestDump(t *testing.T) {
	t.Parallel()

	store, err := querylog.NewSQLiteStore(filepath.Join(t.TempDir(), "dump.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, title := range []string{"Alien", "Heat"} {
		if _, err := store.Record(ctx, models.QueryLogEntry{
			UserID:            1,
			MovieName:         title,
			UserQuery:         "Recommend movies similar to " + title,
			RecommendedMovies: "[X,\tY]",
		}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := dump(ctx, store, &buf); err != nil {
		t.Fatalf("dump: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), buf.String())
	}
	if lines[0] != strings.Join(header, "\t") {
		t.Errorf("header = %q", lines[0])
	}

	fields := strings.Split(lines[1], "\t")
	if len(fields) != len(header) {
		t.Fatalf("row has %d fields: %q", len(fields), lines[1])
	}
	if fields[0] != "1" || fields[2] != "Alien" || fields[4] != "[X, Y]" {
		t.Errorf("row = %q", fields)
	}
	if !strings.HasPrefix(lines[2], "2\t1\tHeat\t") {
		t.Errorf("second row = %q", lines[2])
	}
}
