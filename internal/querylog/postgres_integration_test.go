// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

//go:build integration

package querylog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/testinfra"
)

func TestPostgresStore_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg := testinfra.StartPostgres(ctx, t)

	store, err := NewStore(pg.DSN)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Backend() != BackendPostgres {
		t.Fatalf("Backend() = %q, want %q", store.Backend(), BackendPostgres)
	}

	r := NewRecorder(store, DefaultBreakerConfig(), zerolog.Nop())
	defer r.Close()

	var ids []int64
	for _, title := range []string{"Avatar", "Alien", "Avatar"} {
		e, err := r.Record(ctx, entryFor(title))
		if err != nil {
			t.Fatalf("Record(%s): %v", title, err)
		}
		ids = append(ids, e.ID)
	}

	got, err := r.List(ctx, ListOptions{NewestFirst: true, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != ids[2] || got[1].MovieName != "Alien" {
		t.Errorf("List newest first = %+v", got)
	}

	n, err := r.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	// Reopening applies the idempotent schema again.
	again, err := NewStore(pg.DSN)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if n, _ := again.Count(ctx); n != 3 {
		t.Errorf("Count after reopen = %d, want 3", n)
	}
}
