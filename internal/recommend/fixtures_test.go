// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Movie ids for the six-movie fixture catalog, A..F at indexes 0..5.
const (
	idA = 101
	idB = 102
	idC = 103
	idD = 104
	idE = 105
	idF = 106
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]models.Movie{
		{ID: idA, Title: "A"},
		{ID: idB, Title: "B"},
		{ID: idC, Title: "C"},
		{ID: idD, Title: "D"},
		{ID: idE, Title: "E"},
		{ID: idF, Title: "F"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

// matrixWithRowA builds a 6x6 matrix: identity except row 0, which is rowA.
func matrixWithRowA(rowA []float64) [][]float64 {
	rows := make([][]float64, 6)
	for i := range rows {
		rows[i] = make([]float64, 6)
		rows[i][i] = 1
	}
	rows[0] = rowA
	return rows
}

func testIndex(t *testing.T, name string, cat *catalog.Catalog, rowA []float64) *similarity.Index {
	t.Helper()
	idx, err := similarity.FromRows(name, cat, matrixWithRowA(rowA), similarity.Options{})
	if err != nil {
		t.Fatalf("FromRows(%s): %v", name, err)
	}
	return idx
}

// testSignals registers tags (B C D E F) and genres (B E F D C) for movie A.
func testSignals(t *testing.T, cat *catalog.Catalog) *Signals {
	t.Helper()
	s, err := NewSignals(
		Signal{Name: "tags", Label: "are", Source: testIndex(t, "tags", cat, []float64{1, 0.9, 0.8, 0.7, 0.6, 0.5})},
		Signal{Name: "genres", Label: "on the basis of genres are", Source: testIndex(t, "genres", cat, []float64{1, 0.95, 0.1, 0.2, 0.9, 0.3})},
	)
	if err != nil {
		t.Fatalf("NewSignals: %v", err)
	}
	return s
}

// errSource fails every lookup.
type errSource struct{ err error }

func (s errSource) Neighbors(int) ([]models.Candidate, error) { return nil, s.err }

// fakeRecorder captures query log entries.
type fakeRecorder struct {
	mu      sync.Mutex
	entries []models.QueryLogEntry
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, e models.QueryLogEntry) (models.QueryLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return models.QueryLogEntry{}, r.err
	}
	e.ID = int64(len(r.entries) + 1)
	e.CreatedAt = time.Now()
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *fakeRecorder) all() []models.QueryLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.QueryLogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

var errBoom = errors.New("boom")

func titlesOf(items []models.Candidate) []string {
	return models.CandidateTitles(items)
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
