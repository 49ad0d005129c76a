// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/models"
)

// Catalog is the view of the movie catalog an Index needs.
// *catalog.Catalog satisfies it.
type Catalog interface {
	Len() int
	IndexOf(id int) (int, error)
	ByIndex(i int) (models.Movie, error)
}

// Options tunes neighbor memoisation.
type Options struct {
	// CacheSize is the number of per-movie orderings kept. Zero uses cache.DefaultCapacity.
	CacheSize int

	// CacheTTL expires memoised orderings. Zero keeps them until evicted.
	CacheTTL time.Duration
}

// Index is a loaded similarity matrix bound to a catalog.
type Index struct {
	name    string
	catalog Catalog
	n       int
	scores  []float64
	ranked  *cache.LRU[int, []models.Candidate]
}

// New binds an n×n row-major score slice to cat.
// The slice is owned by the Index afterwards.
func New(name string, cat Catalog, n int, scores []float64, opts Options) (*Index, error) {
	if n != cat.Len() {
		return nil, models.DataUnavailableError(
			fmt.Sprintf("similarity %s: matrix has %d rows, catalog has %d movies", name, n, cat.Len()), nil)
	}
	if len(scores) != n*n {
		return nil, models.DataUnavailableError(
			fmt.Sprintf("similarity %s: expected %d scores for %dx%d, got %d", name, n*n, n, n, len(scores)), nil)
	}
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, models.DataUnavailableError(
				fmt.Sprintf("similarity %s: non-finite score at row %d col %d", name, i/n, i%n), nil)
		}
	}

	return &Index{
		name:    name,
		catalog: cat,
		n:       n,
		scores:  scores,
		ranked:  cache.NewLRU[int, []models.Candidate](opts.CacheSize, opts.CacheTTL),
	}, nil
}

// FromRows builds an Index from a slice of rows, checking that it is square.
func FromRows(name string, cat Catalog, rows [][]float64, opts Options) (*Index, error) {
	scores, err := flatten(name, rows)
	if err != nil {
		return nil, err
	}
	return New(name, cat, len(rows), scores, opts)
}

// Name returns the source name the index was loaded under.
func (x *Index) Name() string {
	return x.name
}

// Len returns the matrix dimension.
func (x *Index) Len() int {
	return x.n
}

// Neighbors returns every movie other than id, most similar first.
// Equal scores are ordered by ascending catalog index.
func (x *Index) Neighbors(id int) ([]models.Candidate, error) {
	row, err := x.catalog.IndexOf(id)
	if err != nil {
		return nil, err
	}

	ranked, err := x.ranked.GetOrCompute(row, func() ([]models.Candidate, error) {
		return x.rank(row)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(ranked), nil
}

// Score returns the similarity of movie a to movie b.
func (x *Index) Score(a, b int) (float64, error) {
	i, err := x.catalog.IndexOf(a)
	if err != nil {
		return 0, err
	}
	j, err := x.catalog.IndexOf(b)
	if err != nil {
		return 0, err
	}
	return x.scores[i*x.n+j], nil
}

// CacheStats reports neighbor memoisation counters.
func (x *Index) CacheStats() cache.Stats {
	return x.ranked.Stats()
}

func (x *Index) rank(row int) ([]models.Candidate, error) {
	base := row * x.n
	out := make([]models.Candidate, 0, x.n-1)
	for col := 0; col < x.n; col++ {
		if col == row {
			continue
		}
		m, err := x.catalog.ByIndex(col)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Candidate{
			MovieID: m.ID,
			Title:   m.Title,
			Index:   col,
			Score:   x.scores[base+col],
		})
	}

	slices.SortFunc(out, compareCandidates)
	return out, nil
}

// compareCandidates orders by score descending, then catalog index ascending.
func compareCandidates(a, b models.Candidate) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	}
	return a.Index - b.Index
}

func flatten(name string, rows [][]float64) ([]float64, error) {
	n := len(rows)
	if n == 0 {
		return nil, models.DataUnavailableError(fmt.Sprintf("similarity %s: empty matrix", name), nil)
	}
	scores := make([]float64, 0, n*n)
	for i, r := range rows {
		if len(r) != n {
			return nil, models.DataUnavailableError(
				fmt.Sprintf("similarity %s: matrix is not square (row %d has %d columns, want %d)", name, i, len(r), n), nil)
		}
		scores = append(scores, r...)
	}
	return scores, nil
}
