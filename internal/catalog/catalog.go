// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog holds the movie catalog: the mapping between movie id,
// title and the row/column index used by every similarity matrix.
//
// The catalog is loaded once at startup and is read-only afterwards, so a
// *Catalog is safe for concurrent use without locking.
package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Catalog is an immutable, indexed set of movies.
// The position of a movie in the source array is its matrix index.
type Catalog struct {
	movies  []models.Movie
	byID    map[int]int
	byTitle map[string]int
}

// Load reads a JSON array of movies from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, models.DataUnavailableError("catalog "+path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Read decodes a JSON array of movies from r.
func Read(r io.Reader) (*Catalog, error) {
	var movies []models.Movie
	if err := json.NewDecoder(r).Decode(&movies); err != nil {
		return nil, models.DataUnavailableError("catalog decode", err)
	}
	return New(movies)
}

// New builds a catalog from movies in index order.
//
// It fails with models.ErrDataUnavailable when the list is empty, a title
// is blank, or an id or title occurs twice.
func New(movies []models.Movie) (*Catalog, error) {
	if len(movies) == 0 {
		return nil, models.DataUnavailableError("catalog is empty", nil)
	}

	c := &Catalog{
		movies:  make([]models.Movie, len(movies)),
		byID:    make(map[int]int, len(movies)),
		byTitle: make(map[string]int, len(movies)),
	}
	copy(c.movies, movies)

	for i, m := range c.movies {
		if strings.TrimSpace(m.Title) == "" {
			return nil, models.DataUnavailableError(fmt.Sprintf("movie at index %d has no title", i), nil)
		}
		if m.ID <= 0 {
			return nil, models.DataUnavailableError(
				fmt.Sprintf("movie %q at index %d has non-positive movie_id %d", m.Title, i, m.ID), nil)
		}
		if prev, dup := c.byID[m.ID]; dup {
			return nil, models.DataUnavailableError(
				fmt.Sprintf("duplicate movie_id %d at index %d and %d", m.ID, prev, i), nil)
		}
		if prev, dup := c.byTitle[m.Title]; dup {
			return nil, models.DataUnavailableError(
				fmt.Sprintf("duplicate title %q at index %d and %d", m.Title, prev, i), nil)
		}
		c.byID[m.ID] = i
		c.byTitle[m.Title] = i
	}

	return c, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// ByID returns the movie with the given id.
func (c *Catalog) ByID(id int) (models.Movie, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Movie{}, models.UnknownItemError("movie_id", id)
	}
	return c.movies[i], nil
}

// ByTitle returns the movie with exactly the given title.
func (c *Catalog) ByTitle(title string) (models.Movie, error) {
	i, ok := c.byTitle[title]
	if !ok {
		return models.Movie{}, models.UnknownItemError("title", title)
	}
	return c.movies[i], nil
}

// ByIndex returns the movie at matrix index i.
func (c *Catalog) ByIndex(i int) (models.Movie, error) {
	if i < 0 || i >= len(c.movies) {
		return models.Movie{}, models.UnknownItemError("index", i)
	}
	return c.movies[i], nil
}

// IndexOf returns the matrix index of the movie with the given id.
func (c *Catalog) IndexOf(id int) (int, error) {
	i, ok := c.byID[id]
	if !ok {
		return -1, models.UnknownItemError("movie_id", id)
	}
	return i, nil
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Items returns a copy of all movies in index order.
func (c *Catalog) Items() []models.Movie {
	out := make([]models.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Titles returns every title in index order.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.movies))
	for i := range c.movies {
		out[i] = c.movies[i].Title
	}
	return out
}

// Page returns up to limit movies starting at offset, along with paging info.
// Out-of-range offsets yield an empty page.
func (c *Catalog) Page(offset, limit int) ([]models.Movie, models.PageInfo) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	info := models.PageInfo{Offset: offset, Limit: limit, Total: len(c.movies)}
	if offset >= len(c.movies) {
		return []models.Movie{}, info
	}

	end := offset + limit
	if end > len(c.movies) {
		end = len(c.movies)
	}
	page := make([]models.Movie, end-offset)
	copy(page, c.movies[offset:end])
	info.HasMore = end < len(c.movies)
	return page, info
}

// DefaultPageSize matches the number of tiles shown per page when browsing
// the catalog.
const DefaultPageSize = 10
