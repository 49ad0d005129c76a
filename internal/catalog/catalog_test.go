// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/models"
)

func sampleMovies() []models.Movie {
	return []models.Movie{
		{ID: 10, Title: "Alien", Genres: []string{"Horror"}},
		{ID: 20, Title: "Aliens"},
		{ID: 30, Title: "Prometheus"},
		{ID: 40, Title: "Covenant"},
		{ID: 50, Title: "Predator"},
	}
}

func TestNew_Lookups(t *testing.T) {
	t.Parallel()

	c, err := New(sampleMovies())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Len() != 5 {
		t.Errorf("Len = %d", c.Len())
	}

	m, err := c.ByID(30)
	if err != nil || m.Title != "Prometheus" {
		t.Errorf("ByID(30) = %+v, %v", m, err)
	}
	m, err = c.ByTitle("Aliens")
	if err != nil || m.ID != 20 {
		t.Errorf("ByTitle(Aliens) = %+v, %v", m, err)
	}
	m, err = c.ByIndex(4)
	if err != nil || m.ID != 50 {
		t.Errorf("ByIndex(4) = %+v, %v", m, err)
	}
	i, err := c.IndexOf(40)
	if err != nil || i != 3 {
		t.Errorf("IndexOf(40) = %d, %v", i, err)
	}
	if !c.Contains(10) || c.Contains(11) {
		t.Error("Contains mismatch")
	}
}

func TestLookups_UnknownItem(t *testing.T) {
	t.Parallel()

	c, err := New(sampleMovies())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		fn   func() error
	}{
		{"ByID", func() error { _, err := c.ByID(999); return err }},
		{"ByTitle", func() error { _, err := c.ByTitle("alien"); return err }},
		{"ByIndex negative", func() error { _, err := c.ByIndex(-1); return err }},
		{"ByIndex past end", func() error { _, err := c.ByIndex(5); return err }},
		{"IndexOf", func() error { _, err := c.IndexOf(0); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, models.ErrUnknownItem) {
				t.Errorf("expected ErrUnknownItem, got %v", err)
			}
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		movies []models.Movie
	}{
		{"empty", nil},
		{"blank title", []models.Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "  "}}},
		{"duplicate id", []models.Movie{{ID: 1, Title: "A"}, {ID: 1, Title: "B"}}},
		{"duplicate title", []models.Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "A"}}},
		{"zero id", []models.Movie{{ID: 1, Title: "A"}, {ID: 0, Title: "B"}}},
		{"negative id", []models.Movie{{ID: -7, Title: "A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tt.movies); !errors.Is(err, models.ErrDataUnavailable) {
				t.Errorf("expected ErrDataUnavailable, got %v", err)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	movies := sampleMovies()
	c, err := New(movies)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	movies[0].Title = "Changed"

	if m, _ := c.ByIndex(0); m.Title != "Alien" {
		t.Errorf("catalog shares caller slice: %q", m.Title)
	}

	items := c.Items()
	items[1].Title = "Mutated"
	if m, _ := c.ByIndex(1); m.Title != "Aliens" {
		t.Errorf("Items() exposes internal slice: %q", m.Title)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "movies.json")
	body := `[
		{"movie_id": 19995, "title": "Avatar", "genres": ["Action", "Adventure"]},
		{"movie_id": 285, "title": "Pirates of the Caribbean: At World's End"}
	]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d", c.Len())
	}
	if m, _ := c.ByTitle("Avatar"); len(m.Genres) != 2 {
		t.Errorf("genres not decoded: %+v", m)
	}
}

func TestLoad_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"not": "an array"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	noID := filepath.Join(dir, "no_id.json")
	if err := os.WriteFile(noID, []byte(`[{"title": "Avatar"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.json"), bad, noID} {
		if _, err := Load(path); !errors.Is(err, models.ErrDataUnavailable) {
			t.Errorf("Load(%s): expected ErrDataUnavailable, got %v", path, err)
		}
	}

	if _, err := Read(strings.NewReader("[")); !errors.Is(err, models.ErrDataUnavailable) {
		t.Errorf("truncated JSON: expected ErrDataUnavailable, got %v", err)
	}
}

func TestPage(t *testing.T) {
	t.Parallel()

	c, err := New(sampleMovies())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name      string
		offset    int
		limit     int
		wantIDs   []int
		wantMore  bool
		wantLimit int
	}{
		{"first page", 0, 2, []int{10, 20}, true, 2},
		{"last partial page", 4, 2, []int{50}, false, 2},
		{"exact end", 3, 2, []int{40, 50}, false, 2},
		{"past end", 9, 2, nil, false, 2},
		{"default limit", 0, 0, []int{10, 20, 30, 40, 50}, false, DefaultPageSize},
		{"negative offset", -3, 1, []int{10}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, info := c.Page(tt.offset, tt.limit)
			if len(page) != len(tt.wantIDs) {
				t.Fatalf("page len = %d, want %d", len(page), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if page[i].ID != id {
					t.Errorf("page[%d].ID = %d, want %d", i, page[i].ID, id)
				}
			}
			if info.HasMore != tt.wantMore || info.Total != 5 || info.Limit != tt.wantLimit {
				t.Errorf("info = %+v", info)
			}
		})
	}
}
