// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

// Movie is a catalog entry.
//
// ID is the canonical key and the identity expected by the poster and cast
// lookup collaborators. Title is unique within a catalog so selection by
// title is unambiguous. All remaining fields are descriptive and opaque to
// the ranking core.
type Movie struct {
	ID          int      `json:"movie_id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Cast        []int    `json:"cast,omitempty"`
	Director    string   `json:"director,omitempty"`
	Companies   []string `json:"production_companies,omitempty"`
	Languages   []string `json:"spoken_languages,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Runtime     int      `json:"runtime,omitempty"`
	Budget      int64    `json:"budget,omitempty"`
	Revenue     int64    `json:"revenue,omitempty"`
	VoteAverage float64  `json:"vote_average,omitempty"`
	VoteCount   int      `json:"vote_count,omitempty"`
}

// Candidate is a movie ranked by one similarity signal.
//
// Index is the movie's row/column position in the catalog and is the
// tie-breaker when scores are equal.
type Candidate struct {
	MovieID int     `json:"movie_id"`
	Title   string  `json:"title"`
	Index   int     `json:"-"`
	Score   float64 `json:"score"`
}

// CandidateIDs returns the movie ids of candidates in order.
func CandidateIDs(candidates []Candidate) []int {
	ids := make([]int, len(candidates))
	for i, c := range candidates {
		ids[i] = c.MovieID
	}
	return ids
}

// CandidateTitles returns the titles of candidates in order.
func CandidateTitles(candidates []Candidate) []string {
	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}
	return titles
}
