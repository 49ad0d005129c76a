// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"strings"
	"time"
)

// QueryLogEntry is one row of the append-only recommendations table.
// Entries are never updated or deleted once written.
type QueryLogEntry struct {
	// ID is assigned by the store on write.
	ID int64 `json:"id"`

	UserID            int    `json:"user_id"`
	MovieName         string `json:"movie_name"`
	UserQuery         string `json:"user_query"`
	RecommendedMovies string `json:"recommended_movies"`

	// CreatedAt is assigned by the store on write.
	CreatedAt time.Time `json:"created_at"`
}

// FormatRecommended serializes recommended titles for the recommended_movies
// column as "[A, B, C]". The form is stable and readable, not meant to be
// parsed back.
func FormatRecommended(titles []string) string {
	return "[" + strings.Join(titles, ", ") + "]"
}
