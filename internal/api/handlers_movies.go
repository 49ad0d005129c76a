// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/models"
)

// MoviesRequest pages through the catalog.
type MoviesRequest struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=1,max=100"`
}

// MoviesResponse is one catalog page.
type MoviesResponse struct {
	Movies []models.Movie  `json:"movies"`
	Page   models.PageInfo `json:"page"`
}

// Movies handles GET /api/v1/movies?offset=&limit=.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := MoviesRequest{
		Offset: getIntParam(r, "offset", 0),
		Limit:  getIntParam(r, "limit", catalog.DefaultPageSize),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	movies, page := h.catalog.Page(req.Offset, req.Limit)
	respondData(w, MoviesResponse{Movies: movies, Page: page}, start)
}

// Movie handles GET /api/v1/movies/{id}.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Movie id must be a positive integer", nil)
		return
	}

	movie, err := h.catalog.ByID(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respondData(w, movie, start)
}

// MovieLookup handles GET /api/v1/movies/lookup?title=.
func (h *Handler) MovieLookup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	title := r.URL.Query().Get("title")
	if title == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "title is required", nil)
		return
	}

	movie, err := h.catalog.ByTitle(title)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respondData(w, movie, start)
}

func respondLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrUnknownItem) {
		respondError(w, http.StatusNotFound, "UNKNOWN_ITEM", err.Error(), nil)
		return
	}
	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Catalog lookup failed", err)
}
