// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/evaluation"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// RecommendRequest selects a movie by id or exact title.
type RecommendRequest struct {
	UserID  *int   `json:"user_id" validate:"omitempty,min=0"`
	MovieID int    `json:"movie_id" validate:"min=0"`
	Title   string `json:"title" validate:"max=500"`
	Query   string `json:"query" validate:"max=1000"`
	Limit   int    `json:"limit" validate:"min=0,max=100"`
}

// SignalList is one titled recommendation list.
type SignalList struct {
	Signal  string             `json:"signal"`
	Heading string             `json:"heading"`
	Items   []models.Candidate `json:"items"`
}

// RecommendResponse is the body of a successful recommendation request.
type RecommendResponse struct {
	RequestID string                `json:"request_id"`
	Movie     models.Movie          `json:"movie"`
	Signals   []SignalList          `json:"signals"`
	Primary   []models.Candidate    `json:"primary"`
	Relevance string                `json:"relevance"`
	Metrics   evaluation.Result     `json:"metrics"`
	Logged    bool                  `json:"logged"`
	LogEntry  *models.QueryLogEntry `json:"log_entry,omitempty"`
	LogError  string                `json:"log_error,omitempty"`
}

// SignalInfo describes one configured signal.
type SignalInfo struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Primary bool   `json:"primary"`
}

// Heading is the title printed above a signal's list.
func Heading(label string) string {
	return "Best Recommendations " + label
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	userID := h.defaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	out, err := h.engine.Interact(ctx, recommend.Interaction{
		UserID:  userID,
		MovieID: req.MovieID,
		Title:   req.Title,
		Query:   req.Query,
		Limit:   req.Limit,
	})
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).
			Int("movie_id", req.MovieID).
			Str("title", sanitizeLogValue(req.Title)).
			Msg("Recommendation request failed")
		respondEngineError(w, err)
		return
	}

	resp := RecommendResponse{
		RequestID: out.RequestID,
		Movie:     out.Movie,
		Signals:   make([]SignalList, len(out.Results)),
		Primary:   out.Primary,
		Relevance: out.Relevance,
		Metrics:   out.Metrics,
		Logged:    out.LogEntry != nil,
		LogEntry:  out.LogEntry,
	}
	for i, sr := range out.Results {
		resp.Signals[i] = SignalList{Signal: sr.Signal, Heading: Heading(sr.Label), Items: sr.Items}
	}
	if out.LogError != nil {
		resp.LogError = out.LogError.Error()
	}

	respondData(w, resp, start)
}

// Signals handles GET /api/v1/recommendations/signals.
func (h *Handler) Signals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	list := h.engine.Signals().List()
	infos := make([]SignalInfo, len(list))
	for i, sig := range list {
		infos[i] = SignalInfo{Name: sig.Name, Label: sig.Label, Primary: i == 0}
	}
	respondData(w, infos, start)
}
