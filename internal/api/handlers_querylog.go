// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/querylog"
)

// QueryLogRequest pages through the query log, newest first.
type QueryLogRequest struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=1,max=500"`
}

// QueryLogResponse is one page of query log entries.
type QueryLogResponse struct {
	Backend string                 `json:"backend"`
	Entries []models.QueryLogEntry `json:"entries"`
	Page    models.PageInfo        `json:"page"`
}

// QueryLogEntries handles GET /api/v1/querylog?offset=&limit=.
func (h *Handler) QueryLogEntries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.queryLog == nil {
		respondError(w, http.StatusServiceUnavailable, "QUERYLOG_DISABLED", "Query logging is disabled", nil)
		return
	}

	req := QueryLogRequest{
		Offset: getIntParam(r, "offset", 0),
		Limit:  getIntParam(r, "limit", 50),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	total, err := h.queryLog.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to read query log", err)
		return
	}

	entries, err := h.queryLog.List(r.Context(), querylog.ListOptions{
		Limit:       req.Limit,
		Offset:      req.Offset,
		NewestFirst: true,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to read query log", err)
		return
	}
	if entries == nil {
		entries = []models.QueryLogEntry{}
	}

	respondData(w, QueryLogResponse{
		Backend: h.queryLog.Backend(),
		Entries: entries,
		Page: models.PageInfo{
			Offset:  req.Offset,
			Limit:   req.Limit,
			Total:   total,
			HasMore: req.Offset+len(entries) < total,
		},
	}, start)
}
