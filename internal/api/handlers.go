// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/querylog"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// DefaultRequestTimeout bounds one recommendation request.
const DefaultRequestTimeout = 10 * time.Second

// QueryLog is the read side of the query log. *querylog.Recorder implements it.
type QueryLog interface {
	List(ctx context.Context, opts querylog.ListOptions) ([]models.QueryLogEntry, error)
	Count(ctx context.Context) (int, error)
	Backend() string
}

// breakerState is implemented by query logs that sit behind a circuit breaker.
type breakerState interface {
	State() string
}

// Handler contains dependencies for the API handlers.
//
// Handler methods are split across files:
//   - handlers_helpers.go: response and parsing helpers
//   - handlers_recommend.go: recommendations and signals
//   - handlers_evaluate.go: ad-hoc metric evaluation
//   - handlers_movies.go: catalog browsing and lookup
//   - handlers_querylog.go: query log listing
//   - handlers_health.go: probes and stats
type Handler struct {
	engine        *recommend.Engine
	catalog       *catalog.Catalog
	queryLog      QueryLog
	perfMon       *middleware.PerformanceMonitor
	defaultUserID int
	timeout       time.Duration
	startTime     time.Time
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithQueryLog enables the query log listing endpoint.
func WithQueryLog(ql QueryLog) HandlerOption {
	return func(h *Handler) { h.queryLog = ql }
}

// WithDefaultUserID sets the user id used when a request names none.
func WithDefaultUserID(id int) HandlerOption {
	return func(h *Handler) { h.defaultUserID = id }
}

// WithRequestTimeout bounds each recommendation request.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHandler creates the API handler. The engine and catalog are required.
func NewHandler(engine *recommend.Engine, cat *catalog.Catalog, opts ...HandlerOption) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("recommendation engine is required")
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}

	h := &Handler{
		engine:        engine,
		catalog:       cat,
		perfMon:       middleware.NewPerformanceMonitor(1000),
		defaultUserID: 1,
		timeout:       DefaultRequestTimeout,
		startTime:     time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// PerformanceMonitor returns the monitor fed by the API middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// respondEngineError maps an engine error onto a status and code.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownItem):
		respondError(w, http.StatusNotFound, "UNKNOWN_ITEM", err.Error(), nil)
	case errors.Is(err, recommend.ErrNoSelection):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out", err)
	case errors.Is(err, models.ErrDataUnavailable):
		respondError(w, http.StatusInternalServerError, "DATA_UNAVAILABLE", "Similarity data unavailable", err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate recommendations", err)
	}
}
