// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/models"
)

// ReadyStatus is the body of the readiness probe.
type ReadyStatus struct {
	Status   string `json:"status"`
	Movies   int    `json:"movies"`
	Signals  int    `json:"signals"`
	QueryLog string `json:"querylog"`
}

// Stats is the body of GET /api/v1/stats.
type Stats struct {
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Movies        int                        `json:"movies"`
	Signals       []string                   `json:"signals"`
	NeighborCache map[string]cache.Stats     `json:"neighbor_cache"`
	Endpoints     []middleware.EndpointStats `json:"endpoints"`
	QueryLog      *QueryLogStats             `json:"querylog,omitempty"`
}

// QueryLogStats summarises the query log.
type QueryLogStats struct {
	Backend string `json:"backend"`
	Entries int    `json:"entries"`
	Circuit string `json:"circuit,omitempty"`
}

type cacheStatser interface {
	CacheStats() cache.Stats
}

// HealthLive handles the liveness probe. It reports 200 whenever the
// process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles the readiness probe. The catalog and signals are
// loaded before the server starts, so the service is ready once it
// answers; an open query log circuit degrades the status without failing
// the probe because recommendations are still served.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadyStatus{
		Status:   "ready",
		Movies:   h.catalog.Len(),
		Signals:  h.engine.Signals().Len(),
		QueryLog: "disabled",
	}

	if h.queryLog != nil {
		status.QueryLog = "closed"
		if bs, ok := h.queryLog.(breakerState); ok {
			status.QueryLog = bs.State()
		}
		if status.QueryLog == "open" {
			status.Status = "degraded"
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     status,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	signals := h.engine.Signals()
	stats := Stats{
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Movies:        h.catalog.Len(),
		Signals:       signals.Names(),
		NeighborCache: make(map[string]cache.Stats, signals.Len()),
		Endpoints:     h.perfMon.Stats(),
	}
	for _, sig := range signals.List() {
		if cs, ok := sig.Source.(cacheStatser); ok {
			stats.NeighborCache[sig.Name] = cs.CacheStats()
		}
	}

	if h.queryLog != nil {
		qs := &QueryLogStats{Backend: h.queryLog.Backend(), Entries: -1}
		if n, err := h.queryLog.Count(r.Context()); err == nil {
			qs.Entries = n
		}
		if bs, ok := h.queryLog.(breakerState); ok {
			qs.Circuit = bs.State()
		}
		stats.QueryLog = qs
	}

	respondData(w, stats, start)
}
