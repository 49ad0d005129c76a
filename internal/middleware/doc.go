// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides the HTTP middleware shared by the API router.

Key Components:

  - RequestID: request and correlation ids on the context, the response
    header and a request-scoped zerolog logger
  - AccessLog: one structured log line per request
  - PrometheusMetrics: request count, latency and in-flight gauge keyed by
    the chi route pattern
  - PerformanceMonitor: in-memory latency percentiles per route, served by
    the stats endpoint

All middleware uses the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)

Route patterns ("/api/v1/movies/{id}") are used as labels instead of raw
paths so metric cardinality stays bounded.
*/
package middleware
