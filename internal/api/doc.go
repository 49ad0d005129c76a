// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api exposes the recommendation engine over HTTP using the Chi router.

# Endpoints

	POST /api/v1/recommendations          run one "Recommend" interaction
	GET  /api/v1/recommendations/signals  configured signals in order
	POST /api/v1/evaluate                 precision, recall and hit rate at K
	GET  /api/v1/movies                   paginated catalog (offset, limit)
	GET  /api/v1/movies/lookup?title=     exact-title lookup
	GET  /api/v1/movies/{id}              one movie
	GET  /api/v1/querylog                 recent query log entries
	GET  /api/v1/stats                    endpoint latency and cache counters
	GET  /api/v1/health/live              liveness probe
	GET  /api/v1/health/ready             readiness probe
	GET  /metrics                         Prometheus exposition

# Responses

Every JSON body uses models.APIResponse. Errors carry a machine-readable
code:

	VALIDATION_ERROR   400  malformed body or parameters
	UNKNOWN_ITEM       404  selected movie is not in the catalog
	NOT_FOUND          404  resource does not exist
	QUERYLOG_DISABLED  503  query logging is turned off
	PERSISTENCE_ERROR  500  query log read failed
	INTERNAL_ERROR     500  anything else

A failed query log write does not fail a recommendation request: the
response is 200 with "logged": false and "log_error" set.

# Middleware

Global: request id, real IP, panic recovery, access log, CORS.
API group: rate limiting (go-chi/httprate), security headers, gzip,
Prometheus metrics and the in-memory performance monitor.
*/
package api
