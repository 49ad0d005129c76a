// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics defines the Prometheus instrumentation for Reelmatch.

All collectors are registered on the default registry through promauto and
exposed at GET /metrics.

# Available Metrics

Data loading:
  - reelmatch_catalog_movies: movies in the catalog (gauge)
  - reelmatch_signals_loaded: registered similarity signals (gauge)
  - reelmatch_similarity_load_seconds: load time per matrix (gauge)
    Labels: signal

Recommendation:
  - reelmatch_interactions_total: recommend interactions (counter)
    Labels: status (ok, log_failed, unknown_item, canceled, error)
  - reelmatch_interaction_duration_seconds: interaction latency (histogram)
  - reelmatch_signal_result_size: movies returned per signal (histogram)
    Labels: signal
  - reelmatch_evaluation_score: precision, recall and hit rate at K (histogram)
    Labels: metric

Query log:
  - reelmatch_querylog_writes_total: writes by result (counter)
    Labels: backend, result (success, failure, rejected)
  - reelmatch_querylog_write_duration_seconds: write latency (histogram)
    Labels: backend
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
    Labels: name
  - circuit_breaker_state_transitions_total (counter)
    Labels: name, from_state, to_state

HTTP:
  - api_requests_total (counter) Labels: method, endpoint, status_code
  - api_request_duration_seconds (histogram) Labels: method, endpoint
  - api_active_requests (gauge)

# Usage

	start := time.Now()
	entry, err := store.Record(ctx, e)
	metrics.RecordQueryLogWrite("sqlite", time.Since(start), err, false)
*/
package metrics
