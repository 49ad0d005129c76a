// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Data loading

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	SignalsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_signals_loaded",
			Help: "Number of similarity signals registered",
		},
	)

	SimilarityLoadDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_similarity_load_seconds",
			Help: "Time taken to load each similarity matrix",
		},
		[]string{"signal"},
	)

	// Recommendation

	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_interactions_total",
			Help: "Total number of recommend interactions",
		},
		[]string{"status"}, // ok, log_failed, unknown_item, canceled, error
	)

	InteractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_interaction_duration_seconds",
			Help:    "End-to-end duration of a recommend interaction",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SignalResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_signal_result_size",
			Help:    "Number of movies returned per signal after deduplication",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
		[]string{"signal"},
	)

	EvaluationScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_evaluation_score",
			Help:    "Per-interaction ranking metrics at K",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
		[]string{"metric"}, // precision, recall, hit_rate
	)

	// Query log

	QueryLogWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_querylog_writes_total",
			Help: "Total number of query log writes",
		},
		[]string{"backend", "result"}, // result: success, failure, rejected
	)

	QueryLogWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_querylog_write_duration_seconds",
			Help:    "Duration of query log writes in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// HTTP API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordQueryLogWrite records the outcome of one query log write.
// rejected marks a write refused by an open circuit breaker.
func RecordQueryLogWrite(backend string, duration time.Duration, err error, rejected bool) {
	switch {
	case rejected:
		QueryLogWrites.WithLabelValues(backend, "rejected").Inc()
		return
	case err != nil:
		QueryLogWrites.WithLabelValues(backend, "failure").Inc()
	default:
		QueryLogWrites.WithLabelValues(backend, "success").Inc()
	}
	QueryLogWriteDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordSimilarityLoad records how long a signal took to load.
func RecordSimilarityLoad(signal string, duration time.Duration) {
	SimilarityLoadDuration.WithLabelValues(signal).Set(duration.Seconds())
}
