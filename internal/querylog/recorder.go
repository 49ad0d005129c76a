// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package querylog

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

// BreakerConfig tunes the circuit breaker in front of query log writes.
type BreakerConfig struct {
	// MaxRequests is the number of trial writes allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// ConsecutiveFailures trips the breaker after this many failed writes in a row.
	ConsecutiveFailures uint32

	// MinRequests and FailureRatio trip the breaker on a sustained failure rate.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerConfig returns the production breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
		MinRequests:         10,
		FailureRatio:        0.6,
	}
}

// Recorder wraps a Store with a circuit breaker, metrics and logging.
// Every failure is returned as *models.PersistenceError and is never retried.
type Recorder struct {
	store  Store
	cb     *gobreaker.CircuitBreaker[models.QueryLogEntry]
	name   string
	logger zerolog.Logger
}

// NewRecorder creates a Recorder for store.
func NewRecorder(store Store, cfg BreakerConfig, logger zerolog.Logger) *Recorder {
	name := "querylog-" + store.Backend()
	logger = logger.With().Str("component", "querylog").Str("backend", store.Backend()).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	r := &Recorder{store: store, name: name, logger: logger}
	r.cb = gobreaker.NewCircuitBreaker[models.QueryLogEntry](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= cfg.ConsecutiveFailures {
				logger.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("Opening query log circuit")
				return true
			}
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logger.Warn().Float64("failure_rate", ratio*100).Msg("Opening query log circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Query log circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
		// A caller giving up is not a storage fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return r
}

// Record appends entry to the store.
func (r *Recorder) Record(ctx context.Context, entry models.QueryLogEntry) (models.QueryLogEntry, error) {
	start := time.Now()
	saved, err := r.cb.Execute(func() (models.QueryLogEntry, error) {
		return r.store.Record(ctx, entry)
	})

	rejected := errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
	metrics.RecordQueryLogWrite(r.store.Backend(), time.Since(start), err, rejected)

	if err != nil {
		if rejected {
			r.logger.Warn().Err(err).Str("movie_name", entry.MovieName).Msg("Query log write rejected")
		} else {
			r.logger.Error().Err(err).Str("movie_name", entry.MovieName).Msg("Query log write failed")
		}
		return models.QueryLogEntry{}, &models.PersistenceError{Op: "record", Backend: r.store.Backend(), Err: err}
	}

	r.logger.Debug().Int64("id", saved.ID).Str("movie_name", saved.MovieName).Msg("Recorded query")
	return saved, nil
}

// List reads entries straight from the store.
func (r *Recorder) List(ctx context.Context, opts ListOptions) ([]models.QueryLogEntry, error) {
	entries, err := r.store.List(ctx, opts)
	if err != nil {
		return nil, &models.PersistenceError{Op: "list", Backend: r.store.Backend(), Err: err}
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (r *Recorder) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx)
	if err != nil {
		return 0, &models.PersistenceError{Op: "count", Backend: r.store.Backend(), Err: err}
	}
	return n, nil
}

// Backend names the wrapped store.
func (r *Recorder) Backend() string { return r.store.Backend() }

// State reports the breaker state: closed, half-open or open.
func (r *Recorder) State() string { return stateToString(r.cb.State()) }

// Close closes the wrapped store.
func (r *Recorder) Close() error { return r.store.Close() }

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
