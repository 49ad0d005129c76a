// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

// DefaultLimitPerSignal is the number of movies shown per signal.
const DefaultLimitPerSignal = 10

// SignalResult is the deduplicated list produced by one signal.
type SignalResult struct {
	Signal string             `json:"signal"`
	Label  string             `json:"label"`
	Items  []models.Candidate `json:"items"`
}

// Results holds one SignalResult per signal, in signal order.
type Results []SignalResult

// Get returns the result for the named signal.
func (r Results) Get(name string) (SignalResult, bool) {
	for _, sr := range r {
		if sr.Signal == name {
			return sr, true
		}
	}
	return SignalResult{}, false
}

// MovieIDs returns every recommended id across all signals, in order.
func (r Results) MovieIDs() []int {
	var ids []int
	for _, sr := range r {
		ids = append(ids, models.CandidateIDs(sr.Items)...)
	}
	return ids
}

// Recommender produces per-signal lists under a shared exclusion set.
// It holds no per-interaction state and is safe for concurrent use.
type Recommender struct {
	logger zerolog.Logger
}

// NewRecommender creates a Recommender.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(logger zerolog.Logger) *Recommender {
	return &Recommender{logger: logger.With().Str("component", "recommender").Logger()}
}

// Recommend walks signals in order and collects up to limit unseen movies
// from each. Accepted movies are added to exclusions so no later signal
// repeats them. Each list keeps its signal's ranking order; excluded movies
// are dropped, never reordered.
//
// A limit of zero or less means DefaultLimitPerSignal. A nil exclusions
// set is replaced with an empty one.
func (r *Recommender) Recommend(ctx context.Context, movieID int, signals []Signal, exclusions *ExclusionSet, limit int) (Results, error) {
	if limit <= 0 {
		limit = DefaultLimitPerSignal
	}
	if exclusions == nil {
		exclusions = NewExclusionSet()
	}

	results := make(Results, 0, len(signals))
	for _, sig := range signals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := r.collect(movieID, sig, exclusions, limit)
		if err != nil {
			return nil, err
		}
		metrics.SignalResultSize.WithLabelValues(sig.Name).Observe(float64(len(items)))

		if len(items) == 0 {
			r.logger.Debug().
				Str("signal", sig.Name).
				Int("movie_id", movieID).
				Msg("all candidates already shown")
		}

		results = append(results, SignalResult{Signal: sig.Name, Label: sig.Label, Items: items})
	}
	return results, nil
}

// collect takes the first limit candidates of one signal that are not yet
// excluded, excluding each as it is accepted.
//
//nolint:gocritic // hugeParam: Signal is small and read-only
func (r *Recommender) collect(movieID int, sig Signal, exclusions *ExclusionSet, limit int) ([]models.Candidate, error) {
	ranked, err := sig.Source.Neighbors(movieID)
	if err != nil {
		return nil, fmt.Errorf("signal %s: %w", sig.Name, err)
	}

	items := make([]models.Candidate, 0, limit)
	for _, c := range ranked {
		if len(items) == limit {
			break
		}
		if c.MovieID == movieID || !exclusions.Add(c.MovieID) {
			continue
		}
		items = append(items, c)
	}
	return items, nil
}

// Primary returns the first limit candidates of sig with no exclusion
// filtering. This is the list handed to evaluation and the query log.
//
//nolint:gocritic // hugeParam: Signal is small and read-only
func Primary(movieID int, sig Signal, limit int) ([]models.Candidate, error) {
	ranked, err := sig.Source.Neighbors(movieID)
	if err != nil {
		return nil, fmt.Errorf("signal %s: %w", sig.Name, err)
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
