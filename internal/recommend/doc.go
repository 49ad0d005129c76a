// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend merges several similarity signals into per-signal
// recommendation lists for one selected movie.
//
// # Architecture
//
// A Signal pairs a name and display label with a neighbor source (normally a
// *similarity.Index). Signals are registered once at startup in a fixed order;
// the first one is the primary signal.
//
// The Recommender walks the signals in order. For each it pulls the full
// neighbor ranking, skips anything already in the ExclusionSet, accepts up to
// the per-signal limit and adds each accepted movie to the set. A signal
// whose candidates are all excluded yields an empty list.
//
// The Engine runs one "Recommend" interaction end to end:
//
//  1. resolve the selected movie by id or title
//  2. create a fresh ExclusionSet seeded with the selected movie
//  3. recommend over every registered signal
//  4. take the primary list (first signal, unfiltered, primary_limit long)
//  5. build the relevance set from the configured RelevanceSource
//  6. evaluate precision, recall and hit rate at K
//  7. record the query log entry
//
// A query log failure does not fail the interaction; the Outcome carries the
// recommendations together with the *models.PersistenceError.
//
// # Usage
//
//	signals, err := recommend.NewSignals(
//	    recommend.Signal{Name: "tags", Label: "are", Source: tagsIndex},
//	    recommend.Signal{Name: "genres", Label: "on the basis of genres are", Source: genresIndex},
//	)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), cat, signals,
//	    recommend.SelfRelevance{}, recorder, logging.Logger())
//
//	out, err := engine.Interact(ctx, recommend.Interaction{UserID: 1, Title: "Inception"})
//
// # Thread Safety
//
// Engine and Recommender are safe for concurrent use. Every interaction owns
// its ExclusionSet; an ExclusionSet itself must not be shared between
// goroutines.
package recommend
