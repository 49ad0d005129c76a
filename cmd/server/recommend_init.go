// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/querylog"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// RecommendComponents holds everything the API needs.
type RecommendComponents struct {
	Catalog  *catalog.Catalog
	Signals  *recommend.Signals
	Engine   *recommend.Engine
	Recorder *querylog.Recorder
}

// Close releases the query log if one was opened.
func (c *RecommendComponents) Close() {
	if c.Recorder == nil {
		return
	}
	if err := c.Recorder.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing query log")
	}
}

// initRecommend loads the catalog and every signal, opens the query log and
// builds the engine. Any failure aborts startup.
func initRecommend(cfg *config.Config) (*RecommendComponents, error) {
	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	signals, err := loadSignals(cfg, cat)
	if err != nil {
		return nil, err
	}

	relevance, err := recommend.ParseRelevance(cfg.Recommend.Relevance, signals, cfg.Recommend.RelevanceSignal, cfg.Recommend.RelevanceLimit)
	if err != nil {
		return nil, fmt.Errorf("configure relevance: %w", err)
	}

	comps := &RecommendComponents{Catalog: cat, Signals: signals}

	var recorder recommend.QueryRecorder
	if cfg.QueryLog.Enabled {
		rec, err := openQueryLog(cfg.QueryLog)
		if err != nil {
			return nil, err
		}
		comps.Recorder = rec
		recorder = rec
	}

	engine, err := recommend.NewEngine(engineConfig(cfg), cat, signals, relevance, recorder, logging.Logger())
	if err != nil {
		comps.Close()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	comps.Engine = engine
	return comps, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	start := time.Now()
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	metrics.CatalogMovies.Set(float64(cat.Len()))
	logging.Info().Str("path", path).Int("movies", cat.Len()).Dur("duration", time.Since(start)).Msg("Catalog loaded")
	return cat, nil
}

// loadSignals loads each configured matrix in order. The first is primary.
func loadSignals(cfg *config.Config, cat *catalog.Catalog) (*recommend.Signals, error) {
	opts := similarity.Options{
		CacheSize: cfg.Recommend.NeighborCacheSize,
		CacheTTL:  cfg.Recommend.NeighborCacheTTL,
	}

	list := make([]recommend.Signal, 0, len(cfg.Signals))
	for _, sc := range cfg.Signals {
		start := time.Now()
		idx, err := similarity.Load(sc.Name, sc.Path, cat, opts)
		if err != nil {
			return nil, fmt.Errorf("load signal %s: %w", sc.Name, err)
		}
		elapsed := time.Since(start)
		metrics.RecordSimilarityLoad(sc.Name, elapsed)
		logging.Info().Str("signal", sc.Name).Str("path", sc.Path).Int("movies", idx.Len()).Dur("duration", elapsed).Msg("Similarity matrix loaded")

		list = append(list, recommend.Signal{Name: sc.Name, Label: sc.Label, Source: idx})
	}

	signals, err := recommend.NewSignals(list...)
	if err != nil {
		return nil, fmt.Errorf("register signals: %w", err)
	}
	metrics.SignalsLoaded.Set(float64(signals.Len()))
	return signals, nil
}

func openQueryLog(cfg config.QueryLogConfig) (*querylog.Recorder, error) {
	store, err := querylog.NewStore(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open query log %s: %w", cfg.RedactedDSN(), err)
	}
	logging.Info().Str("backend", store.Backend()).Str("dsn", cfg.RedactedDSN()).Msg("Query log opened")
	return querylog.NewRecorder(store, breakerConfig(cfg.Breaker), logging.Logger()), nil
}

func breakerConfig(b config.BreakerConfig) querylog.BreakerConfig {
	return querylog.BreakerConfig{
		MaxRequests:         b.MaxRequests,
		Interval:            b.Interval,
		Timeout:             b.Timeout,
		ConsecutiveFailures: b.ConsecutiveFailures,
		MinRequests:         b.MinRequests,
		FailureRatio:        b.FailureRatio,
	}
}

func engineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		LimitPerSignal: cfg.Recommend.LimitPerSignal,
		PrimaryLimit:   cfg.Recommend.PrimaryLimit,
		K:              cfg.Evaluation.K,
		QueryTemplate:  cfg.Recommend.QueryTemplate,
		LogQueries:     cfg.QueryLog.Enabled,
	}
}
