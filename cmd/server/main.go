// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package main is the entry point for the Reelmatch server.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Catalog: the movie list whose order fixes matrix rows and columns
//  4. Signals: one similarity matrix per configured signal, first = primary
//  5. Query log: SQLite, DuckDB, PostgreSQL or Badger behind a circuit breaker
//  6. Engine and HTTP API
//  7. Supervisor tree: the query log in the data layer, HTTP in the API layer
//
// Any load failure is fatal; the server never starts with partial data.
//
// # Example
//
//	export CATALOG_PATH=data/movies.json
//	export SIGNALS=tags=data/similarity/tags.bin,genres=data/similarity/genres.bin
//	export QUERYLOG_DSN=postgres://reelmatch:secret@db:5432/reelmatch
//	./reelmatch
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the tree: the HTTP server drains for
// SHUTDOWN_TIMEOUT, then the query log store is closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Reelmatch stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("catalog", cfg.Catalog.Path).
		Int("signals", len(cfg.Signals)).
		Str("relevance", cfg.Recommend.Relevance).
		Bool("querylog", cfg.QueryLog.Enabled).
		Str("querylog_dsn", cfg.QueryLog.RedactedDSN()).
		Msg("Starting Reelmatch with supervisor tree")

	comps, err := initRecommend(cfg)
	if err != nil {
		return err
	}

	opts := []api.HandlerOption{
		api.WithDefaultUserID(cfg.Recommend.DefaultUserID),
		api.WithRequestTimeout(cfg.Server.Timeout),
	}
	if comps.Recorder != nil {
		opts = append(opts, api.WithQueryLog(comps.Recorder))
	}

	handler, err := api.NewHandler(comps.Engine, comps.Catalog, opts...)
	if err != nil {
		comps.Close()
		return fmt.Errorf("create API handler: %w", err)
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(cfg.Server)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		comps.Close()
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if comps.Recorder != nil {
		tree.AddDataService(services.NewCloserService("querylog-"+comps.Recorder.Backend(), comps.Recorder))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	return serve(ctx, tree)
}

// serve runs the tree until ctx is canceled and reports services that did
// not stop in time. ServeBackground delivers exactly one value and never
// closes its channel.
func serve(ctx context.Context, tree *supervisor.SupervisorTree) error {
	var serveErr error
	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		serveErr = err
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report is best effort
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if serveErr != nil {
		return fmt.Errorf("supervisor tree: %w", serveErr)
	}
	return nil
}
