// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

The tree has two layers:

	reelmatch (root)
	├── data-layer   query log store lifetime
	└── api-layer    HTTP server

A failing service is restarted with suture's backoff. Supervisor events are
logged through sutureslog, fed by the zerolog slog adapter in
internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCloserService("querylog", recorder))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = <-tree.ServeBackground(ctx) // one value, the channel is never closed
*/
package supervisor
