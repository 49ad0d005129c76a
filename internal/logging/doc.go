// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package logging provides the process-wide zerolog logger for Reelmatch.

Every package logs through this one logger so that output format, level and
field names are uniform. The logger is usable before Init is called; Init
only reconfigures it.

Usage:

	logging.Init(logging.Config{Level: "debug", Format: "console"})

	logging.Info().Str("catalog", path).Int("movies", n).Msg("Catalog loaded")

	// Inside a request or interaction, carry the request id:
	logging.Ctx(ctx).Warn().Err(err).Msg("Query log write failed")

	// Component loggers tag every line with a component field:
	log := logging.WithComponent("querylog")

Libraries that expect *slog.Logger (sutureslog) get an adapter through
NewSlogLogger so supervisor events land in the same stream.

Field names are fixed: time, level, message, error, caller, component,
request_id, correlation_id.
*/
package logging
