// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package testinfra starts Docker containers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # PostgreSQL
//
// StartPostgres runs a throwaway PostgreSQL server so the query log can be
// tested against the real database instead of a fake:
//
//	func TestPostgresStore(t *testing.T) {
//	    pg := testinfra.StartPostgres(ctx, t)
//	    store, err := querylog.NewStore(pg.DSN)
//	    // ...
//	}
//
// It skips cleanly on machines without a Docker daemon and terminates the
// container through t.Cleanup.
package testinfra
