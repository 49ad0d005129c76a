// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts server components to suture.Service.
//
//   - HTTPServerService runs an *http.Server and shuts it down gracefully.
//   - CloserService holds a resource, such as the query log, open for the
//     life of the tree and closes it on shutdown.
package services
