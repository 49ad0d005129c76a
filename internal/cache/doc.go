// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package cache provides a generic, thread-safe LRU cache with optional TTL.
//
// The similarity index uses it to memoise the full neighbor ordering of
// recently selected movies so repeated selections skip the O(n log n) sort:
//
//	neighbors := cache.NewLRU[int, []models.Candidate](256, 0)
//	ranked, err := neighbors.GetOrCompute(movieID, func() ([]models.Candidate, error) {
//	    return idx.rank(movieID)
//	})
package cache
