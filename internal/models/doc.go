// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package models defines the data structures shared across Reelmatch.

It is the single source of truth for the domain types that cross package
boundaries, the error taxonomy used by the recommendation core, and the
standard HTTP response envelope.

Key Components:

  - Movie: Catalog entry (stable id, unique title, descriptive attributes)
  - Candidate: A movie paired with a similarity score and its catalog index
  - QueryLogEntry: One persisted (user, movie, query, recommendations) row
  - APIResponse: Standardized API response wrapper

Error Taxonomy:

  - ErrUnknownItem: the selected movie is not in the catalog (ask to reselect)
  - ErrDataUnavailable: catalog or similarity source missing or corrupt (fatal at startup)
  - ErrPersistence: the query log write failed (surfaced, never swallowed)

Concrete errors wrap these sentinels, so callers branch with errors.Is:

	if errors.Is(err, models.ErrUnknownItem) {
	    respondError(w, http.StatusNotFound, "UNKNOWN_ITEM", "Movie not found", err)
	    return
	}

Thread Safety:

All types are plain values. Catalog and similarity data built from them are
read-only after load and safe for concurrent reads.
*/
package models
