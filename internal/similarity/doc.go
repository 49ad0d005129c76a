// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package similarity loads one precomputed item-to-item similarity matrix and
ranks neighbors from it.

A matrix is square and catalog sized: row i, column j is the similarity of
the movie at catalog index i to the movie at index j. Higher is more similar.
One matrix exists per signal (tags, genres, production company, keywords,
cast).

# Source Formats

  - *.json: a JSON array of equal-length arrays of numbers
  - *.bin: little-endian binary, see WriteBinary
  - either with a trailing .gz is read through gzip

Binary layout:

	offset  size      field
	0       4         magic "RMSM"
	4       4         uint32 version (1 = float32, 2 = float64)
	8       4         uint32 n
	12      w*n*n     scores, row-major (w = 4 or 8)

Scores are held as float64, so JSON sources and version 2 files rank with
the full precision of the data. Version 1 files are widened on load. Loading fails with models.ErrDataUnavailable on
a missing file, a non-square matrix, a size that differs from the catalog,
or any NaN or infinite score.

# Ordering

Neighbors(id) returns every other movie ordered by descending score with
ties broken by ascending catalog index. The movie itself is never returned.
The ordering is total, so repeated calls are identical. Orderings for
recently requested movies are memoised in an LRU; callers always receive
their own copy.

# Thread Safety

An *Index is read-only after load and safe for concurrent use.
*/
package similarity
