// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package evaluation computes ranking quality metrics at a cutoff K.
//
// For a recommended list and a relevance set:
//
//	relevantAtK  = distinct items of recommended[:K] that are relevant
//	precision@K  = |relevantAtK| / K
//	recall@K     = |relevantAtK| / |relevant|   (0 when relevant is empty)
//	hitRate@K    = 1 if |relevantAtK| > 0 else 0
//
// The precision denominator is always K, even when fewer than K items were
// recommended.
package evaluation

import (
	"errors"
	"fmt"
)

// DefaultK is the cutoff used when none is configured.
const DefaultK = 22

// ErrInvalidK is returned for a non-positive cutoff.
var ErrInvalidK = errors.New("k must be positive")

// Set is a relevance set of movie ids.
type Set map[int]struct{}

// NewSet builds a Set from ids.
func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s Set) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Result holds the metrics for one evaluation.
type Result struct {
	K            int     `json:"k"`
	PrecisionAtK float64 `json:"precision_at_k"`
	RecallAtK    float64 `json:"recall_at_k"`
	HitRate      float64 `json:"hit_rate"`

	// RelevantAtK lists the relevant ids found in the first K, in rank order.
	RelevantAtK []int `json:"relevant_at_k"`
}

// Evaluate scores recommended against relevant at cutoff k.
func Evaluate(recommended []int, relevant Set, k int) (Result, error) {
	if k <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	top := recommended
	if len(top) > k {
		top = top[:k]
	}

	hits := make([]int, 0, len(top))
	seen := make(map[int]struct{}, len(top))
	for _, id := range top {
		if !relevant.Contains(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		hits = append(hits, id)
	}

	res := Result{
		K:            k,
		PrecisionAtK: float64(len(hits)) / float64(k),
		RelevantAtK:  hits,
	}
	if len(relevant) > 0 {
		res.RecallAtK = float64(len(hits)) / float64(len(relevant))
	}
	if len(hits) > 0 {
		res.HitRate = 1
	}
	return res, nil
}
