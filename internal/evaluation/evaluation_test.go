// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package evaluation

import (
	"errors"
	"math"
	"testing"
)

const (
	B = 2
	C = 3
	D = 4
	E = 5
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		recommended []int
		relevant    Set
		k           int
		precision   float64
		recall      float64
		hit         float64
		relevantAtK []int
	}{
		{
			name:        "one relevant in three",
			recommended: []int{B, C, D},
			relevant:    NewSet(C),
			k:           3,
			precision:   1.0 / 3.0,
			recall:      1,
			hit:         1,
			relevantAtK: []int{C},
		},
		{
			name:        "empty relevance set",
			recommended: []int{B, C, D},
			relevant:    NewSet(),
			k:           3,
			precision:   0,
			recall:      0,
			hit:         0,
			relevantAtK: []int{},
		},
		{
			name:        "nil relevance set",
			recommended: []int{B},
			relevant:    nil,
			k:           1,
		},
		{
			name:        "fixed denominator when list is shorter than k",
			recommended: []int{B, C},
			relevant:    NewSet(B, C),
			k:           22,
			precision:   2.0 / 22.0,
			recall:      1,
			hit:         1,
			relevantAtK: []int{B, C},
		},
		{
			name:        "relevant item beyond cutoff is ignored",
			recommended: []int{B, C, D, E},
			relevant:    NewSet(E),
			k:           3,
			precision:   0,
			recall:      0,
			hit:         0,
		},
		{
			name:        "partial recall",
			recommended: []int{B, C, D},
			relevant:    NewSet(B, D, E, 9),
			k:           3,
			precision:   2.0 / 3.0,
			recall:      0.5,
			hit:         1,
			relevantAtK: []int{B, D},
		},
		{
			name:        "self comparison is perfect",
			recommended: []int{B, C, D},
			relevant:    NewSet(B, C, D),
			k:           3,
			precision:   1,
			recall:      1,
			hit:         1,
			relevantAtK: []int{B, C, D},
		},
		{
			name:        "duplicates count once",
			recommended: []int{B, B, C},
			relevant:    NewSet(B),
			k:           3,
			precision:   1.0 / 3.0,
			recall:      1,
			hit:         1,
			relevantAtK: []int{B},
		},
		{
			name:        "empty recommendation",
			recommended: nil,
			relevant:    NewSet(B),
			k:           DefaultK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Evaluate(tt.recommended, tt.relevant, tt.k)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if res.K != tt.k {
				t.Errorf("K = %d, want %d", res.K, tt.k)
			}
			if !almostEqual(res.PrecisionAtK, tt.precision) {
				t.Errorf("PrecisionAtK = %v, want %v", res.PrecisionAtK, tt.precision)
			}
			if !almostEqual(res.RecallAtK, tt.recall) {
				t.Errorf("RecallAtK = %v, want %v", res.RecallAtK, tt.recall)
			}
			if res.HitRate != tt.hit {
				t.Errorf("HitRate = %v, want %v", res.HitRate, tt.hit)
			}
			if math.IsNaN(res.RecallAtK) || math.IsNaN(res.PrecisionAtK) {
				t.Error("metrics must never be NaN")
			}
			if len(res.RelevantAtK) != len(tt.relevantAtK) {
				t.Fatalf("RelevantAtK = %v, want %v", res.RelevantAtK, tt.relevantAtK)
			}
			for i := range tt.relevantAtK {
				if res.RelevantAtK[i] != tt.relevantAtK[i] {
					t.Errorf("RelevantAtK = %v, want %v", res.RelevantAtK, tt.relevantAtK)
					break
				}
			}
		})
	}
}

func TestEvaluate_PrecisionFormula(t *testing.T) {
	t.Parallel()

	recommended := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	relevant := NewSet(2, 4, 6, 8, 10, 12)

	for k := 1; k <= 12; k++ {
		res, err := Evaluate(recommended, relevant, k)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}

		top := recommended
		if len(top) > k {
			top = top[:k]
		}
		inter := 0
		for _, id := range top {
			if relevant.Contains(id) {
				inter++
			}
		}
		if want := float64(inter) / float64(k); res.PrecisionAtK != want {
			t.Errorf("k=%d: precision = %v, want %v", k, res.PrecisionAtK, want)
		}
		if want := inter > 0; (res.HitRate == 1) != want {
			t.Errorf("k=%d: hit rate = %v", k, res.HitRate)
		}
		if res.HitRate != 0 && res.HitRate != 1 {
			t.Errorf("k=%d: hit rate %v not binary", k, res.HitRate)
		}
	}
}

func TestEvaluate_InvalidK(t *testing.T) {
	t.Parallel()

	for _, k := range []int{0, -1} {
		if _, err := Evaluate([]int{1}, NewSet(1), k); !errors.Is(err, ErrInvalidK) {
			t.Errorf("k=%d: expected ErrInvalidK, got %v", k, err)
		}
	}
}
