// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/models"
)

func TestRecommend_CrossSignalDedup(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	signals := testSignals(t, cat)
	r := NewRecommender(zerolog.Nop())

	res, err := r.Recommend(context.Background(), idA, signals.List(), NewExclusionSet(idA), 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	tags, _ := res.Get("tags")
	genres, _ := res.Get("genres")
	if !sameStrings(titlesOf(tags.Items), []string{"B", "C"}) {
		t.Errorf("tags = %v, want [B C]", titlesOf(tags.Items))
	}
	if !sameStrings(titlesOf(genres.Items), []string{"E", "F"}) {
		t.Errorf("genres = %v, want [E F] (B already shown by tags)", titlesOf(genres.Items))
	}
	if genres.Label != "on the basis of genres are" {
		t.Errorf("label not carried: %q", genres.Label)
	}
}

func TestRecommend_Properties(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	signals := testSignals(t, cat)
	r := NewRecommender(zerolog.Nop())

	for _, limit := range []int{1, 2, 3, 4, 10} {
		res, err := r.Recommend(context.Background(), idA, signals.List(), NewExclusionSet(idA), limit)
		if err != nil {
			t.Fatalf("limit=%d: %v", limit, err)
		}

		seen := map[int]bool{}
		for _, sr := range res {
			if len(sr.Items) > limit {
				t.Errorf("limit=%d: signal %s returned %d items", limit, sr.Signal, len(sr.Items))
			}

			// Each list must be a subsequence of the signal's own ranking.
			sig, _ := signals.Get(sr.Signal)
			ranked, _ := sig.Source.Neighbors(idA)
			pos := 0
			for _, item := range sr.Items {
				for pos < len(ranked) && ranked[pos].MovieID != item.MovieID {
					pos++
				}
				if pos == len(ranked) {
					t.Errorf("limit=%d: signal %s reordered its ranking", limit, sr.Signal)
				}
			}

			for _, item := range sr.Items {
				if item.MovieID == idA {
					t.Errorf("limit=%d: selected movie recommended", limit)
				}
				if seen[item.MovieID] {
					t.Errorf("limit=%d: %s repeated across signals", limit, item.Title)
				}
				seen[item.MovieID] = true
			}
		}
	}
}

func TestRecommend_FullyExcludedSignalIsEmpty(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	signals := testSignals(t, cat)
	r := NewRecommender(zerolog.Nop())

	res, err := r.Recommend(context.Background(), idA, signals.List(), NewExclusionSet(idA), 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	tags, _ := res.Get("tags")
	genres, ok := res.Get("genres")
	if len(tags.Items) != 5 {
		t.Errorf("tags should take all five neighbors, got %d", len(tags.Items))
	}
	if !ok || genres.Items == nil || len(genres.Items) != 0 {
		t.Errorf("genres should be present and empty, got %+v", genres)
	}
}

func TestRecommend_DefaultsAndNilExclusions(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	signals := testSignals(t, cat)
	r := NewRecommender(zerolog.Nop())

	res, err := r.Recommend(context.Background(), idA, signals.List()[:1], nil, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// Default limit is 10, the fixture only has five neighbors.
	if len(res[0].Items) != 5 {
		t.Errorf("got %d items", len(res[0].Items))
	}
}

func TestRecommend_SharedExclusionsAcrossCalls(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	signals := testSignals(t, cat)
	r := NewRecommender(zerolog.Nop())

	ex := NewExclusionSet(idA, idB)
	res, err := r.Recommend(context.Background(), idA, signals.List()[:1], ex, 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !sameStrings(titlesOf(res[0].Items), []string{"C", "D"}) {
		t.Errorf("got %v, want [C D]", titlesOf(res[0].Items))
	}
	if !ex.Contains(idC) || !ex.Contains(idD) || ex.Len() != 4 {
		t.Errorf("accepted items not excluded: %v", ex.IDs())
	}
}

func TestRecommend_Errors(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	signals := testSignals(t, cat)
	r := NewRecommender(zerolog.Nop())

	if _, err := r.Recommend(context.Background(), 999, signals.List(), nil, 2); !errors.Is(err, models.ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}

	broken := []Signal{{Name: "broken", Source: errSource{err: errBoom}}}
	if _, err := r.Recommend(context.Background(), idA, broken, nil, 2); !errors.Is(err, errBoom) {
		t.Errorf("expected source error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Recommend(ctx, idA, signals.List(), nil, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPrimary(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	signals := testSignals(t, cat)

	got, err := Primary(idA, signals.Primary(), 3)
	if err != nil {
		t.Fatalf("Primary: %v", err)
	}
	if !sameStrings(titlesOf(got), []string{"B", "C", "D"}) {
		t.Errorf("Primary = %v", titlesOf(got))
	}

	all, _ := Primary(idA, signals.Primary(), 0)
	if len(all) != 5 {
		t.Errorf("limit 0 should return the full ranking, got %d", len(all))
	}
}

func TestResults_MovieIDs(t *testing.T) {
	t.Parallel()

	r := Results{
		{Signal: "a", Items: []models.Candidate{{MovieID: 1}, {MovieID: 2}}},
		{Signal: "b", Items: []models.Candidate{}},
		{Signal: "c", Items: []models.Candidate{{MovieID: 3}}},
	}
	ids := r.MovieIDs()
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Errorf("MovieIDs = %v", ids)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) = true")
	}
}
