// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, string](3, 0)
	c.Add(1, "a")
	c.Add(2, "b")
	c.Add(3, "c")

	for k, want := range map[int]string{1: "a", 2: "b", 3: "c"} {
		got, ok := c.Get(k)
		if !ok || got != want {
			t.Errorf("Get(%d) = %q, %v; want %q", k, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	c.Add(2, "B")
	if got, _ := c.Get(2); got != "B" {
		t.Errorf("update not applied, got %q", got)
	}
	if c.Len() != 3 {
		t.Errorf("update changed Len to %d", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](3, 0)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Touch a so b becomes least recently used.
	c.Get("a")
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to be present", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, int](10, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add(1, 100)
	if _, ok := c.Get(1); !ok {
		t.Fatal("fresh entry missing")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(1); ok {
		t.Error("expired entry returned")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not dropped, Len = %d", c.Len())
	}
}

func TestLRU_RemoveAndPurge(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, int](0, 0)
	c.Add(1, 1)
	c.Add(2, 2)

	if !c.Remove(1) {
		t.Error("Remove(1) = false")
	}
	if c.Remove(1) {
		t.Error("second Remove(1) = true")
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after Purge = %d", c.Len())
	}
	c.Add(3, 3)
	if v, ok := c.Get(3); !ok || v != 3 {
		t.Error("cache unusable after Purge")
	}
}

func TestLRU_GetOrCompute(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, []int](4, 0)
	calls := 0
	compute := func() ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute(7, compute)
		if err != nil || len(v) != 3 {
			t.Fatalf("GetOrCompute = %v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCompute(8, func() ([]int, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("expected compute error, got %v", err)
	}
	if _, ok := c.Get(8); ok {
		t.Error("failed compute must not be cached")
	}

	s := c.Stats()
	if s.Hits != 2 {
		t.Errorf("Hits = %d, want 2", s.Hits)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, int](64, 0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := (g*500 + i) % 100
				c.Add(k, i)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}
