// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

// ExclusionSet records the movies already surfaced during one interaction.
// Once a movie is added it is never suggested again within that interaction.
//
// The zero value is not usable; call NewExclusionSet. Not safe for
// concurrent use.
type ExclusionSet struct {
	ids   map[int]struct{}
	order []int
}

// NewExclusionSet returns a set seeded with ids.
func NewExclusionSet(ids ...int) *ExclusionSet {
	s := &ExclusionSet{ids: make(map[int]struct{}, len(ids)+64)}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id. It reports whether id was newly added.
func (s *ExclusionSet) Add(id int) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains reports whether id is excluded.
func (s *ExclusionSet) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of excluded movies.
func (s *ExclusionSet) Len() int {
	return len(s.ids)
}

// IDs returns the excluded ids in insertion order.
func (s *ExclusionSet) IDs() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}
