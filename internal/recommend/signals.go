// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/models"
)

// NeighborSource ranks every other movie by similarity to a movie.
// *similarity.Index implements it.
type NeighborSource interface {
	Neighbors(movieID int) ([]models.Candidate, error)
}

// Signal is one similarity signal.
type Signal struct {
	// Name identifies the signal, e.g. "genres".
	Name string `json:"name"`

	// Label completes the heading "Best Recommendations <label>...".
	Label string `json:"label"`

	// Source ranks neighbors for this signal.
	Source NeighborSource `json:"-"`
}

// Signals is the ordered, immutable set of signals registered at startup.
// The first signal is the primary one.
type Signals struct {
	list   []Signal
	byName map[string]int
}

// ErrNoSignals is returned when a registry would be empty.
var ErrNoSignals = errors.New("at least one signal is required")

// NewSignals registers signals in order, rejecting blank or duplicate names
// and missing sources.
func NewSignals(signals ...Signal) (*Signals, error) {
	if len(signals) == 0 {
		return nil, ErrNoSignals
	}

	s := &Signals{
		list:   make([]Signal, 0, len(signals)),
		byName: make(map[string]int, len(signals)),
	}
	for i, sig := range signals {
		if sig.Name == "" {
			return nil, fmt.Errorf("signal %d: name is required", i)
		}
		if sig.Source == nil {
			return nil, fmt.Errorf("signal %q: source is required", sig.Name)
		}
		if _, dup := s.byName[sig.Name]; dup {
			return nil, fmt.Errorf("signal %q registered twice", sig.Name)
		}
		s.byName[sig.Name] = len(s.list)
		s.list = append(s.list, sig)
	}
	return s, nil
}

// Primary returns the first registered signal.
func (s *Signals) Primary() Signal {
	return s.list[0]
}

// Get returns the signal with the given name.
func (s *Signals) Get(name string) (Signal, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Signal{}, false
	}
	return s.list[i], true
}

// List returns the signals in registration order.
func (s *Signals) List() []Signal {
	out := make([]Signal, len(s.list))
	copy(out, s.list)
	return out
}

// Names returns signal names in registration order.
func (s *Signals) Names() []string {
	out := make([]string, len(s.list))
	for i, sig := range s.list {
		out[i] = sig.Name
	}
	return out
}

// Len returns the number of signals.
func (s *Signals) Len() int {
	return len(s.list)
}
