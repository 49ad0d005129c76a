// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/evaluation"
	"github.com/tomtom215/reelmatch/internal/models"
)

// Relevance modes accepted by ParseRelevance.
const (
	RelevanceSelf   = "self"
	RelevanceSignal = "signal"
	RelevanceNone   = "none"
)

// RelevanceSource supplies the set of movies treated as relevant when
// scoring the primary list of an interaction.
type RelevanceSource interface {
	// Name identifies the source in logs and responses.
	Name() string

	// Relevant returns the relevance set for movieID given the primary list.
	Relevant(movieID int, primary []models.Candidate) (evaluation.Set, error)
}

// SelfRelevance treats the primary list itself as relevant. Every metric is
// then trivially perfect; it exists to reproduce the historical numbers.
type SelfRelevance struct{}

// Name implements RelevanceSource.
func (SelfRelevance) Name() string { return RelevanceSelf }

// Relevant implements RelevanceSource.
func (SelfRelevance) Relevant(_ int, primary []models.Candidate) (evaluation.Set, error) {
	return evaluation.NewSet(models.CandidateIDs(primary)...), nil
}

// SignalRelevance treats the top Limit neighbors of another signal as
// relevant, giving an independent judgement of the primary list.
type SignalRelevance struct {
	Signal Signal
	Limit  int
}

// Name implements RelevanceSource.
func (s SignalRelevance) Name() string { return RelevanceSignal + ":" + s.Signal.Name }

// Relevant implements RelevanceSource.
func (s SignalRelevance) Relevant(movieID int, _ []models.Candidate) (evaluation.Set, error) {
	top, err := Primary(movieID, s.Signal, s.Limit)
	if err != nil {
		return nil, err
	}
	return evaluation.NewSet(models.CandidateIDs(top)...), nil
}

// NoRelevance yields an empty set, so recall and hit rate are zero.
type NoRelevance struct{}

// Name implements RelevanceSource.
func (NoRelevance) Name() string { return RelevanceNone }

// Relevant implements RelevanceSource.
func (NoRelevance) Relevant(int, []models.Candidate) (evaluation.Set, error) {
	return evaluation.Set{}, nil
}

// ParseRelevance builds a RelevanceSource from configuration.
// signalName and limit are only used by the "signal" mode.
func ParseRelevance(mode string, signals *Signals, signalName string, limit int) (RelevanceSource, error) {
	switch mode {
	case "", RelevanceSelf:
		return SelfRelevance{}, nil
	case RelevanceNone:
		return NoRelevance{}, nil
	case RelevanceSignal:
		sig, ok := signals.Get(signalName)
		if !ok {
			return nil, fmt.Errorf("relevance signal %q is not registered", signalName)
		}
		if sig.Name == signals.Primary().Name {
			return nil, fmt.Errorf("relevance signal %q is the primary signal", signalName)
		}
		return SignalRelevance{Signal: sig, Limit: limit}, nil
	default:
		return nil, fmt.Errorf("unknown relevance mode %q (want self, signal or none)", mode)
	}
}
