// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// Validate checks field constraints and the rules that span sections.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateSignals(); err != nil {
		return err
	}
	if err := c.validateRelevance(); err != nil {
		return err
	}
	if err := c.validateQueryLog(); err != nil {
		return err
	}
	return c.validateCORS()
}

func (c *Config) validateSignals() error {
	seen := make(map[string]bool, len(c.Signals))
	for _, s := range c.Signals {
		if seen[s.Name] {
			return fmt.Errorf("signal %q is configured more than once", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (c *Config) validateRelevance() error {
	if c.Recommend.Relevance != "signal" {
		return nil
	}
	if c.Recommend.RelevanceSignal == "" {
		return fmt.Errorf("RECOMMEND_RELEVANCE_SIGNAL is required when RECOMMEND_RELEVANCE=signal")
	}
	if _, ok := c.Signal(c.Recommend.RelevanceSignal); !ok {
		return fmt.Errorf("relevance signal %q is not a configured signal", c.Recommend.RelevanceSignal)
	}
	if c.Recommend.RelevanceSignal == c.Primary().Name {
		return fmt.Errorf("relevance signal %q cannot be the primary signal", c.Recommend.RelevanceSignal)
	}
	return nil
}

func (c *Config) validateQueryLog() error {
	if !c.QueryLog.Enabled {
		return nil
	}
	if err := validateDSN(c.QueryLog.DSN); err != nil {
		return fmt.Errorf("QUERYLOG_DSN is invalid: %w", err)
	}
	return nil
}

// validateCORS rejects a wildcard mixed with explicit origins.
func (c *Config) validateCORS() error {
	if len(c.Server.CORSOrigins) <= 1 {
		return nil
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS cannot mix * with explicit origins")
		}
	}
	return nil
}
