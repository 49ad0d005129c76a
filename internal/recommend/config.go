// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/reelmatch/internal/evaluation"
)

// DefaultPrimaryLimit is the length of the primary list that is evaluated
// and logged.
const DefaultPrimaryLimit = 22

// DefaultQueryTemplate produces the query text when the caller gives none.
// %s is replaced by the selected title.
const DefaultQueryTemplate = "Recommend movies similar to %s"

// Config contains engine settings.
type Config struct {
	// LimitPerSignal caps each signal's list.
	LimitPerSignal int `json:"limit_per_signal"`

	// PrimaryLimit is the length of the unfiltered primary list.
	PrimaryLimit int `json:"primary_limit"`

	// K is the evaluation cutoff.
	K int `json:"k"`

	// QueryTemplate must contain exactly one %s.
	QueryTemplate string `json:"query_template"`

	// LogQueries disables query logging when false.
	LogQueries bool `json:"log_queries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		LimitPerSignal: DefaultLimitPerSignal,
		PrimaryLimit:   DefaultPrimaryLimit,
		K:              evaluation.DefaultK,
		QueryTemplate:  DefaultQueryTemplate,
		LogQueries:     true,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.LimitPerSignal < 1 {
		return fmt.Errorf("limit_per_signal must be positive, got %d", c.LimitPerSignal)
	}
	if c.PrimaryLimit < 1 {
		return fmt.Errorf("primary_limit must be positive, got %d", c.PrimaryLimit)
	}
	if c.K < 1 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if strings.Count(c.QueryTemplate, "%s") != 1 {
		return fmt.Errorf("query_template must contain exactly one %%s, got %q", c.QueryTemplate)
	}
	return nil
}

// QueryFor returns the default query text for title.
func (c *Config) QueryFor(title string) string {
	return strings.Replace(c.QueryTemplate, "%s", title, 1)
}
