// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// CloserService keeps a resource open until the supervisor stops, then
// closes it exactly once. It does no work of its own.
type CloserService struct {
	name     string
	resource io.Closer
	once     sync.Once
	closeErr error
}

// NewCloserService wraps resource under name.
func NewCloserService(name string, resource io.Closer) *CloserService {
	return &CloserService{name: name, resource: resource}
}

// Serve blocks until ctx is canceled and then closes the resource.
func (c *CloserService) Serve(ctx context.Context) error {
	<-ctx.Done()

	c.once.Do(func() {
		c.closeErr = c.resource.Close()
		if c.closeErr != nil {
			logging.Error().Err(c.closeErr).Str("service", c.name).Msg("Failed to close resource")
		} else {
			logging.Info().Str("service", c.name).Msg("Resource closed")
		}
	})
	if c.closeErr != nil {
		return fmt.Errorf("close %s: %w", c.name, c.closeErr)
	}
	return ctx.Err()
}

// String names the service in supervisor events.
func (c *CloserService) String() string {
	return c.name
}
