// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownItem is returned when a movie id or title is not in the catalog.
	ErrUnknownItem = errors.New("unknown item")

	// ErrDataUnavailable is returned when a catalog or similarity source is
	// missing or malformed at load time.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrPersistence is returned when a query log entry could not be written.
	ErrPersistence = errors.New("persistence error")
)

// UnknownItemError reports which lookup key failed.
func UnknownItemError(kind string, key interface{}) error {
	return fmt.Errorf("%w: %s %v", ErrUnknownItem, kind, key)
}

// DataUnavailableError wraps a load failure for the named source.
func DataUnavailableError(source string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrDataUnavailable, source)
	}
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, source, err)
}

// PersistenceError describes a failed query log write.
// It matches both ErrPersistence and the underlying cause with errors.Is.
type PersistenceError struct {
	// Op is the storage operation that failed (e.g. "record", "list").
	Op string

	// Backend is the query log backend name (sqlite, duckdb, postgres, badger).
	Backend string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("query log %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("query log %s (%s): %v", e.Op, e.Backend, e.Err)
}

// Unwrap returns both the sentinel and the cause so errors.Is matches either.
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
