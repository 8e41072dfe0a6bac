// Package store provides SQLite-backed storage for decisions, conventions,
// corrections, and extracted entities, with full-text search over decisions.
package store

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when the database file does not exist yet.
var ErrNotInitialized = errors.New("not initialized")

// NotInitializedError names the missing database path so callers can tell the
// user what to run.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("no lattice database at %s (run 'lattice init' first)", e.Path)
}

func (e *NotInitializedError) Unwrap() error { return ErrNotInitialized }
