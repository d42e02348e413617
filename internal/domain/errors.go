package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no row matched the given id. Deletes
	// treat it as a no-op; updates surface it to the caller.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates an id collision during a merge import.
	ErrConflict = errors.New("id conflict")
	// ErrStoreUnavailable indicates that the embedded store could not be
	// opened on this platform and the in-memory fallback is in effect.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrDuplicateID wraps ErrConflict with the colliding id.
func ErrDuplicateID(id string) error {
	return fmt.Errorf("duplicate id %q: %w", id, ErrConflict)
}
