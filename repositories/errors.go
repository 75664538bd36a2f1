package repositories

import "errors"

var (
	// ErrNotFound is returned when no document matches the query.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)
