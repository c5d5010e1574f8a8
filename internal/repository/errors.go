package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicate maps unique-index violations (email, restaurant owner).
	ErrDuplicate = errors.New("duplicate")

	// ErrVersionConflict is returned when a conditional order write loses a
	// race against a concurrent mutation of the same row.
	ErrVersionConflict = errors.New("version conflict")
)
