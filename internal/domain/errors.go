package domain

import "errors"

var (
	// ErrValidation marks caller-supplied game or player data that violates
	// an invariant. Never retried, surfaced as-is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks operations referencing a nonexistent game or player.
	ErrNotFound = errors.New("not found")
	// ErrInvalidMove marks a reorder across different days or out of bounds.
	ErrInvalidMove = errors.New("invalid move")
	// ErrStorageUnavailable marks storage-layer faults.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
