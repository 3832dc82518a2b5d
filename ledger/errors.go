package ledger

import "errors"

var (
	// ErrInvalidInput is returned when a mutation is rejected before any
	// state changes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersist is returned when the in-memory mutation succeeded but the
	// write to the key-value store failed. The ledger keeps the new state.
	ErrPersist = errors.New("persist ledger")
)
