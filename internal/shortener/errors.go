package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget is returned when the target is not an absolute URL.
	ErrInvalidTarget = errors.New("invalid target URL")

	// ErrExhausted is returned when every attempt drew a code already in use.
	// Callers may retry later or with a larger attempt budget.
	ErrExhausted = errors.New("short code space exhausted for this allocation")

	// ErrNotFound is returned by lookups for codes with no mapping.
	ErrNotFound = errors.New("short code not found")

	// ErrAlreadyExists is the store's conflict signal for a conditional insert.
	ErrAlreadyExists = errors.New("short code already exists")

	// ErrStoreFailure matches every *StoreError via errors.Is.
	ErrStoreFailure = errors.New("mapping store failure")
)

// StoreError wraps an infrastructure fault raised by a Store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStoreFailure) identify store faults regardless of cause.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}
