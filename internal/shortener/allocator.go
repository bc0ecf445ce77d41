package shortener

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// DefaultMaxAttempts is the retry budget used when none is configured.
const DefaultMaxAttempts = 5

// Allocator assigns fresh short codes to target URLs. It keeps no state
// between calls and is safe for concurrent use as long as its Store is.
type Allocator struct {
	store       Store
	codes       CodeSource
	maxAttempts int
}

// NewAllocator returns an Allocator over store. A nil codes falls back to
// CodeSpace; a non-positive maxAttempts falls back to DefaultMaxAttempts.
func NewAllocator(store Store, codes CodeSource, maxAttempts int) *Allocator {
	if codes == nil {
		codes = CodeSpace{}
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Allocator{store: store, codes: codes, maxAttempts: maxAttempts}
}

// MaxAttempts returns the configured retry budget.
func (a *Allocator) MaxAttempts() int { return a.maxAttempts }

// Allocate commits a new mapping for target using the configured budget.
func (a *Allocator) Allocate(ctx context.Context, target string) (ShortCode, error) {
	return a.AllocateWithAttempts(ctx, target, a.maxAttempts)
}

// AllocateWithAttempts draws up to maxAttempts candidates and commits the
// first one the store accepts. Collisions consume an attempt; store faults
// and cancellation end the call immediately.
func (a *Allocator) AllocateWithAttempts(ctx context.Context, target string, maxAttempts int) (ShortCode, error) {
	if err := ValidateTarget(target); err != nil {
		return "", err
	}
	if maxAttempts <= 0 {
		maxAttempts = a.maxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code := a.codes.Generate()
		err := a.store.Insert(ctx, code, target)
		switch {
		case err == nil:
			return code, nil
		case errors.Is(err, ErrAlreadyExists):
			log.Printf("Allocator: collision on %s (attempt %d/%d), retrying", code, attempt, maxAttempts)
			continue
		case ctx.Err() != nil:
			return "", ctx.Err()
		default:
			var storeErr *StoreError
			if errors.As(err, &storeErr) {
				return "", err
			}
			return "", &StoreError{Op: "insert", Err: err}
		}
	}

	log.Printf("Allocator: all %d attempts collided for target %s", maxAttempts, target)
	return "", fmt.Errorf("%w: %d attempts", ErrExhausted, maxAttempts)
}

// LookupRedirect returns the target mapped to code, or ErrNotFound.
func (a *Allocator) LookupRedirect(ctx context.Context, code ShortCode) (string, error) {
	if !IsValidCode(string(code)) {
		return "", ErrNotFound
	}
	target, err := a.store.Get(ctx, code)
	if err == nil || errors.Is(err, ErrNotFound) {
		return target, err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return "", err
	}
	return "", &StoreError{Op: "get", Err: err}
}
