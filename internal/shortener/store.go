package shortener

import "context"

// Store is the Mapping Store collaborator.
//
// Insert must be atomic: it either persists code -> target because code was
// absent, or returns ErrAlreadyExists and persists nothing. Any other error is
// treated as an infrastructure fault. Get returns ErrNotFound on a miss.
type Store interface {
	Insert(ctx context.Context, code ShortCode, target string) error
	Get(ctx context.Context, code ShortCode) (string, error)
}
