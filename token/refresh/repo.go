// Package refresh defines server-side storage of issued refresh tokens.
// The store is the sole authority for revocation: a refresh token with a
// valid signature is still rejected once its record is gone.
package refresh

import (
	"context"
	"errors"
)

// ErrConflict is returned when a token value is already present in the
// store. Token entropy makes this effectively unreachable, but callers must
// still handle it (e.g. by reissuing).
var ErrConflict = errors.New("refresh token already exists")

// Record is a persisted grant of renewal capability. It references the
// owning user but does not own it.
type Record struct {
	Token  string // The signed token string, unique across the store
	UserID string // Owning identity
}

// Repo persists issued refresh tokens keyed by token value.
// Delete is idempotent: deleting an absent token is not an error.
type Repo interface {
	Exists(ctx context.Context, token string) (bool, error)
	Create(ctx context.Context, token, userID string) error
	Delete(ctx context.Context, token string) error
}
