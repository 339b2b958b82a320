package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when a unique field (email, username) is
	// already taken. The store's unique constraint is the sole guard
	// against concurrent registrations for the same email.
	ErrDuplicate = errors.New("user already exists")
)

// Repo is the identity repository consumed by the auth service.
// GetByEmail returns the user including the password hash; it is the only
// read path that exposes it.
type Repo interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
