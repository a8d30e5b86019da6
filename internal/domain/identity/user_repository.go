package identity

import (
	"context"
)

// UserRepository defines the persistence contract for users
type UserRepository interface {
	// FindByUsername returns the user or ErrNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
