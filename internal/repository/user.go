package repository

import (
	"context"

	"fleetsync/internal/domain"
)

// UserRepository defines the persistence operations for login accounts.
type UserRepository interface {
	// Create adds a new user. Returns ErrDuplicate on an email collision.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
