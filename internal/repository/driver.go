package repository

import (
	"context"

	"fleetsync/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver. Returns ErrDuplicate on an email or
	// license number collision.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByEmail retrieves a driver by email.
	GetByEmail(ctx context.Context, email string) (*domain.Driver, error)

	// FindByEmailOrLicense retrieves a driver matching either the email
	// or the license number.
	FindByEmailOrLicense(ctx context.Context, email, licenseNo string) (*domain.Driver, error)

	// GetAll retrieves all drivers, optionally filtered by status
	// (empty string means no filter).
	GetAll(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error)

	// Update persists all mutable fields of a driver.
	Update(ctx context.Context, driver *domain.Driver) error

	// UpdateStatus updates only the status of a driver.
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// AdjustBalance adds delta (which may be negative) to the driver's
	// running balance.
	AdjustBalance(ctx context.Context, id string, delta float64) error

	// Delete removes a driver.
	Delete(ctx context.Context, id string) error
}
