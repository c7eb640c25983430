package repository

import (
	"context"
	"time"

	"fleetsync/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle. Returns ErrDuplicate on a VIN or plate
	// collision.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByPlate retrieves a vehicle by registration plate.
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles, newest first.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// ListByStatuses retrieves vehicles whose status is in the given set.
	ListByStatuses(ctx context.Context, statuses ...domain.VehicleStatus) ([]*domain.Vehicle, error)

	// ListExpiringBefore retrieves non-suspended vehicles with any of the
	// three expiry dates on or before the cutoff.
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*domain.Vehicle, error)

	// Update persists all mutable fields of a vehicle.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// UpdateStatus updates only the status of a vehicle.
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error

	// Delete removes a vehicle.
	Delete(ctx context.Context, id string) error
}
