package repository

import (
	"context"
	"time"

	"fleetsync/internal/domain"
)

// RentalRepository defines the persistence operations for rentals.
//
// CreateActive and Complete bundle the rental write with the paired
// vehicle status flip in a single transaction; either both happen or
// neither does.
type RentalRepository interface {
	// CreateActive inserts an ACTIVE rental and flips the vehicle to
	// RENTED atomically. Returns ErrConflict if the vehicle was rented
	// or suspended by a concurrent writer.
	CreateActive(ctx context.Context, rental *domain.Rental) error

	// Complete marks the rental COMPLETED with the given end date and
	// flips the vehicle back to AVAILABLE atomically. Returns
	// ErrConflict if the rental is no longer ACTIVE.
	Complete(ctx context.Context, rental *domain.Rental, endDate time.Time) error

	// GetByID retrieves a rental by ID.
	GetByID(ctx context.Context, id string) (*domain.Rental, error)

	// GetActiveByDriverID retrieves the driver's ACTIVE rental, or nil
	// when there is none.
	GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Rental, error)

	// GetActiveByVehicleID retrieves the vehicle's ACTIVE rental, or nil
	// when there is none.
	GetActiveByVehicleID(ctx context.Context, vehicleID string) (*domain.Rental, error)

	// GetAll retrieves all rentals, optionally filtered by status
	// (empty string means no filter).
	GetAll(ctx context.Context, status domain.RentalStatus) ([]*domain.Rental, error)

	// ListDueForInvoicing retrieves ACTIVE rentals whose next payment
	// date is on or before the cutoff.
	ListDueForInvoicing(ctx context.Context, cutoff time.Time) ([]*domain.Rental, error)

	// UpdateNextPaymentDate moves the rental's rolling payment date.
	UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error
}
