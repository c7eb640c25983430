package repository

import (
	"context"
	"time"

	"fleetsync/internal/domain"
)

// ShiftRepository defines the persistence operations for driver
// shifts.
type ShiftRepository interface {
	// Create adds a new shift.
	Create(ctx context.Context, shift *domain.Shift) error

	// GetByID retrieves a shift by ID.
	GetByID(ctx context.Context, id string) (*domain.Shift, error)

	// FindForRentalSince retrieves the driver's shift on the rental
	// created at or after the given instant, or nil when there is none.
	FindForRentalSince(ctx context.Context, rentalID, driverID string, since time.Time) (*domain.Shift, error)

	// Start marks the shift ACTIVE and stamps startedAt.
	Start(ctx context.Context, id string, startedAt time.Time) error

	// End marks the shift ENDED and stamps endedAt.
	End(ctx context.Context, id string, endedAt time.Time) error
}

// ConditionReportRepository defines the persistence operations for
// start-of-shift condition reports.
type ConditionReportRepository interface {
	// Create adds a new condition report.
	Create(ctx context.Context, report *domain.ConditionReport) error

	// GetByShiftID retrieves the condition report filed for a shift, or
	// nil when none was filed.
	GetByShiftID(ctx context.Context, shiftID string) (*domain.ConditionReport, error)
}

// AccidentReportRepository defines the persistence operations for
// accident reports.
type AccidentReportRepository interface {
	// Create adds a new accident report.
	Create(ctx context.Context, report *domain.AccidentReport) error

	// ListByVehicleID retrieves all accident reports for a vehicle,
	// newest first.
	ListByVehicleID(ctx context.Context, vehicleID string) ([]*domain.AccidentReport, error)
}
