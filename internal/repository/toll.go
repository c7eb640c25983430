package repository

import (
	"context"
	"time"

	"fleetsync/internal/domain"
)

// TollFilter narrows toll charge listings. Zero values mean no filter.
type TollFilter struct {
	Plate     string
	StartDate time.Time
	EndDate   time.Time
}

// TollRepository defines the persistence operations for toll charges.
type TollRepository interface {
	// Create adds a new toll charge.
	Create(ctx context.Context, toll *domain.TollCharge) error

	// List retrieves toll charges matching the filter, newest first.
	List(ctx context.Context, filter TollFilter) ([]*domain.TollCharge, error)
}
