package repository

import (
	"context"
	"time"

	"fleetsync/internal/domain"
)

// AlertRepository defines the persistence operations for compliance
// alerts.
type AlertRepository interface {
	// Create adds a new alert.
	Create(ctx context.Context, alert *domain.Alert) error

	// GetByID retrieves an alert by ID.
	GetByID(ctx context.Context, id string) (*domain.Alert, error)

	// FindUnresolved retrieves the unresolved alert of the given type
	// for the vehicle, or nil when there is none.
	FindUnresolved(ctx context.Context, vehicleID string, alertType domain.AlertType) (*domain.Alert, error)

	// ListUnresolved retrieves all unresolved alerts, newest first.
	ListUnresolved(ctx context.Context) ([]*domain.Alert, error)

	// Resolve marks the alert resolved and stamps resolvedAt.
	Resolve(ctx context.Context, id string, resolvedAt time.Time) error
}
