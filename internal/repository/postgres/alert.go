package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// AlertRepository is a PostgreSQL implementation of
// repository.AlertRepository.
type AlertRepository struct {
	q Querier
}

// NewAlertRepository creates a new PostgreSQL alert repository.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{q: db}
}

const alertColumns = `id, vehicle_id, type, message, resolved, resolved_at, created_at`

func scanAlert(row interface{ Scan(...any) error }) (*domain.Alert, error) {
	var a domain.Alert
	var resolvedAt sql.NullTime
	err := row.Scan(&a.ID, &a.VehicleID, &a.Type, &a.Message, &a.Resolved, &resolvedAt, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	a.ResolvedAt = resolvedAt.Time
	return &a, nil
}

// Create adds a new alert.
func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `INSERT INTO alerts (id, vehicle_id, type, message, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.ExecContext(ctx, query,
		alert.ID, alert.VehicleID, alert.Type, alert.Message, alert.Resolved, alert.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves an alert by ID.
func (r *AlertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	return scanAlert(r.q.QueryRowContext(ctx, query, id))
}

// FindUnresolved retrieves the unresolved alert of the given type for
// the vehicle, or nil when there is none.
func (r *AlertRepository) FindUnresolved(ctx context.Context, vehicleID string, alertType domain.AlertType) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts
		WHERE vehicle_id = $1 AND type = $2 AND resolved = FALSE LIMIT 1`
	alert, err := scanAlert(r.q.QueryRowContext(ctx, query, vehicleID, alertType))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return alert, err
}

// ListUnresolved retrieves all unresolved alerts, newest first.
func (r *AlertRepository) ListUnresolved(ctx context.Context) ([]*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE resolved = FALSE ORDER BY created_at DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// Resolve marks the alert resolved and stamps resolvedAt.
func (r *AlertRepository) Resolve(ctx context.Context, id string, resolvedAt time.Time) error {
	query := `UPDATE alerts SET resolved = TRUE, resolved_at = $1 WHERE id = $2`
	result, err := r.q.ExecContext(ctx, query, resolvedAt, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}
