package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// ShiftRepository is a PostgreSQL implementation of
// repository.ShiftRepository.
type ShiftRepository struct {
	q Querier
}

// NewShiftRepository creates a new PostgreSQL shift repository.
func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{q: db}
}

const shiftColumns = `id, rental_id, driver_id, status, started_at, ended_at, created_at`

func scanShift(row interface{ Scan(...any) error }) (*domain.Shift, error) {
	var s domain.Shift
	var startedAt, endedAt sql.NullTime
	err := row.Scan(&s.ID, &s.RentalID, &s.DriverID, &s.Status, &startedAt, &endedAt, &s.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	s.StartedAt = startedAt.Time
	s.EndedAt = endedAt.Time
	return &s, nil
}

// Create adds a new shift.
func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	query := `INSERT INTO shifts (id, rental_id, driver_id, status, started_at, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.ExecContext(ctx, query,
		shift.ID, shift.RentalID, shift.DriverID, shift.Status,
		toNullTime(shift.StartedAt), toNullTime(shift.EndedAt), shift.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves a shift by ID.
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	return scanShift(r.q.QueryRowContext(ctx, query, id))
}

// FindForRentalSince retrieves the driver's shift on the rental created
// at or after since, or nil when there is none.
func (r *ShiftRepository) FindForRentalSince(ctx context.Context, rentalID, driverID string, since time.Time) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts
		WHERE rental_id = $1 AND driver_id = $2 AND created_at >= $3
		ORDER BY created_at DESC LIMIT 1`
	shift, err := scanShift(r.q.QueryRowContext(ctx, query, rentalID, driverID, since))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return shift, err
}

// Start marks the shift ACTIVE and stamps startedAt.
func (r *ShiftRepository) Start(ctx context.Context, id string, startedAt time.Time) error {
	query := `UPDATE shifts SET status = $1, started_at = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, domain.ShiftStatusActive, startedAt, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// End marks the shift ENDED and stamps endedAt.
func (r *ShiftRepository) End(ctx context.Context, id string, endedAt time.Time) error {
	query := `UPDATE shifts SET status = $1, ended_at = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, domain.ShiftStatusEnded, endedAt, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// ConditionReportRepository is a PostgreSQL implementation of
// repository.ConditionReportRepository.
type ConditionReportRepository struct {
	q Querier
}

// NewConditionReportRepository creates a new PostgreSQL condition
// report repository.
func NewConditionReportRepository(db *sql.DB) *ConditionReportRepository {
	return &ConditionReportRepository{q: db}
}

// Create adds a new condition report.
func (r *ConditionReportRepository) Create(ctx context.Context, report *domain.ConditionReport) error {
	query := `INSERT INTO condition_reports
		(id, shift_id, vehicle_id, driver_id, damage_markers, notes, photos, verified_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err := r.q.ExecContext(ctx, query,
		report.ID, report.ShiftID, report.VehicleID, report.DriverID,
		report.DamageMarkers, report.Notes, pq.Array(report.Photos), report.VerifiedAt,
	)
	return mapError(err)
}

// GetByShiftID retrieves the condition report filed for a shift, or nil
// when none was filed.
func (r *ConditionReportRepository) GetByShiftID(ctx context.Context, shiftID string) (*domain.ConditionReport, error) {
	query := `SELECT id, shift_id, vehicle_id, driver_id, COALESCE(damage_markers, ''), COALESCE(notes, ''), photos, verified_at
		FROM condition_reports WHERE shift_id = $1`

	var report domain.ConditionReport
	err := r.q.QueryRowContext(ctx, query, shiftID).Scan(
		&report.ID, &report.ShiftID, &report.VehicleID, &report.DriverID,
		&report.DamageMarkers, &report.Notes, pq.Array(&report.Photos), &report.VerifiedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return &report, nil
}
