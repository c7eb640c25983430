package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// RentalRepository is a PostgreSQL implementation of
// repository.RentalRepository. It holds the *sql.DB (not just a
// Querier) because CreateActive and Complete open their own
// transactions for the rental/vehicle status pair.
type RentalRepository struct {
	db *sql.DB
	q  Querier
}

// NewRentalRepository creates a new PostgreSQL rental repository.
func NewRentalRepository(db *sql.DB) *RentalRepository {
	return &RentalRepository{db: db, q: db}
}

const rentalColumns = `id, driver_id, vehicle_id, start_date, end_date,
	weekly_rate, bond_amount, next_payment_date, status, created_at`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	var rental domain.Rental
	var endDate sql.NullTime
	err := row.Scan(
		&rental.ID, &rental.DriverID, &rental.VehicleID, &rental.StartDate, &endDate,
		&rental.WeeklyRate, &rental.BondAmount, &rental.NextPaymentDate, &rental.Status, &rental.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	rental.EndDate = endDate.Time
	return &rental, nil
}

// CreateActive inserts an ACTIVE rental and flips the vehicle to
// RENTED in one transaction. The vehicle update is guarded so a
// concurrent renter loses with ErrConflict instead of producing a
// double assignment.
func (r *RentalRepository) CreateActive(ctx context.Context, rental *domain.Rental) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `INSERT INTO rentals
		(id, driver_id, vehicle_id, start_date, weekly_rate, bond_amount, next_payment_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err = tx.ExecContext(ctx, query,
		rental.ID, rental.DriverID, rental.VehicleID, rental.StartDate,
		rental.WeeklyRate, rental.BondAmount, rental.NextPaymentDate, rental.Status, rental.CreatedAt,
	); err != nil {
		return mapError(err)
	}

	guard := `UPDATE vehicles SET status = $1 WHERE id = $2 AND status NOT IN ($3, $4)`
	result, err := tx.ExecContext(ctx, guard,
		domain.VehicleStatusRented, rental.VehicleID,
		domain.VehicleStatusRented, domain.VehicleStatusSuspended,
	)
	if err != nil {
		return mapError(err)
	}
	if err = checkAffected(result); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = repository.ErrConflict
		}
		return err
	}

	return tx.Commit()
}

// Complete marks the rental COMPLETED and releases the vehicle back to
// AVAILABLE in one transaction.
func (r *RentalRepository) Complete(ctx context.Context, rental *domain.Rental, endDate time.Time) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `UPDATE rentals SET status = $1, end_date = $2 WHERE id = $3 AND status = $4`
	result, err := tx.ExecContext(ctx, query,
		domain.RentalStatusCompleted, endDate, rental.ID, domain.RentalStatusActive,
	)
	if err != nil {
		return mapError(err)
	}
	if err = checkAffected(result); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = repository.ErrConflict
		}
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE vehicles SET status = $1 WHERE id = $2`,
		domain.VehicleStatusAvailable, rental.VehicleID,
	); err != nil {
		return mapError(err)
	}

	return tx.Commit()
}

// GetByID retrieves a rental by ID.
func (r *RentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return scanRental(r.q.QueryRowContext(ctx, query, id))
}

// GetActiveByDriverID retrieves the driver's ACTIVE rental, or nil.
func (r *RentalRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE driver_id = $1 AND status = $2 LIMIT 1`
	rental, err := scanRental(r.q.QueryRowContext(ctx, query, driverID, domain.RentalStatusActive))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rental, err
}

// GetActiveByVehicleID retrieves the vehicle's ACTIVE rental, or nil.
func (r *RentalRepository) GetActiveByVehicleID(ctx context.Context, vehicleID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vehicle_id = $1 AND status = $2 LIMIT 1`
	rental, err := scanRental(r.q.QueryRowContext(ctx, query, vehicleID, domain.RentalStatusActive))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rental, err
}

// GetAll retrieves all rentals, optionally filtered by status.
func (r *RentalRepository) GetAll(ctx context.Context, status domain.RentalStatus) ([]*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryRentals(ctx, query, args...)
}

// ListDueForInvoicing retrieves ACTIVE rentals whose next payment date
// is on or before the cutoff.
func (r *RentalRepository) ListDueForInvoicing(ctx context.Context, cutoff time.Time) ([]*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
		WHERE status = $1 AND next_payment_date <= $2 ORDER BY next_payment_date`
	return r.queryRentals(ctx, query, domain.RentalStatusActive, cutoff)
}

// UpdateNextPaymentDate moves the rental's rolling payment date.
func (r *RentalRepository) UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error {
	result, err := r.q.ExecContext(ctx, `UPDATE rentals SET next_payment_date = $1 WHERE id = $2`, next, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

func (r *RentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]*domain.Rental, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []*domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}
