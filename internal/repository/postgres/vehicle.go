package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"

	"github.com/lib/pq"
)

// VehicleRepository is a PostgreSQL implementation of
// repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, vin, plate, make, model, year, COALESCE(color, ''), status,
	rego_expiry, ctp_expiry, pink_slip_expiry, weekly_rate, bond_amount, created_at`

func scanVehicle(row interface{ Scan(...any) error }) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID, &v.VIN, &v.Plate, &v.Make, &v.Model, &v.Year, &v.Color, &v.Status,
		&v.RegoExpiry, &v.CtpExpiry, &v.PinkSlipExpiry, &v.WeeklyRate, &v.BondAmount, &v.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `INSERT INTO vehicles
		(id, vin, plate, make, model, year, color, status, rego_expiry, ctp_expiry, pink_slip_expiry, weekly_rate, bond_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID, vehicle.VIN, vehicle.Plate, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.Color, vehicle.Status, vehicle.RegoExpiry, vehicle.CtpExpiry,
		vehicle.PinkSlipExpiry, vehicle.WeeklyRate, vehicle.BondAmount, vehicle.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.q.QueryRowContext(ctx, query, id))
}

// GetByPlate retrieves a vehicle by registration plate.
func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE plate = $1`
	return scanVehicle(r.q.QueryRowContext(ctx, query, plate))
}

// GetAll retrieves all vehicles, newest first.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query)
}

// ListByStatuses retrieves vehicles whose status is in the given set.
func (r *VehicleRepository) ListByStatuses(ctx context.Context, statuses ...domain.VehicleStatus) ([]*domain.Vehicle, error) {
	set := make([]string, len(statuses))
	for i, s := range statuses {
		set[i] = string(s)
	}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = ANY($1) ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, pq.Array(set))
}

// ListExpiringBefore retrieves non-suspended vehicles with any expiry
// date on or before the cutoff.
func (r *VehicleRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE status <> $1
		AND (rego_expiry <= $2 OR ctp_expiry <= $2 OR pink_slip_expiry <= $2)
		ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, domain.VehicleStatusSuspended, cutoff)
}

// Update persists all mutable fields of a vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `UPDATE vehicles SET
		vin = $1, plate = $2, make = $3, model = $4, year = $5, color = $6, status = $7,
		rego_expiry = $8, ctp_expiry = $9, pink_slip_expiry = $10, weekly_rate = $11, bond_amount = $12
		WHERE id = $13`
	result, err := r.q.ExecContext(ctx, query,
		vehicle.VIN, vehicle.Plate, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Color,
		vehicle.Status, vehicle.RegoExpiry, vehicle.CtpExpiry, vehicle.PinkSlipExpiry,
		vehicle.WeeklyRate, vehicle.BondAmount, vehicle.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// UpdateStatus updates only the status of a vehicle.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2`
	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// Delete removes a vehicle.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

func (r *VehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]*domain.Vehicle, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// checkAffected converts a zero-row update into ErrNotFound.
func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
