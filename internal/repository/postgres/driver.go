package postgres

import (
	"context"
	"database/sql"

	"fleetsync/internal/domain"
)

// DriverRepository is a PostgreSQL implementation of
// repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, name, email, COALESCE(phone, ''), license_no, license_expiry,
	COALESCE(passport_no, ''), vevo_status, vevo_checked_at, status, balance, created_at`

func scanDriver(row interface{ Scan(...any) error }) (*domain.Driver, error) {
	var d domain.Driver
	var licenseExpiry, vevoCheckedAt sql.NullTime
	err := row.Scan(
		&d.ID, &d.Name, &d.Email, &d.Phone, &d.LicenseNo, &licenseExpiry,
		&d.PassportNo, &d.VevoStatus, &vevoCheckedAt, &d.Status, &d.Balance, &d.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	d.LicenseExpiry = licenseExpiry.Time
	d.VevoCheckedAt = vevoCheckedAt.Time
	return &d, nil
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `INSERT INTO drivers
		(id, name, email, phone, license_no, license_expiry, passport_no, vevo_status, vevo_checked_at, status, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.ExecContext(ctx, query,
		driver.ID, driver.Name, driver.Email, driver.Phone, driver.LicenseNo,
		toNullTime(driver.LicenseExpiry), driver.PassportNo, driver.VevoStatus,
		toNullTime(driver.VevoCheckedAt), driver.Status, driver.Balance, driver.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return scanDriver(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a driver by email.
func (r *DriverRepository) GetByEmail(ctx context.Context, email string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE email = $1`
	return scanDriver(r.q.QueryRowContext(ctx, query, email))
}

// FindByEmailOrLicense retrieves a driver matching either field.
func (r *DriverRepository) FindByEmailOrLicense(ctx context.Context, email, licenseNo string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE email = $1 OR license_no = $2 LIMIT 1`
	return scanDriver(r.q.QueryRowContext(ctx, query, email, licenseNo))
}

// GetAll retrieves all drivers, optionally filtered by status.
func (r *DriverRepository) GetAll(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// Update persists all mutable fields of a driver.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	query := `UPDATE drivers SET
		name = $1, email = $2, phone = $3, license_no = $4, license_expiry = $5,
		passport_no = $6, vevo_status = $7, vevo_checked_at = $8, status = $9, balance = $10
		WHERE id = $11`
	result, err := r.q.ExecContext(ctx, query,
		driver.Name, driver.Email, driver.Phone, driver.LicenseNo, toNullTime(driver.LicenseExpiry),
		driver.PassportNo, driver.VevoStatus, toNullTime(driver.VevoCheckedAt),
		driver.Status, driver.Balance, driver.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// UpdateStatus updates only the status of a driver.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE drivers SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// AdjustBalance adds delta to the driver's running balance.
func (r *DriverRepository) AdjustBalance(ctx context.Context, id string, delta float64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE drivers SET balance = balance + $1 WHERE id = $2`, delta, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// Delete removes a driver.
func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}
