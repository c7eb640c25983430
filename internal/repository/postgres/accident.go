package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"fleetsync/internal/domain"
)

// AccidentReportRepository is a PostgreSQL implementation of
// repository.AccidentReportRepository.
type AccidentReportRepository struct {
	q Querier
}

// NewAccidentReportRepository creates a new PostgreSQL accident report
// repository.
func NewAccidentReportRepository(db *sql.DB) *AccidentReportRepository {
	return &AccidentReportRepository{q: db}
}

const accidentColumns = `id, COALESCE(rental_id, ''), driver_id, vehicle_id, is_safe, emergency_called,
	scene_photos, COALESCE(third_party_name, ''), COALESCE(third_party_phone, ''),
	COALESCE(third_party_plate, ''), COALESCE(third_party_insurer, ''),
	COALESCE(description, ''), COALESCE(location, ''), occurred_at, synced_at, created_at`

// Create adds a new accident report.
func (r *AccidentReportRepository) Create(ctx context.Context, report *domain.AccidentReport) error {
	query := `INSERT INTO accident_reports
		(id, rental_id, driver_id, vehicle_id, is_safe, emergency_called, scene_photos,
		third_party_name, third_party_phone, third_party_plate, third_party_insurer,
		description, location, occurred_at, synced_at, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.ExecContext(ctx, query,
		report.ID, report.RentalID, report.DriverID, report.VehicleID,
		report.IsSafe, report.EmergencyCalled, pq.Array(report.ScenePhotos),
		report.ThirdPartyName, report.ThirdPartyPhone, report.ThirdPartyPlate,
		report.ThirdPartyInsurer, report.Description, report.Location,
		report.OccurredAt, report.SyncedAt, report.CreatedAt,
	)
	return mapError(err)
}

// ListByVehicleID retrieves all accident reports for a vehicle, newest
// first.
func (r *AccidentReportRepository) ListByVehicleID(ctx context.Context, vehicleID string) ([]*domain.AccidentReport, error) {
	query := `SELECT ` + accidentColumns + ` FROM accident_reports
		WHERE vehicle_id = $1 ORDER BY occurred_at DESC`

	rows, err := r.q.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.AccidentReport
	for rows.Next() {
		var report domain.AccidentReport
		err := rows.Scan(
			&report.ID, &report.RentalID, &report.DriverID, &report.VehicleID,
			&report.IsSafe, &report.EmergencyCalled, pq.Array(&report.ScenePhotos),
			&report.ThirdPartyName, &report.ThirdPartyPhone, &report.ThirdPartyPlate,
			&report.ThirdPartyInsurer, &report.Description, &report.Location,
			&report.OccurredAt, &report.SyncedAt, &report.CreatedAt,
		)
		if err != nil {
			return nil, mapError(err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}
