package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// TollRepository is a PostgreSQL implementation of
// repository.TollRepository.
type TollRepository struct {
	q Querier
}

// NewTollRepository creates a new PostgreSQL toll charge repository.
func NewTollRepository(db *sql.DB) *TollRepository {
	return &TollRepository{q: db}
}

// Create adds a new toll charge.
func (r *TollRepository) Create(ctx context.Context, toll *domain.TollCharge) error {
	query := `INSERT INTO toll_charges (id, plate, date, amount, location, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`
	_, err := r.q.ExecContext(ctx, query,
		toll.ID, toll.Plate, toll.Date, toll.Amount, toll.Location, toll.InvoiceID, toll.CreatedAt,
	)
	return mapError(err)
}

// List retrieves toll charges matching the filter, newest first.
func (r *TollRepository) List(ctx context.Context, filter repository.TollFilter) ([]*domain.TollCharge, error) {
	query := `SELECT id, plate, date, amount, COALESCE(location, ''), COALESCE(invoice_id, ''), created_at
		FROM toll_charges`
	var args []any
	var where []string

	if filter.Plate != "" {
		args = append(args, filter.Plate)
		where = append(where, fmt.Sprintf("plate = $%d", len(args)))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}
	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY date DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tolls []*domain.TollCharge
	for rows.Next() {
		var t domain.TollCharge
		if err := rows.Scan(&t.ID, &t.Plate, &t.Date, &t.Amount, &t.Location, &t.InvoiceID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tolls = append(tolls, &t)
	}
	return tolls, rows.Err()
}
