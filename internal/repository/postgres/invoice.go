package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// InvoiceRepository is a PostgreSQL implementation of
// repository.InvoiceRepository.
type InvoiceRepository struct {
	q Querier
}

// NewInvoiceRepository creates a new PostgreSQL invoice repository.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{q: db}
}

// NewInvoiceRepositoryWithTx creates an invoice repository using a transaction.
func NewInvoiceRepositoryWithTx(tx *sql.Tx) *InvoiceRepository {
	return &InvoiceRepository{q: tx}
}

const invoiceColumns = `id, rental_id, weekly_rate, tolls, fines, credits, amount,
	due_date, status, paid_at, created_at`

func scanInvoice(row interface{ Scan(...any) error }) (*domain.Invoice, error) {
	var inv domain.Invoice
	var paidAt sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.RentalID, &inv.WeeklyRate, &inv.Tolls, &inv.Fines, &inv.Credits,
		&inv.Amount, &inv.DueDate, &inv.Status, &paidAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	inv.PaidAt = paidAt.Time
	return &inv, nil
}

// Create adds a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `INSERT INTO invoices
		(id, rental_id, weekly_rate, tolls, fines, credits, amount, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.ExecContext(ctx, query,
		invoice.ID, invoice.RentalID, invoice.WeeklyRate, invoice.Tolls, invoice.Fines,
		invoice.Credits, invoice.Amount, invoice.DueDate, invoice.Status, invoice.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoice(r.q.QueryRowContext(ctx, query, id))
}

// List retrieves invoices matching the filter, newest due date first.
func (r *InvoiceRepository) List(ctx context.Context, filter repository.InvoiceFilter) ([]*domain.Invoice, error) {
	query := `SELECT i.id, i.rental_id, i.weekly_rate, i.tolls, i.fines, i.credits, i.amount,
		i.due_date, i.status, i.paid_at, i.created_at FROM invoices i`
	var args []any
	var where []string

	if filter.DriverID != "" {
		query += ` JOIN rentals r ON r.id = i.rental_id`
		args = append(args, filter.DriverID)
		where = append(where, fmt.Sprintf("r.driver_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if filter.RentalID != "" {
		args = append(args, filter.RentalID)
		where = append(where, fmt.Sprintf("i.rental_id = $%d", len(args)))
	}
	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY i.due_date DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// FindForPeriod retrieves an invoice for the rental with a due date on
// or after the given date, or nil when there is none.
func (r *InvoiceRepository) FindForPeriod(ctx context.Context, rentalID string, dueOnOrAfter time.Time) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE rental_id = $1 AND due_date >= $2 LIMIT 1`
	inv, err := scanInvoice(r.q.QueryRowContext(ctx, query, rentalID, dueOnOrAfter))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return inv, err
}

// FindPendingByRentalID retrieves the rental's oldest PENDING invoice, or nil.
func (r *InvoiceRepository) FindPendingByRentalID(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE rental_id = $1 AND status = $2 ORDER BY due_date LIMIT 1`
	inv, err := scanInvoice(r.q.QueryRowContext(ctx, query, rentalID, domain.InvoiceStatusPending))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return inv, err
}

// MarkPaid sets status PAID and stamps paidAt.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	query := `UPDATE invoices SET status = $1, paid_at = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, domain.InvoiceStatusPaid, paidAt, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

// MarkOverdueBefore transitions PENDING invoices due strictly before
// the given date to OVERDUE.
func (r *InvoiceRepository) MarkOverdueBefore(ctx context.Context, today time.Time) (int64, error) {
	query := `UPDATE invoices SET status = $1 WHERE status = $2 AND due_date < $3`
	result, err := r.q.ExecContext(ctx, query, domain.InvoiceStatusOverdue, domain.InvoiceStatusPending, today)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

// AddTolls increments the invoice's toll component and total amount.
func (r *InvoiceRepository) AddTolls(ctx context.Context, id string, amount float64) error {
	query := `UPDATE invoices SET tolls = tolls + $1, amount = amount + $1 WHERE id = $2`
	result, err := r.q.ExecContext(ctx, query, amount, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}
