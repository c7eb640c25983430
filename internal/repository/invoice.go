package repository

import (
	"context"
	"time"

	"fleetsync/internal/domain"
)

// InvoiceFilter narrows List results. Zero values mean no filter.
type InvoiceFilter struct {
	Status   domain.InvoiceStatus
	RentalID string
	DriverID string
}

// InvoiceRepository defines the persistence operations for invoices.
type InvoiceRepository interface {
	// Create adds a new invoice.
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by ID.
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)

	// List retrieves invoices matching the filter, newest due date first.
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)

	// FindForPeriod retrieves an invoice for the rental with a due date
	// on or after the given date, or nil when there is none. This is
	// the billing cycle's duplicate guard.
	FindForPeriod(ctx context.Context, rentalID string, dueOnOrAfter time.Time) (*domain.Invoice, error)

	// FindPendingByRentalID retrieves the rental's oldest PENDING
	// invoice, or nil when there is none.
	FindPendingByRentalID(ctx context.Context, rentalID string) (*domain.Invoice, error)

	// MarkPaid sets status PAID and stamps paidAt.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error

	// MarkOverdueBefore transitions PENDING invoices due strictly before
	// the given date to OVERDUE and reports how many rows changed.
	MarkOverdueBefore(ctx context.Context, today time.Time) (int64, error)

	// AddTolls increments the invoice's toll component and total amount.
	AddTolls(ctx context.Context, id string, amount float64) error
}
