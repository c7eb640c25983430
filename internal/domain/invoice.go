package domain

import "time"

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// Invoice is a weekly bill for a rental.
// Amount = WeeklyRate + Tolls + Fines - Credits, computed at creation
// and only adjusted afterwards by toll-linking increments.
type Invoice struct {
	ID         string
	RentalID   string
	WeeklyRate float64
	Tolls      float64
	Fines      float64
	Credits    float64
	Amount     float64
	DueDate    time.Time
	Status     InvoiceStatus
	PaidAt     time.Time // zero until paid
	CreatedAt  time.Time
}
