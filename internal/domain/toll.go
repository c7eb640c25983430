package domain

import "time"

// TollCharge is an externally sourced road-toll charge against a
// plate. Immutable once created except for its invoice link.
type TollCharge struct {
	ID        string
	Plate     string
	Date      time.Time
	Amount    float64
	Location  string
	InvoiceID string // empty when not linked to an invoice
	CreatedAt time.Time
}
