package domain

import "time"

// RentalStatus represents the status of a rental agreement.
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
)

// Rental links one driver to one vehicle for an interval. WeeklyRate
// and BondAmount are snapshots taken at assignment time and do not
// track later changes to the vehicle's listed rate.
type Rental struct {
	ID              string
	DriverID        string
	VehicleID       string
	StartDate       time.Time
	EndDate         time.Time // zero while active
	WeeklyRate      float64
	BondAmount      float64
	NextPaymentDate time.Time
	Status          RentalStatus
	CreatedAt       time.Time
}
