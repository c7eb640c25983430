package domain

import "time"

// ShiftStatus represents the state of a driver's working day.
type ShiftStatus string

const (
	ShiftStatusNotStarted ShiftStatus = "NOT_STARTED"
	ShiftStatusActive     ShiftStatus = "ACTIVE"
	ShiftStatusEnded      ShiftStatus = "ENDED"
)

// Shift is one driver's working day on a rental. A shift is created
// NOT_STARTED when the driver first opens their dashboard for the day,
// goes ACTIVE once the start-of-shift condition report is filed, and
// ENDED when the driver clocks off or returns the vehicle.
type Shift struct {
	ID        string
	RentalID  string
	DriverID  string
	Status    ShiftStatus
	StartedAt time.Time // zero until started
	EndedAt   time.Time // zero until ended
	CreatedAt time.Time
}

// ConditionReport records the state of the vehicle at shift start:
// marked damage points, free-text notes and photo references.
type ConditionReport struct {
	ID            string
	ShiftID       string
	VehicleID     string
	DriverID      string
	DamageMarkers string // JSON-encoded marker list, empty when none
	Notes         string
	Photos        []string
	VerifiedAt    time.Time
}
