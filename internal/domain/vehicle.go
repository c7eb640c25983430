package domain

import "time"

// VehicleStatus represents the lifecycle status of a fleet vehicle.
type VehicleStatus string

const (
	VehicleStatusDraft     VehicleStatus = "DRAFT"
	VehicleStatusAvailable VehicleStatus = "AVAILABLE"
	VehicleStatusRented    VehicleStatus = "RENTED"
	VehicleStatusSuspended VehicleStatus = "SUSPENDED"
)

// ComplianceLevel is the traffic-light classification of a single
// regulatory expiry date.
type ComplianceLevel string

const (
	ComplianceGreen ComplianceLevel = "GREEN" // more than 30 days away
	ComplianceAmber ComplianceLevel = "AMBER" // within 30 days
	ComplianceRed   ComplianceLevel = "RED"   // already expired
)

// Vehicle represents a fleet vehicle and its three NSW compliance
// deadlines: registration, CTP (green slip) insurance and the pink
// slip safety check.
type Vehicle struct {
	ID             string
	VIN            string
	Plate          string
	Make           string
	Model          string
	Year           int
	Color          string
	Status         VehicleStatus
	RegoExpiry     time.Time
	CtpExpiry      time.Time
	PinkSlipExpiry time.Time
	WeeklyRate     float64
	BondAmount     float64
	CreatedAt      time.Time
}

// VehicleCompliance holds the traffic-light verdict for each of the
// vehicle's expiry dates.
type VehicleCompliance struct {
	Rego     ComplianceLevel `json:"rego"`
	Ctp      ComplianceLevel `json:"ctp"`
	PinkSlip ComplianceLevel `json:"pinkSlip"`
}
