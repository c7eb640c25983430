package domain

import "time"

// AlertType identifies which compliance deadline triggered an alert.
type AlertType string

const (
	AlertTypeRegoExpiry     AlertType = "REGO_EXPIRY"
	AlertTypeCtpExpiry      AlertType = "CTP_EXPIRY"
	AlertTypePinkSlipExpiry AlertType = "PINK_SLIP_EXPIRY"
)

// Alert is a compliance notification attached to a vehicle. At most
// one unresolved alert of a given type exists per vehicle at any time.
type Alert struct {
	ID         string
	VehicleID  string
	Type       AlertType
	Message    string
	Resolved   bool
	ResolvedAt time.Time // zero until resolved
	CreatedAt  time.Time
}
