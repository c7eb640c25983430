package domain

import "time"

// AccidentReport is filed by a driver from the road, possibly offline
// first and synced later. Third-party fields stay empty for
// single-vehicle incidents.
type AccidentReport struct {
	ID                string
	RentalID          string
	DriverID          string
	VehicleID         string
	IsSafe            bool
	EmergencyCalled   bool
	ScenePhotos       []string
	ThirdPartyName    string
	ThirdPartyPhone   string
	ThirdPartyPlate   string
	ThirdPartyInsurer string
	Description       string
	Location          string
	OccurredAt        time.Time
	SyncedAt          time.Time
	CreatedAt         time.Time
}
