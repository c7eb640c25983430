package domain

import "time"

// VevoStatus is the result of a VEVO (work authorization) check.
type VevoStatus string

const (
	VevoStatusPending    VevoStatus = "PENDING"
	VevoStatusApproved   VevoStatus = "APPROVED"
	VevoStatusDenied     VevoStatus = "DENIED"
	VevoStatusRestricted VevoStatus = "RESTRICTED"
)

// DriverStatus represents the account status of a driver.
type DriverStatus string

const (
	DriverStatusPendingApproval DriverStatus = "PENDING_APPROVAL"
	DriverStatusActive          DriverStatus = "ACTIVE"
	DriverStatusBlocked         DriverStatus = "BLOCKED"
	DriverStatusInactive        DriverStatus = "INACTIVE"
)

// Driver represents a rideshare driver renting from the fleet.
// Balance is a signed currency amount; negative means the driver owes
// money.
type Driver struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	LicenseNo     string
	LicenseExpiry time.Time // zero when unknown
	PassportNo    string
	VevoStatus    VevoStatus
	VevoCheckedAt time.Time // zero when never checked
	Status        DriverStatus
	Balance       float64
	CreatedAt     time.Time
}
