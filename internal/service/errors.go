package service

import "errors"

var (
	// ErrInvalidVehicleID is returned when a vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRentalID is returned when a rental ID is empty.
	ErrInvalidRentalID = errors.New("invalid rental id")

	// ErrInvalidInvoiceID is returned when an invoice ID is empty.
	ErrInvalidInvoiceID = errors.New("invalid invoice id")

	// ErrInvalidEmail is returned when an email is missing or malformed.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidPassportNo is returned when a passport number is required
	// but missing.
	ErrInvalidPassportNo = errors.New("passport number required")

	// ErrVehicleExists is returned when a VIN or plate is already in use.
	ErrVehicleExists = errors.New("vehicle with this VIN or plate already exists")

	// ErrVehicleSuspended is returned when assigning a suspended vehicle.
	ErrVehicleSuspended = errors.New("cannot assign a suspended vehicle")

	// ErrVehicleAlreadyRented is returned when assigning a rented vehicle.
	ErrVehicleAlreadyRented = errors.New("vehicle is already rented")

	// ErrVehicleHasActiveRental is returned when deleting a vehicle that
	// is referenced by an active rental.
	ErrVehicleHasActiveRental = errors.New("cannot delete vehicle with active rental")

	// ErrDriverExists is returned when an email or license number is
	// already registered.
	ErrDriverExists = errors.New("driver with this email or license already exists")

	// ErrDriverBlocked is returned when assigning a vehicle to a blocked
	// driver.
	ErrDriverBlocked = errors.New("cannot assign vehicle to blocked driver")

	// ErrDriverNotActive is returned when the driver is not ACTIVE.
	ErrDriverNotActive = errors.New("driver must be active to rent a vehicle")

	// ErrDriverHasActiveRental is returned when the driver already holds
	// an active rental.
	ErrDriverHasActiveRental = errors.New("driver already has an active rental")

	// ErrVevoDenied is the hard invariant: a DENIED VEVO check can never
	// be administratively overridden into an active driver.
	ErrVevoDenied = errors.New("cannot approve driver with DENIED VEVO status")

	// ErrNoPassportOnFile is returned when re-running a VEVO check for a
	// driver without a passport number.
	ErrNoPassportOnFile = errors.New("no passport number on file")

	// ErrRentalNotActive is returned when ending a rental that is not
	// currently active.
	ErrRentalNotActive = errors.New("rental is not active")

	// ErrShiftEnded is returned when starting a shift that has already
	// ended.
	ErrShiftEnded = errors.New("shift has already ended")

	// ErrUserExists is returned when a login email is already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid is returned for an unknown onboarding token.
	ErrTokenInvalid = errors.New("invalid onboarding token")

	// ErrTokenUsed is returned for an already-consumed onboarding token.
	ErrTokenUsed = errors.New("onboarding token already used")

	// ErrTokenExpired is returned for an expired onboarding token.
	ErrTokenExpired = errors.New("onboarding token expired")

	// ErrApplicationRejected is returned when an onboarding submission
	// fails its VEVO check; the token is consumed and no driver is created.
	ErrApplicationRejected = errors.New("application rejected - VEVO check failed")
)
