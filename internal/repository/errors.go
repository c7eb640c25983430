package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (VIN, plate, email, license number).
	ErrDuplicate = errors.New("entity already exists")

	// ErrConflict is returned when a guarded state change loses a race,
	// e.g. two concurrent attempts to rent the same vehicle. The loser
	// sees a rejected precondition, never a double assignment.
	ErrConflict = errors.New("conflicting state change")
)
