package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// RentalService manages the lifecycle of vehicle assignments.
type RentalService struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
}

// NewRentalService creates a new RentalService.
func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
) *RentalService {
	return &RentalService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
	}
}

// CreateRentalRequest contains the parameters for assigning a vehicle
// to a driver. WeeklyRate and BondAmount are the negotiated terms of
// this deal, snapshotted onto the rental independently of the
// vehicle's listed rate.
type CreateRentalRequest struct {
	DriverID   string
	VehicleID  string
	WeeklyRate float64
	BondAmount float64
	StartDate  time.Time
}

// Create assigns a vehicle to a driver. Guards run in a fixed order:
// vehicle must exist, not be SUSPENDED, not be RENTED; the driver must
// exist, not be BLOCKED, be ACTIVE, and hold no other active rental.
// The rental insert and the vehicle flip to RENTED commit atomically,
// so a concurrent assignment of the same vehicle loses with a conflict
// instead of double-renting it.
func (s *RentalService) Create(ctx context.Context, req CreateRentalRequest) (*domain.Rental, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status == domain.VehicleStatusSuspended {
		return nil, ErrVehicleSuspended
	}
	if vehicle.Status == domain.VehicleStatusRented {
		return nil, ErrVehicleAlreadyRented
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if driver.Status == domain.DriverStatusBlocked {
		return nil, ErrDriverBlocked
	}
	if driver.Status != domain.DriverStatusActive {
		return nil, ErrDriverNotActive
	}

	existing, err := s.rentalRepo.GetActiveByDriverID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDriverHasActiveRental
	}

	start := req.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	rental := &domain.Rental{
		ID:              uuid.New().String(),
		DriverID:        req.DriverID,
		VehicleID:       req.VehicleID,
		StartDate:       start,
		WeeklyRate:      req.WeeklyRate,
		BondAmount:      req.BondAmount,
		NextPaymentDate: start.AddDate(0, 0, 7),
		Status:          domain.RentalStatusActive,
		CreatedAt:       time.Now(),
	}

	if err := s.rentalRepo.CreateActive(ctx, rental); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrVehicleAlreadyRented
		}
		return nil, err
	}
	return rental, nil
}

// End completes an active rental and releases the vehicle back to
// AVAILABLE. Both writes commit atomically.
func (s *RentalService) End(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if rentalID == "" {
		return nil, ErrInvalidRentalID
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, ErrRentalNotActive
	}

	endDate := time.Now()
	if err := s.rentalRepo.Complete(ctx, rental, endDate); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrRentalNotActive
		}
		return nil, err
	}

	rental.Status = domain.RentalStatusCompleted
	rental.EndDate = endDate
	return rental, nil
}

// Get retrieves a rental by ID.
func (s *RentalService) Get(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if rentalID == "" {
		return nil, ErrInvalidRentalID
	}
	return s.rentalRepo.GetByID(ctx, rentalID)
}

// GetAll retrieves all rentals, optionally filtered by status.
func (s *RentalService) GetAll(ctx context.Context, status domain.RentalStatus) ([]*domain.Rental, error) {
	return s.rentalRepo.GetAll(ctx, status)
}

// RentalDetail is a rental joined with its driver and vehicle.
type RentalDetail struct {
	Rental  *domain.Rental  `json:"rental"`
	Driver  *domain.Driver  `json:"driver"`
	Vehicle *domain.Vehicle `json:"vehicle"`
}

// GetActive lists all active rentals with driver and vehicle attached.
func (s *RentalService) GetActive(ctx context.Context) ([]*RentalDetail, error) {
	rentals, err := s.rentalRepo.GetAll(ctx, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}

	details := make([]*RentalDetail, 0, len(rentals))
	for _, rental := range rentals {
		detail := &RentalDetail{Rental: rental}

		driver, err := s.driverRepo.GetByID(ctx, rental.DriverID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		detail.Driver = driver

		vehicle, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		detail.Vehicle = vehicle

		details = append(details, detail)
	}
	return details, nil
}

// GetDueForInvoicing lists active rentals whose next payment date
// falls within the next three days.
func (s *RentalService) GetDueForInvoicing(ctx context.Context) ([]*domain.Rental, error) {
	cutoff := time.Now().AddDate(0, 0, 3)
	return s.rentalRepo.ListDueForInvoicing(ctx, cutoff)
}
