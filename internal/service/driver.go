package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// DriverService handles driver onboarding state and the
// work-authorization gate.
type DriverService struct {
	driverRepo repository.DriverRepository
	rentalRepo repository.RentalRepository
	vevo       VevoChecker
}

// NewDriverService creates a new DriverService.
func NewDriverService(
	driverRepo repository.DriverRepository,
	rentalRepo repository.RentalRepository,
	vevo VevoChecker,
) *DriverService {
	return &DriverService{driverRepo: driverRepo, rentalRepo: rentalRepo, vevo: vevo}
}

// RegisterDriverRequest contains the parameters for admin-side driver
// registration.
type RegisterDriverRequest struct {
	Name          string
	Email         string
	Phone         string
	LicenseNo     string
	LicenseExpiry time.Time
	PassportNo    string
}

// Register creates a driver. When a passport number is supplied the
// VEVO check runs immediately: DENIED yields an initial status of
// BLOCKED, anything else PENDING_APPROVAL.
func (s *DriverService) Register(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	if req.Email == "" {
		return nil, ErrInvalidEmail
	}

	existing, err := s.driverRepo.FindByEmailOrLicense(ctx, req.Email, req.LicenseNo)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDriverExists
	}

	vevoStatus := domain.VevoStatusPending
	var vevoCheckedAt time.Time
	if req.PassportNo != "" {
		vevoStatus, err = s.vevo.Check(ctx, req.PassportNo)
		if err != nil {
			return nil, err
		}
		vevoCheckedAt = time.Now()
	}

	status := domain.DriverStatusPendingApproval
	if vevoStatus == domain.VevoStatusDenied {
		status = domain.DriverStatusBlocked
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenseNo:     req.LicenseNo,
		LicenseExpiry: req.LicenseExpiry,
		PassportNo:    req.PassportNo,
		VevoStatus:    vevoStatus,
		VevoCheckedAt: vevoCheckedAt,
		Status:        status,
		CreatedAt:     time.Now(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDriverExists
		}
		return nil, err
	}
	return driver, nil
}

// RunVevoCheck re-runs the work-authorization check for an existing
// driver. A DENIED result blocks the driver.
func (s *DriverService) RunVevoCheck(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.PassportNo == "" {
		return nil, ErrNoPassportOnFile
	}

	vevoStatus, err := s.vevo.Check(ctx, driver.PassportNo)
	if err != nil {
		return nil, err
	}

	driver.VevoStatus = vevoStatus
	driver.VevoCheckedAt = time.Now()
	if vevoStatus == domain.VevoStatusDenied {
		driver.Status = domain.DriverStatusBlocked
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Approve activates a pending driver. A driver whose VEVO status is
// DENIED can never be approved through this path, regardless of the
// current account status.
func (s *DriverService) Approve(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.VevoStatus == domain.VevoStatusDenied {
		return nil, ErrVevoDenied
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, domain.DriverStatusActive); err != nil {
		return nil, err
	}
	driver.Status = domain.DriverStatusActive
	return driver, nil
}

// Block unconditionally blocks a driver.
func (s *DriverService) Block(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, domain.DriverStatusBlocked); err != nil {
		return nil, err
	}
	driver.Status = domain.DriverStatusBlocked
	return driver, nil
}

// UpdateDriverRequest contains the optional fields of a driver update.
// Nil fields are left unchanged.
type UpdateDriverRequest struct {
	Name          *string
	Email         *string
	Phone         *string
	LicenseNo     *string
	LicenseExpiry *time.Time
	PassportNo    *string
	Status        *domain.DriverStatus
}

// Update applies a partial update to a driver.
func (s *DriverService) Update(ctx context.Context, driverID string, req UpdateDriverRequest) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.Email != nil {
		driver.Email = *req.Email
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.LicenseNo != nil {
		driver.LicenseNo = *req.LicenseNo
	}
	if req.LicenseExpiry != nil {
		driver.LicenseExpiry = *req.LicenseExpiry
	}
	if req.PassportNo != nil {
		driver.PassportNo = *req.PassportNo
	}
	if req.Status != nil {
		driver.Status = *req.Status
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDriverExists
		}
		return nil, err
	}
	return driver, nil
}

// Delete removes a driver. Refused while the driver holds an active
// rental.
func (s *DriverService) Delete(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	rental, err := s.rentalRepo.GetActiveByDriverID(ctx, driverID)
	if err != nil {
		return err
	}
	if rental != nil {
		return ErrDriverHasActiveRental
	}

	return s.driverRepo.Delete(ctx, driverID)
}

// Get retrieves a driver by ID.
func (s *DriverService) Get(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, driverID)
}

// GetAll retrieves all drivers, optionally filtered by status.
func (s *DriverService) GetAll(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx, status)
}
