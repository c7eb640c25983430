package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// VehicleService handles fleet vehicle operations and per-vehicle
// compliance classification.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	rentalRepo  repository.RentalRepository
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	rentalRepo repository.RentalRepository,
) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		rentalRepo:  rentalRepo,
	}
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComplianceStatus classifies an expiry date against today:
// RED when already passed, AMBER within 30 days, GREEN beyond that.
// Pure function of (expiry, today); today is midnight-truncated.
func ComplianceStatus(expiry, today time.Time) domain.ComplianceLevel {
	today = startOfDay(today)
	days := int(math.Ceil(expiry.Sub(today).Hours() / 24))

	switch {
	case days < 0:
		return domain.ComplianceRed
	case days <= 30:
		return domain.ComplianceAmber
	default:
		return domain.ComplianceGreen
	}
}

// complianceOf evaluates all three expiry dates of a vehicle.
func complianceOf(v *domain.Vehicle, today time.Time) domain.VehicleCompliance {
	return domain.VehicleCompliance{
		Rego:     ComplianceStatus(v.RegoExpiry, today),
		Ctp:      ComplianceStatus(v.CtpExpiry, today),
		PinkSlip: ComplianceStatus(v.PinkSlipExpiry, today),
	}
}

// expiryIssues lists the alert-typed issues for every expiry date
// already in the past.
func expiryIssues(v *domain.Vehicle, today time.Time) []domain.AlertType {
	today = startOfDay(today)
	var issues []domain.AlertType
	if v.RegoExpiry.Before(today) {
		issues = append(issues, domain.AlertTypeRegoExpiry)
	}
	if v.CtpExpiry.Before(today) {
		issues = append(issues, domain.AlertTypeCtpExpiry)
	}
	if v.PinkSlipExpiry.Before(today) {
		issues = append(issues, domain.AlertTypePinkSlipExpiry)
	}
	return issues
}

func issueMessage(issue domain.AlertType, v *domain.Vehicle) string {
	const dateFormat = "02/01/2006"
	switch issue {
	case domain.AlertTypeRegoExpiry:
		return "Registration expired on " + v.RegoExpiry.Format(dateFormat)
	case domain.AlertTypeCtpExpiry:
		return "CTP (Green Slip) expired on " + v.CtpExpiry.Format(dateFormat)
	default:
		return "Pink Slip (Safety Check) expired on " + v.PinkSlipExpiry.Format(dateFormat)
	}
}

// ComplianceResult is the verdict of a single-vehicle compliance check.
type ComplianceResult struct {
	IsCompliant bool            `json:"isCompliant"`
	Issues      []string        `json:"issues"`
	Vehicle     *domain.Vehicle `json:"vehicle"`
}

// ValidateCompliance recomputes the vehicle's three expiry checks
// against today and forces the status to SUSPENDED when any has
// lapsed. Suspension is idempotent.
func (s *VehicleService) ValidateCompliance(ctx context.Context, vehicleID string) (*ComplianceResult, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	issues := expiryIssues(vehicle, time.Now())
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issueMessage(issue, vehicle))
	}

	if len(issues) > 0 && vehicle.Status != domain.VehicleStatusSuspended {
		if err := s.vehicleRepo.UpdateStatus(ctx, vehicleID, domain.VehicleStatusSuspended); err != nil {
			return nil, err
		}
		vehicle.Status = domain.VehicleStatusSuspended
	}

	return &ComplianceResult{
		IsCompliant: len(issues) == 0,
		Issues:      messages,
		Vehicle:     vehicle,
	}, nil
}

// CreateVehicleRequest contains the parameters for adding a vehicle.
type CreateVehicleRequest struct {
	VIN            string
	Plate          string
	Make           string
	Model          string
	Year           int
	Color          string
	RegoExpiry     time.Time
	CtpExpiry      time.Time
	PinkSlipExpiry time.Time
	WeeklyRate     float64
	BondAmount     float64
}

// Create inserts a new vehicle. Status is forced to DRAFT regardless
// of caller input.
func (s *VehicleService) Create(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		ID:             uuid.New().String(),
		VIN:            req.VIN,
		Plate:          req.Plate,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		Color:          req.Color,
		Status:         domain.VehicleStatusDraft,
		RegoExpiry:     req.RegoExpiry,
		CtpExpiry:      req.CtpExpiry,
		PinkSlipExpiry: req.PinkSlipExpiry,
		WeeklyRate:     req.WeeklyRate,
		BondAmount:     req.BondAmount,
		CreatedAt:      time.Now(),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVehicleExists
		}
		return nil, err
	}
	return vehicle, nil
}

// UpdateVehicleRequest contains optional fields for a partial update.
// Nil pointers leave the current value untouched.
type UpdateVehicleRequest struct {
	VIN            *string
	Plate          *string
	Make           *string
	Model          *string
	Year           *int
	Color          *string
	Status         *domain.VehicleStatus
	RegoExpiry     *time.Time
	CtpExpiry      *time.Time
	PinkSlipExpiry *time.Time
	WeeklyRate     *float64
	BondAmount     *float64
}

// Update applies a partial update and then re-validates compliance, so
// a lapsed date set by the caller immediately suspends the vehicle.
func (s *VehicleService) Update(ctx context.Context, vehicleID string, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.VIN != nil {
		vehicle.VIN = *req.VIN
	}
	if req.Plate != nil {
		vehicle.Plate = *req.Plate
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.Status != nil {
		vehicle.Status = *req.Status
	}
	if req.RegoExpiry != nil {
		vehicle.RegoExpiry = *req.RegoExpiry
	}
	if req.CtpExpiry != nil {
		vehicle.CtpExpiry = *req.CtpExpiry
	}
	if req.PinkSlipExpiry != nil {
		vehicle.PinkSlipExpiry = *req.PinkSlipExpiry
	}
	if req.WeeklyRate != nil {
		vehicle.WeeklyRate = *req.WeeklyRate
	}
	if req.BondAmount != nil {
		vehicle.BondAmount = *req.BondAmount
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVehicleExists
		}
		return nil, err
	}

	result, err := s.ValidateCompliance(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return result.Vehicle, nil
}

// Delete removes a vehicle unless an active rental references it.
func (s *VehicleService) Delete(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return ErrInvalidVehicleID
	}

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return err
	}

	active, err := s.rentalRepo.GetActiveByVehicleID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if active != nil {
		return ErrVehicleHasActiveRental
	}

	return s.vehicleRepo.Delete(ctx, vehicleID)
}

// VehicleWithCompliance pairs a vehicle with its traffic-light verdict
// and, when rented, the current driver.
type VehicleWithCompliance struct {
	Vehicle       *domain.Vehicle          `json:"vehicle"`
	Compliance    domain.VehicleCompliance `json:"compliance"`
	CurrentDriver *domain.Driver           `json:"currentDriver,omitempty"`
}

// Get retrieves a single vehicle with its compliance verdict.
func (s *VehicleService) Get(ctx context.Context, vehicleID string) (*VehicleWithCompliance, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return s.withCompliance(ctx, vehicle, time.Now())
}

// GetAllWithCompliance lists every vehicle with its compliance verdict
// and current driver.
func (s *VehicleService) GetAllWithCompliance(ctx context.Context) ([]*VehicleWithCompliance, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*VehicleWithCompliance, 0, len(vehicles))
	for _, vehicle := range vehicles {
		entry, err := s.withCompliance(ctx, vehicle, now)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *VehicleService) withCompliance(ctx context.Context, vehicle *domain.Vehicle, now time.Time) (*VehicleWithCompliance, error) {
	entry := &VehicleWithCompliance{
		Vehicle:    vehicle,
		Compliance: complianceOf(vehicle, now),
	}

	rental, err := s.rentalRepo.GetActiveByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	if rental != nil {
		driver, err := s.driverRepo.GetByID(ctx, rental.DriverID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		entry.CurrentDriver = driver
	}
	return entry, nil
}
