package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// DriverDashboardService backs the driver-facing dashboard: the active
// rental view, the daily shift cycle with its start-of-shift condition
// report, vehicle returns and accident reports.
type DriverDashboardService struct {
	rentalRepo    repository.RentalRepository
	vehicleRepo   repository.VehicleRepository
	shiftRepo     repository.ShiftRepository
	conditionRepo repository.ConditionReportRepository
	accidentRepo  repository.AccidentReportRepository
	logger        *zap.Logger
}

// NewDriverDashboardService creates a new DriverDashboardService.
func NewDriverDashboardService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	shiftRepo repository.ShiftRepository,
	conditionRepo repository.ConditionReportRepository,
	accidentRepo repository.AccidentReportRepository,
	logger *zap.Logger,
) *DriverDashboardService {
	return &DriverDashboardService{
		rentalRepo:    rentalRepo,
		vehicleRepo:   vehicleRepo,
		shiftRepo:     shiftRepo,
		conditionRepo: conditionRepo,
		accidentRepo:  accidentRepo,
		logger:        logger,
	}
}

// DashboardView is what a driver sees when opening their dashboard.
// Everything past HasActiveRental is zero when the driver has no
// active rental.
type DashboardView struct {
	HasActiveRental     bool
	RentalID            string
	Vehicle             *domain.Vehicle
	ShiftID             string
	ShiftStatus         domain.ShiftStatus
	StartedAt           time.Time
	LastConditionReport time.Time
}

// ActiveRental builds the dashboard view for a driver. Opening the
// dashboard lazily creates today's shift in NOT_STARTED so the driver
// always has one to start.
func (s *DriverDashboardService) ActiveRental(ctx context.Context, driverID string) (*DashboardView, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	rental, err := s.rentalRepo.GetActiveByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return &DashboardView{HasActiveRental: false}, nil
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	shift, err := s.shiftRepo.FindForRentalSince(ctx, rental.ID, driverID, today)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		shift = &domain.Shift{
			ID:        uuid.New().String(),
			RentalID:  rental.ID,
			DriverID:  driverID,
			Status:    domain.ShiftStatusNotStarted,
			CreatedAt: time.Now(),
		}
		if err := s.shiftRepo.Create(ctx, shift); err != nil {
			return nil, err
		}
	}

	view := &DashboardView{
		HasActiveRental: true,
		RentalID:        rental.ID,
		Vehicle:         vehicle,
		ShiftID:         shift.ID,
		ShiftStatus:     shift.Status,
		StartedAt:       shift.StartedAt,
	}

	report, err := s.conditionRepo.GetByShiftID(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	if report != nil {
		view.LastConditionReport = report.VerifiedAt
	}
	return view, nil
}

// StartShiftRequest carries the start-of-shift condition report filed
// by the driver.
type StartShiftRequest struct {
	ShiftID       string
	VehicleID     string
	DriverID      string
	DamageMarkers string
	Notes         string
	Photos        []string
}

// StartShift flips the shift to ACTIVE and files the condition report
// taken before driving off.
func (s *DriverDashboardService) StartShift(ctx context.Context, req StartShiftRequest) (*domain.Shift, *domain.ConditionReport, error) {
	shift, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return nil, nil, err
	}
	if shift.Status == domain.ShiftStatusEnded {
		return nil, nil, ErrShiftEnded
	}

	now := time.Now()
	if err := s.shiftRepo.Start(ctx, shift.ID, now); err != nil {
		return nil, nil, err
	}
	shift.Status = domain.ShiftStatusActive
	shift.StartedAt = now

	report := &domain.ConditionReport{
		ID:            uuid.New().String(),
		ShiftID:       shift.ID,
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		DamageMarkers: req.DamageMarkers,
		Notes:         req.Notes,
		Photos:        req.Photos,
		VerifiedAt:    now,
	}
	if err := s.conditionRepo.Create(ctx, report); err != nil {
		return nil, nil, err
	}

	s.logger.Info("shift started",
		zap.String("shift_id", shift.ID),
		zap.String("driver_id", req.DriverID),
	)
	return shift, report, nil
}

// EndShift clocks the driver off for the day.
func (s *DriverDashboardService) EndShift(ctx context.Context, shiftID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.shiftRepo.End(ctx, shift.ID, now); err != nil {
		return nil, err
	}
	shift.Status = domain.ShiftStatusEnded
	shift.EndedAt = now
	return shift, nil
}

// ReturnVehicle registers a driver's request to hand the vehicle back.
// The current shift ends immediately; the rental itself stays active
// until an admin completes the return at the depot.
func (s *DriverDashboardService) ReturnVehicle(ctx context.Context, rentalID, shiftID string) error {
	if rentalID == "" {
		return ErrInvalidRentalID
	}
	if shiftID != "" {
		if err := s.shiftRepo.End(ctx, shiftID, time.Now()); err != nil {
			return err
		}
	}

	s.logger.Info("vehicle return requested", zap.String("rental_id", rentalID))
	return nil
}

// AccidentReportRequest is an accident report as filed by the driver,
// possibly captured offline and synced later.
type AccidentReportRequest struct {
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
}

// ReportAccident persists an accident report. OccurredAt defaults to
// now for reports filed on the spot; offline reports carry their
// original timestamp and get stamped with the sync time.
func (s *DriverDashboardService) ReportAccident(ctx context.Context, req AccidentReportRequest) (*domain.AccidentReport, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	now := time.Now()
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	report := &domain.AccidentReport{
		ID:                uuid.New().String(),
		RentalID:          req.RentalID,
		DriverID:          req.DriverID,
		VehicleID:         req.VehicleID,
		IsSafe:            req.IsSafe,
		EmergencyCalled:   req.EmergencyCalled,
		ScenePhotos:       req.ScenePhotos,
		ThirdPartyName:    req.ThirdPartyName,
		ThirdPartyPhone:   req.ThirdPartyPhone,
		ThirdPartyPlate:   req.ThirdPartyPlate,
		ThirdPartyInsurer: req.ThirdPartyInsurer,
		Description:       req.Description,
		Location:          req.Location,
		OccurredAt:        occurredAt,
		SyncedAt:          now,
		CreatedAt:         now,
	}
	if err := s.accidentRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Warn("accident report filed",
		zap.String("vehicle_id", req.VehicleID),
		zap.String("driver_id", req.DriverID),
		zap.Bool("is_safe", req.IsSafe),
	)
	return report, nil
}

// AccidentHistory lists a vehicle's accident reports, newest first.
func (s *DriverDashboardService) AccidentHistory(ctx context.Context, vehicleID string) ([]*domain.AccidentReport, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.accidentRepo.ListByVehicleID(ctx, vehicleID)
}
