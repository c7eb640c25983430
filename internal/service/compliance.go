package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// ComplianceService runs the fleet-wide expiry sweep and manages the
// alerts it raises.
type ComplianceService struct {
	vehicleRepo repository.VehicleRepository
	alertRepo   repository.AlertRepository
	logger      *zap.Logger
}

// NewComplianceService creates a new ComplianceService.
func NewComplianceService(
	vehicleRepo repository.VehicleRepository,
	alertRepo repository.AlertRepository,
	logger *zap.Logger,
) *ComplianceService {
	return &ComplianceService{
		vehicleRepo: vehicleRepo,
		alertRepo:   alertRepo,
		logger:      logger,
	}
}

// SweepDetail records what the sweep did to one vehicle.
type SweepDetail struct {
	VehicleID string   `json:"vehicleId"`
	Plate     string   `json:"plate"`
	Issues    []string `json:"issues"`
	Suspended bool     `json:"suspended"`
}

// SweepResult summarizes one expiry sweep.
type SweepResult struct {
	CheckedCount   int           `json:"checkedCount"`
	SuspendedCount int           `json:"suspendedCount"`
	Details        []SweepDetail `json:"details"`
}

// CheckExpiries sweeps every AVAILABLE and RENTED vehicle, suspends
// those with a lapsed expiry and raises one alert per lapsed document.
// An unresolved alert of the same type on the same vehicle is not
// duplicated, so the sweep is safe to run repeatedly.
func (s *ComplianceService) CheckExpiries(ctx context.Context) (*SweepResult, error) {
	vehicles, err := s.vehicleRepo.ListByStatuses(ctx,
		domain.VehicleStatusAvailable, domain.VehicleStatusRented)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &SweepResult{CheckedCount: len(vehicles)}

	for _, vehicle := range vehicles {
		issues := expiryIssues(vehicle, now)
		if len(issues) == 0 {
			continue
		}

		detail := SweepDetail{VehicleID: vehicle.ID, Plate: vehicle.Plate}
		for _, issue := range issues {
			detail.Issues = append(detail.Issues, string(issue))
			if err := s.raiseAlert(ctx, vehicle, issue, now); err != nil {
				return nil, err
			}
		}

		if err := s.vehicleRepo.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusSuspended); err != nil {
			return nil, err
		}
		detail.Suspended = true
		result.SuspendedCount++
		result.Details = append(result.Details, detail)

		s.logger.Warn("vehicle suspended by compliance sweep",
			zap.String("vehicle_id", vehicle.ID),
			zap.String("plate", vehicle.Plate),
			zap.Strings("issues", detail.Issues),
		)
	}

	s.logger.Info("compliance sweep finished",
		zap.Int("checked", result.CheckedCount),
		zap.Int("suspended", result.SuspendedCount),
	)
	return result, nil
}

// raiseAlert creates an alert unless an unresolved one of the same
// type already exists for the vehicle.
func (s *ComplianceService) raiseAlert(ctx context.Context, vehicle *domain.Vehicle, issue domain.AlertType, now time.Time) error {
	existing, err := s.alertRepo.FindUnresolved(ctx, vehicle.ID, issue)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	return s.alertRepo.Create(ctx, &domain.Alert{
		ID:        uuid.New().String(),
		VehicleID: vehicle.ID,
		Type:      issue,
		Message:   vehicle.Plate + ": " + issueMessage(issue, vehicle),
		CreatedAt: now,
	})
}

// UpcomingExpiry flags a vehicle whose documents lapse within the
// warning window.
type UpcomingExpiry struct {
	Vehicle    *domain.Vehicle          `json:"vehicle"`
	Compliance domain.VehicleCompliance `json:"compliance"`
}

// GetUpcomingExpiries lists non-suspended vehicles with any document
// expiring within the next 30 days.
func (s *ComplianceService) GetUpcomingExpiries(ctx context.Context) ([]*UpcomingExpiry, error) {
	now := time.Now()
	cutoff := startOfDay(now).AddDate(0, 0, 30)

	vehicles, err := s.vehicleRepo.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	result := make([]*UpcomingExpiry, 0, len(vehicles))
	for _, vehicle := range vehicles {
		result = append(result, &UpcomingExpiry{
			Vehicle:    vehicle,
			Compliance: complianceOf(vehicle, now),
		})
	}
	return result, nil
}

// UnresolvedAlerts lists all open alerts.
func (s *ComplianceService) UnresolvedAlerts(ctx context.Context) ([]*domain.Alert, error) {
	return s.alertRepo.ListUnresolved(ctx)
}

// ResolveAlert closes an alert.
func (s *ComplianceService) ResolveAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}

	resolvedAt := time.Now()
	if err := s.alertRepo.Resolve(ctx, alertID, resolvedAt); err != nil {
		return nil, err
	}
	alert.Resolved = true
	alert.ResolvedAt = resolvedAt
	return alert, nil
}
