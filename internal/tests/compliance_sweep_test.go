package tests

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// ──────────────────────────────────────────────
// FLEET-WIDE EXPIRY SWEEP
// ──────────────────────────────────────────────

func TestCheckExpiries_SuspendsAndAlerts(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	alertRepo := NewMockAlertRepository()
	svc := service.NewComplianceService(vehicleRepo, alertRepo, zap.NewNop())

	vehicleRepo.AddVehicle(newTestVehicle("ok", domain.VehicleStatusAvailable, 60, 90, 120))
	vehicleRepo.AddVehicle(newTestVehicle("bad", domain.VehicleStatusRented, -3, 90, 120))

	result, err := svc.CheckExpiries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CheckedCount != 2 {
		t.Errorf("expected 2 checked, got %d", result.CheckedCount)
	}
	if result.SuspendedCount != 1 {
		t.Errorf("expected 1 suspended, got %d", result.SuspendedCount)
	}
	if vehicleRepo.GetVehicle("bad").Status != domain.VehicleStatusSuspended {
		t.Error("expired vehicle was not suspended")
	}
	if vehicleRepo.GetVehicle("ok").Status != domain.VehicleStatusAvailable {
		t.Error("compliant vehicle must not be touched")
	}
	if alertRepo.CountAlerts() != 1 {
		t.Errorf("expected 1 alert, got %d", alertRepo.CountAlerts())
	}
}

func TestCheckExpiries_RunTwiceCreatesNoDuplicateAlerts(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	alertRepo := NewMockAlertRepository()
	svc := service.NewComplianceService(vehicleRepo, alertRepo, zap.NewNop())

	// Two lapsed documents on one rented vehicle.
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, -3, -10, 120))

	if _, err := svc.CheckExpiries(context.Background()); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if alertRepo.CountAlerts() != 2 {
		t.Fatalf("expected 2 alerts after first sweep, got %d", alertRepo.CountAlerts())
	}

	// Force the vehicle back into scope and sweep again; the open
	// alerts must not be duplicated.
	vehicleRepo.GetVehicle("v1").Status = domain.VehicleStatusRented
	if _, err := svc.CheckExpiries(context.Background()); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if alertRepo.CountAlerts() != 2 {
		t.Errorf("expected 2 alerts after second sweep, got %d", alertRepo.CountAlerts())
	}
}

func TestCheckExpiries_IgnoresDraftAndSuspendedVehicles(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	alertRepo := NewMockAlertRepository()
	svc := service.NewComplianceService(vehicleRepo, alertRepo, zap.NewNop())

	vehicleRepo.AddVehicle(newTestVehicle("draft", domain.VehicleStatusDraft, -5, 60, 120))
	vehicleRepo.AddVehicle(newTestVehicle("susp", domain.VehicleStatusSuspended, -5, -5, -5))

	result, err := svc.CheckExpiries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CheckedCount != 0 {
		t.Errorf("expected 0 checked, got %d", result.CheckedCount)
	}
	if alertRepo.CountAlerts() != 0 {
		t.Errorf("expected no alerts, got %d", alertRepo.CountAlerts())
	}
}

func TestResolveAlert(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	alertRepo := NewMockAlertRepository()
	svc := service.NewComplianceService(vehicleRepo, alertRepo, zap.NewNop())

	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusAvailable, -3, 90, 120))
	if _, err := svc.CheckExpiries(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	open, err := svc.UnresolvedAlerts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open alert, got %d", len(open))
	}

	resolved, err := svc.ResolveAlert(context.Background(), open[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Resolved || resolved.ResolvedAt.IsZero() {
		t.Error("alert not marked resolved")
	}

	open, err = svc.UnresolvedAlerts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("expected no open alerts, got %d", len(open))
	}
}
