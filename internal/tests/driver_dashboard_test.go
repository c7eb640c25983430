package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER DASHBOARD AND SHIFT CYCLE
// ──────────────────────────────────────────────

func newDashboardFixture() (*service.DriverDashboardService, *MockRentalRepository, *MockVehicleRepository, *MockShiftRepository, *MockConditionReportRepository, *MockAccidentReportRepository) {
	rentalRepo := NewMockRentalRepository()
	vehicleRepo := NewMockVehicleRepository()
	shiftRepo := NewMockShiftRepository()
	conditionRepo := NewMockConditionReportRepository()
	accidentRepo := NewMockAccidentReportRepository()
	svc := service.NewDriverDashboardService(
		rentalRepo, vehicleRepo, shiftRepo, conditionRepo, accidentRepo, zap.NewNop(),
	)
	return svc, rentalRepo, vehicleRepo, shiftRepo, conditionRepo, accidentRepo
}

func addActiveRental(rentalRepo *MockRentalRepository, vehicleRepo *MockVehicleRepository) {
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, 60, 90, 120))
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, Status: domain.RentalStatusActive,
		StartDate: time.Now().AddDate(0, 0, -7),
	})
}

func TestDashboard_NoActiveRental(t *testing.T) {
	t.Parallel()

	svc, _, _, shiftRepo, _, _ := newDashboardFixture()

	view, err := svc.ActiveRental(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.HasActiveRental {
		t.Error("expected no active rental")
	}
	if shiftRepo.CreateCallCount != 0 {
		t.Error("shift created for driver without a rental")
	}
}

func TestDashboard_LazilyCreatesTodayShift(t *testing.T) {
	t.Parallel()

	svc, rentalRepo, vehicleRepo, shiftRepo, _, _ := newDashboardFixture()
	addActiveRental(rentalRepo, vehicleRepo)

	view, err := svc.ActiveRental(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.HasActiveRental {
		t.Fatal("expected active rental")
	}
	if view.RentalID != "r1" || view.Vehicle.ID != "v1" {
		t.Errorf("view wired to r=%s v=%s", view.RentalID, view.Vehicle.ID)
	}
	if view.ShiftStatus != domain.ShiftStatusNotStarted {
		t.Errorf("shift status = %s, want NOT_STARTED", view.ShiftStatus)
	}
	if shiftRepo.CreateCallCount != 1 {
		t.Fatalf("shift create calls = %d, want 1", shiftRepo.CreateCallCount)
	}

	// Opening the dashboard again the same day reuses the shift.
	again, err := svc.ActiveRental(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ShiftID != view.ShiftID {
		t.Errorf("second open returned a different shift: %s vs %s", again.ShiftID, view.ShiftID)
	}
	if shiftRepo.CreateCallCount != 1 {
		t.Errorf("shift create calls = %d, want 1", shiftRepo.CreateCallCount)
	}
}

func TestStartShift_FilesConditionReport(t *testing.T) {
	t.Parallel()

	svc, rentalRepo, vehicleRepo, shiftRepo, conditionRepo, _ := newDashboardFixture()
	addActiveRental(rentalRepo, vehicleRepo)
	shiftRepo.AddShift(&domain.Shift{
		ID: "s1", RentalID: "r1", DriverID: "d1",
		Status: domain.ShiftStatusNotStarted, CreatedAt: time.Now(),
	})

	shift, report, err := svc.StartShift(context.Background(), service.StartShiftRequest{
		ShiftID:       "s1",
		VehicleID:     "v1",
		DriverID:      "d1",
		DamageMarkers: `[{"x":0.4,"y":0.2,"type":"scratch"}]`,
		Notes:         "scratch on rear left panel",
		Photos:        []string{"front.jpg", "rear.jpg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shift.Status != domain.ShiftStatusActive {
		t.Errorf("shift status = %s, want ACTIVE", shift.Status)
	}
	if shift.StartedAt.IsZero() {
		t.Error("startedAt not stamped")
	}
	if report.ShiftID != "s1" || report.VehicleID != "v1" {
		t.Errorf("report wired to shift=%s vehicle=%s", report.ShiftID, report.VehicleID)
	}
	if report.VerifiedAt.IsZero() {
		t.Error("condition report not timestamped")
	}
	if conditionRepo.CountReports() != 1 {
		t.Errorf("condition reports = %d, want 1", conditionRepo.CountReports())
	}

	// The report surfaces on the next dashboard open.
	view, err := svc.ActiveRental(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.LastConditionReport.IsZero() {
		t.Error("dashboard missing the filed condition report")
	}
}

func TestStartShift_EndedShiftRefused(t *testing.T) {
	t.Parallel()

	svc, _, _, shiftRepo, conditionRepo, _ := newDashboardFixture()
	shiftRepo.AddShift(&domain.Shift{
		ID: "s1", RentalID: "r1", DriverID: "d1",
		Status: domain.ShiftStatusEnded, CreatedAt: time.Now(),
	})

	_, _, err := svc.StartShift(context.Background(), service.StartShiftRequest{
		ShiftID: "s1", VehicleID: "v1", DriverID: "d1",
	})
	if !errors.Is(err, service.ErrShiftEnded) {
		t.Fatalf("expected ErrShiftEnded, got %v", err)
	}
	if conditionRepo.CountReports() != 0 {
		t.Error("condition report filed for a refused start")
	}
}

func TestEndShift_StampsEndTime(t *testing.T) {
	t.Parallel()

	svc, _, _, shiftRepo, _, _ := newDashboardFixture()
	shiftRepo.AddShift(&domain.Shift{
		ID: "s1", RentalID: "r1", DriverID: "d1",
		Status: domain.ShiftStatusActive, StartedAt: time.Now().Add(-8 * time.Hour),
		CreatedAt: time.Now(),
	})

	shift, err := svc.EndShift(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shift.Status != domain.ShiftStatusEnded {
		t.Errorf("shift status = %s, want ENDED", shift.Status)
	}
	if shift.EndedAt.IsZero() {
		t.Error("endedAt not stamped")
	}
}

func TestReturnVehicle_EndsShiftKeepsRentalActive(t *testing.T) {
	t.Parallel()

	svc, rentalRepo, vehicleRepo, shiftRepo, _, _ := newDashboardFixture()
	addActiveRental(rentalRepo, vehicleRepo)
	shiftRepo.AddShift(&domain.Shift{
		ID: "s1", RentalID: "r1", DriverID: "d1",
		Status: domain.ShiftStatusActive, CreatedAt: time.Now(),
	})

	if err := svc.ReturnVehicle(context.Background(), "r1", "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shiftRepo.GetShift("s1").Status != domain.ShiftStatusEnded {
		t.Error("shift not ended on return request")
	}
	// The rental stays active until an admin completes the return at
	// the depot.
	if rentalRepo.GetRental("r1").Status != domain.RentalStatusActive {
		t.Error("rental was completed by the return request")
	}
}

func TestReportAccident_DefaultsOccurredAt(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, accidentRepo := newDashboardFixture()

	before := time.Now()
	report, err := svc.ReportAccident(context.Background(), service.AccidentReportRequest{
		RentalID:    "r1",
		DriverID:    "d1",
		VehicleID:   "v1",
		IsSafe:      true,
		Description: "rear-ended at lights",
		Location:    "Parramatta Rd, Ashfield",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.OccurredAt.Before(before) {
		t.Errorf("occurredAt = %v, want defaulted to now", report.OccurredAt)
	}
	if report.SyncedAt.IsZero() {
		t.Error("syncedAt not stamped")
	}
	if accidentRepo.CountReports() != 1 {
		t.Errorf("accident reports = %d, want 1", accidentRepo.CountReports())
	}
}

func TestReportAccident_OfflineTimestampPreserved(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newDashboardFixture()

	occurred := time.Now().Add(-3 * time.Hour)
	report, err := svc.ReportAccident(context.Background(), service.AccidentReportRequest{
		DriverID:        "d1",
		VehicleID:       "v1",
		IsSafe:          false,
		EmergencyCalled: true,
		OccurredAt:      occurred,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.OccurredAt.Equal(occurred) {
		t.Errorf("occurredAt = %v, want %v", report.OccurredAt, occurred)
	}
	if report.SyncedAt.Before(report.OccurredAt) {
		t.Error("syncedAt should be after the offline occurredAt")
	}
}

func TestAccidentHistory_PerVehicle(t *testing.T) {
	t.Parallel()

	svc, _, vehicleRepo, _, _, _ := newDashboardFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, 60, 90, 120))
	vehicleRepo.AddVehicle(newTestVehicle("v2", domain.VehicleStatusRented, 60, 90, 120))

	for _, vehicleID := range []string{"v1", "v1", "v2"} {
		if _, err := svc.ReportAccident(context.Background(), service.AccidentReportRequest{
			DriverID: "d1", VehicleID: vehicleID, IsSafe: true,
		}); err != nil {
			t.Fatalf("seeding report: %v", err)
		}
	}

	reports, err := svc.AccidentHistory(context.Background(), "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("reports for v1 = %d, want 2", len(reports))
	}

	if _, err := svc.AccidentHistory(context.Background(), "missing"); err == nil {
		t.Error("expected an error for an unknown vehicle")
	}
}
