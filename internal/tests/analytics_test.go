package tests

import (
	"context"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// ──────────────────────────────────────────────
// FLEET DASHBOARD AND ROI ANALYTICS
// ──────────────────────────────────────────────

// fixedEarningsProvider returns canned weekly figures per driver so
// margin arithmetic is deterministic.
type fixedEarningsProvider struct {
	reports map[string]*domain.EarningsReport
}

func (p *fixedEarningsProvider) WeeklyReport(ctx context.Context, driverID string, weekStarting time.Time) (*domain.EarningsReport, error) {
	r := *p.reports[driverID]
	r.WeekStarting = weekStarting
	return &r, nil
}

func newAnalyticsFixture(provider service.EarningsProvider) (*service.AnalyticsService, *MockVehicleRepository, *MockDriverRepository, *MockRentalRepository, *MockInvoiceRepository, *MockAlertRepository) {
	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	rentalRepo := NewMockRentalRepository()
	invoiceRepo := NewMockInvoiceRepository()
	alertRepo := NewMockAlertRepository()

	earnings := service.NewEarningsService(driverRepo, provider, nil, zap.NewNop())
	svc := service.NewAnalyticsService(
		vehicleRepo, driverRepo, rentalRepo, invoiceRepo, alertRepo, earnings, zap.NewNop(),
	)
	return svc, vehicleRepo, driverRepo, rentalRepo, invoiceRepo, alertRepo
}

func TestFleetDashboard_Summary(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, driverRepo, rentalRepo, invoiceRepo, alertRepo := newAnalyticsFixture(service.NewMockEarningsProvider())

	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, 60, 90, 120))
	vehicleRepo.AddVehicle(newTestVehicle("v2", domain.VehicleStatusAvailable, 60, 90, 120))
	vehicleRepo.AddVehicle(newTestVehicle("v3", domain.VehicleStatusAvailable, 60, 90, 120))

	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))
	driverRepo.AddDriver(newTestDriver("d2", domain.DriverStatusBlocked))

	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, Status: domain.RentalStatusActive,
	})
	rentalRepo.AddRental(&domain.Rental{
		ID: "r0", DriverID: "d2", VehicleID: "v2",
		WeeklyRate: 400, Status: domain.RentalStatusCompleted,
	})

	invoiceRepo.AddInvoice(&domain.Invoice{ID: "i1", RentalID: "r1", Amount: 457.40, Status: domain.InvoiceStatusPending})
	invoiceRepo.AddInvoice(&domain.Invoice{ID: "i2", RentalID: "r1", Amount: 450, Status: domain.InvoiceStatusPending})
	invoiceRepo.AddInvoice(&domain.Invoice{ID: "i3", RentalID: "r0", Amount: 400, Status: domain.InvoiceStatusOverdue})
	invoiceRepo.AddInvoice(&domain.Invoice{ID: "i4", RentalID: "r0", Amount: 400, Status: domain.InvoiceStatusPaid})

	if err := alertRepo.Create(context.Background(), &domain.Alert{
		ID: "a1", VehicleID: "v1", Type: domain.AlertTypeRegoExpiry, Message: "rego expiring",
	}); err != nil {
		t.Fatalf("seeding alert: %v", err)
	}

	dash, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dash.Vehicles.Total != 3 {
		t.Errorf("vehicles total = %d, want 3", dash.Vehicles.Total)
	}
	if dash.Vehicles.ByStatus["AVAILABLE"] != 2 || dash.Vehicles.ByStatus["RENTED"] != 1 {
		t.Errorf("vehicle breakdown wrong: %v", dash.Vehicles.ByStatus)
	}
	if dash.Drivers.Total != 2 || dash.Drivers.ByStatus["ACTIVE"] != 1 || dash.Drivers.ByStatus["BLOCKED"] != 1 {
		t.Errorf("driver breakdown wrong: total=%d %v", dash.Drivers.Total, dash.Drivers.ByStatus)
	}
	if dash.Rentals.Active != 1 {
		t.Errorf("active rentals = %d, want 1", dash.Rentals.Active)
	}
	if dash.Invoices.Pending.Count != 2 || math.Abs(dash.Invoices.Pending.Total-907.40) > 0.001 {
		t.Errorf("pending bucket = %+v, want count 2 total 907.40", dash.Invoices.Pending)
	}
	if dash.Invoices.Overdue.Count != 1 || math.Abs(dash.Invoices.Overdue.Total-400) > 0.001 {
		t.Errorf("overdue bucket = %+v, want count 1 total 400", dash.Invoices.Overdue)
	}
	if dash.Alerts != 1 {
		t.Errorf("alerts = %d, want 1", dash.Alerts)
	}
}

func TestROI_MarginPerActiveRental(t *testing.T) {
	t.Parallel()

	provider := &fixedEarningsProvider{reports: map[string]*domain.EarningsReport{
		"d1": {DriverID: "d1", GrossEarnings: 1200, NetEarnings: 900, Trips: 52, Platform: "uber"},
		"d2": {DriverID: "d2", GrossEarnings: 400, NetEarnings: 300, Trips: 18, Platform: "uber"},
	}}
	svc, vehicleRepo, driverRepo, rentalRepo, _, _ := newAnalyticsFixture(provider)

	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, 60, 90, 120))
	vehicleRepo.AddVehicle(newTestVehicle("v2", domain.VehicleStatusRented, 60, 90, 120))
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))
	driverRepo.AddDriver(newTestDriver("d2", domain.DriverStatusActive))

	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, Status: domain.RentalStatusActive,
	})
	rentalRepo.AddRental(&domain.Rental{
		ID: "r2", DriverID: "d2", VehicleID: "v2",
		WeeklyRate: 450, Status: domain.RentalStatusActive,
	})

	rows, err := svc.ROI(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	byVehicle := make(map[string]*service.VehicleROI, len(rows))
	for _, row := range rows {
		byVehicle[row.VehicleID] = row
	}

	// Gross 1200 against a 450 rate leaves 62.5% of gross as margin.
	profitable := byVehicle["v1"]
	if profitable == nil {
		t.Fatal("missing row for v1")
	}
	if profitable.Plate != "PLTv1" || profitable.DriverName != "Test Driver d1" {
		t.Errorf("row identity wrong: %+v", profitable)
	}
	if profitable.WeeklyRate != 450 || profitable.DriverEarnings != 1200 || profitable.Trips != 52 {
		t.Errorf("row figures wrong: %+v", profitable)
	}
	if profitable.ProfitMargin != "62.5%" {
		t.Errorf("margin = %q, want 62.5%%", profitable.ProfitMargin)
	}

	// A week that did not cover the rate reports a flat zero.
	underwater := byVehicle["v2"]
	if underwater == nil {
		t.Fatal("missing row for v2")
	}
	if underwater.ProfitMargin != "0%" {
		t.Errorf("margin = %q, want 0%%", underwater.ProfitMargin)
	}
}

func TestROI_NoActiveRentals(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newAnalyticsFixture(service.NewMockEarningsProvider())

	rows, err := svc.ROI(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
