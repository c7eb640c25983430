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
// TOLL STATEMENT INGEST
// ──────────────────────────────────────────────

func newTollFixture() (*service.TollService, *MockTollRepository, *MockVehicleRepository, *MockRentalRepository, *MockInvoiceRepository) {
	tollRepo := NewMockTollRepository()
	vehicleRepo := NewMockVehicleRepository()
	rentalRepo := NewMockRentalRepository()
	invoiceRepo := NewMockInvoiceRepository()
	svc := service.NewTollService(tollRepo, vehicleRepo, rentalRepo, invoiceRepo, zap.NewNop())
	return svc, tollRepo, vehicleRepo, rentalRepo, invoiceRepo
}

func TestIngest_LinksChargeToPendingInvoice(t *testing.T) {
	t.Parallel()

	svc, tollRepo, vehicleRepo, rentalRepo, invoiceRepo := newTollFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, 60, 90, 120))
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1", Status: domain.RentalStatusActive,
	})
	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: "i1", RentalID: "r1", WeeklyRate: 450, Amount: 450,
		Status: domain.InvoiceStatusPending, DueDate: time.Now().AddDate(0, 0, 5),
	})

	result, err := svc.Ingest(context.Background(), []service.TollRecord{
		{Plate: "PLTv1", Date: time.Now(), Amount: 7.40, Location: "M2 Pennant Hills"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Linked != 1 || result.Unlinked != 0 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Outcomes[0].Status != "linked" {
		t.Errorf("outcome status = %q, want linked", result.Outcomes[0].Status)
	}

	invoice := invoiceRepo.GetInvoice("i1")
	if math.Abs(invoice.Tolls-7.40) > 1e-9 {
		t.Errorf("invoice tolls = %v, want 7.40", invoice.Tolls)
	}
	if math.Abs(invoice.Amount-457.40) > 1e-9 {
		t.Errorf("invoice amount = %v, want 457.40", invoice.Amount)
	}
	if tollRepo.CountTolls() != 1 {
		t.Errorf("expected 1 stored charge, got %d", tollRepo.CountTolls())
	}
}

func TestIngest_UnmatchedChargesStoredUnlinked(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		setup      func(*MockVehicleRepository, *MockRentalRepository, *MockInvoiceRepository)
		wantDetail string
	}{
		{
			name:       "unknown plate",
			setup:      func(*MockVehicleRepository, *MockRentalRepository, *MockInvoiceRepository) {},
			wantDetail: "no vehicle with this plate",
		},
		{
			name: "no active rental",
			setup: func(v *MockVehicleRepository, r *MockRentalRepository, i *MockInvoiceRepository) {
				v.AddVehicle(newTestVehicle("v1", domain.VehicleStatusAvailable, 60, 90, 120))
			},
			wantDetail: "vehicle has no active rental",
		},
		{
			name: "no pending invoice",
			setup: func(v *MockVehicleRepository, r *MockRentalRepository, i *MockInvoiceRepository) {
				v.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, 60, 90, 120))
				r.AddRental(&domain.Rental{
					ID: "r1", DriverID: "d1", VehicleID: "v1", Status: domain.RentalStatusActive,
				})
			},
			wantDetail: "rental has no pending invoice",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, tollRepo, vehicleRepo, rentalRepo, invoiceRepo := newTollFixture()
			tc.setup(vehicleRepo, rentalRepo, invoiceRepo)

			result, err := svc.Ingest(context.Background(), []service.TollRecord{
				{Plate: "PLTv1", Date: time.Now(), Amount: 3.20},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Unlinked != 1 {
				t.Fatalf("unexpected result: %+v", result)
			}
			if result.Outcomes[0].Detail != tc.wantDetail {
				t.Errorf("detail = %q, want %q", result.Outcomes[0].Detail, tc.wantDetail)
			}

			// The charge itself is still kept for a later billing run.
			if tollRepo.CountTolls() != 1 {
				t.Errorf("expected 1 stored charge, got %d", tollRepo.CountTolls())
			}
		})
	}
}

func TestIngest_OneBadRowDoesNotAbortStatement(t *testing.T) {
	t.Parallel()

	svc, tollRepo, vehicleRepo, _, _ := newTollFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusAvailable, 60, 90, 120))
	tollRepo.CreateError = context.DeadlineExceeded

	result, err := svc.Ingest(context.Background(), []service.TollRecord{
		{Plate: "PLTv1", Date: time.Now(), Amount: 3.20},
		{Plate: "PLTv1", Date: time.Now(), Amount: 5.80},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Failed != 2 || result.Total != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for _, o := range result.Outcomes {
		if o.Status != "error" {
			t.Errorf("outcome status = %q, want error", o.Status)
		}
	}
}
