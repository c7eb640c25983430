package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// ──────────────────────────────────────────────
// RENTAL CREATION GUARDS
// ──────────────────────────────────────────────

func newTestDriver(id string, status domain.DriverStatus) *domain.Driver {
	return &domain.Driver{
		ID:         id,
		Name:       "Test Driver " + id,
		Email:      id + "@email.com",
		LicenseNo:  "NSW" + id,
		VevoStatus: domain.VevoStatusApproved,
		Status:     status,
		CreatedAt:  time.Now(),
	}
}

func newRentalFixture() (*service.RentalService, *MockRentalRepository, *MockVehicleRepository, *MockDriverRepository) {
	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	rentalRepo := NewMockRentalRepository()
	rentalRepo.Vehicles = vehicleRepo
	return service.NewRentalService(rentalRepo, vehicleRepo, driverRepo), rentalRepo, vehicleRepo, driverRepo
}

func TestCreateRental_Success(t *testing.T) {
	t.Parallel()

	svc, _, vehicleRepo, driverRepo := newRentalFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusAvailable, 60, 90, 120))
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	start := time.Now()
	rental, err := svc.Create(context.Background(), service.CreateRentalRequest{
		DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 420, BondAmount: 900,
		StartDate: start,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rental.Status != domain.RentalStatusActive {
		t.Errorf("expected ACTIVE, got %s", rental.Status)
	}
	// The rental carries the negotiated terms, not the vehicle's listed
	// 450/1000.
	if rental.WeeklyRate != 420 || rental.BondAmount != 900 {
		t.Errorf("rate snapshot wrong: rate=%v bond=%v", rental.WeeklyRate, rental.BondAmount)
	}
	if want := start.AddDate(0, 0, 7); !rental.NextPaymentDate.Equal(want) {
		t.Errorf("next payment = %v, want %v", rental.NextPaymentDate, want)
	}
	if vehicleRepo.GetVehicle("v1").Status != domain.VehicleStatusRented {
		t.Error("vehicle was not flipped to RENTED")
	}
}

func TestCreateRental_GuardOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		vehicleStatus domain.VehicleStatus
		driverStatus  domain.DriverStatus
		wantErr       error
	}{
		{"suspended vehicle", domain.VehicleStatusSuspended, domain.DriverStatusActive, service.ErrVehicleSuspended},
		{"rented vehicle", domain.VehicleStatusRented, domain.DriverStatusActive, service.ErrVehicleAlreadyRented},
		{"blocked driver", domain.VehicleStatusAvailable, domain.DriverStatusBlocked, service.ErrDriverBlocked},
		{"pending driver", domain.VehicleStatusAvailable, domain.DriverStatusPendingApproval, service.ErrDriverNotActive},
		{"inactive driver", domain.VehicleStatusAvailable, domain.DriverStatusInactive, service.ErrDriverNotActive},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _, vehicleRepo, driverRepo := newRentalFixture()
			vehicleRepo.AddVehicle(newTestVehicle("v1", tc.vehicleStatus, 60, 90, 120))
			driverRepo.AddDriver(newTestDriver("d1", tc.driverStatus))

			_, err := svc.Create(context.Background(), service.CreateRentalRequest{
				DriverID: "d1", VehicleID: "v1",
				WeeklyRate: 450, BondAmount: 1000,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateRental_DraftVehicleIsRentable(t *testing.T) {
	t.Parallel()

	svc, _, vehicleRepo, driverRepo := newRentalFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusDraft, 60, 90, 120))
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	if _, err := svc.Create(context.Background(), service.CreateRentalRequest{
		DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, BondAmount: 1000,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateRental_DriverAlreadyHasActiveRental(t *testing.T) {
	t.Parallel()

	svc, rentalRepo, vehicleRepo, driverRepo := newRentalFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusAvailable, 60, 90, 120))
	vehicleRepo.AddVehicle(newTestVehicle("v2", domain.VehicleStatusAvailable, 60, 90, 120))
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))
	rentalRepo.AddRental(&domain.Rental{
		ID: "r0", DriverID: "d1", VehicleID: "v1", Status: domain.RentalStatusActive,
	})

	_, err := svc.Create(context.Background(), service.CreateRentalRequest{
		DriverID: "d1", VehicleID: "v2",
		WeeklyRate: 450, BondAmount: 1000,
	})
	if !errors.Is(err, service.ErrDriverHasActiveRental) {
		t.Errorf("got %v, want ErrDriverHasActiveRental", err)
	}
}

func TestCreateRental_ConcurrentAssignmentLoses(t *testing.T) {
	t.Parallel()

	svc, _, vehicleRepo, driverRepo := newRentalFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusAvailable, 60, 90, 120))
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))
	driverRepo.AddDriver(newTestDriver("d2", domain.DriverStatusActive))

	if _, err := svc.Create(context.Background(), service.CreateRentalRequest{
		DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, BondAmount: 1000,
	}); err != nil {
		t.Fatalf("first assignment: %v", err)
	}

	// The second assignment of the same vehicle must fail and leave a
	// single active rental behind.
	_, err := svc.Create(context.Background(), service.CreateRentalRequest{
		DriverID: "d2", VehicleID: "v1",
		WeeklyRate: 450, BondAmount: 1000,
	})
	if !errors.Is(err, service.ErrVehicleAlreadyRented) {
		t.Errorf("got %v, want ErrVehicleAlreadyRented", err)
	}
}

// ──────────────────────────────────────────────
// RENTAL COMPLETION
// ──────────────────────────────────────────────

func TestEndRental_ReleasesVehicle(t *testing.T) {
	t.Parallel()

	svc, rentalRepo, vehicleRepo, driverRepo := newRentalFixture()
	vehicleRepo.AddVehicle(newTestVehicle("v1", domain.VehicleStatusRented, 60, 90, 120))
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1", Status: domain.RentalStatusActive,
	})

	rental, err := svc.End(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rental.Status != domain.RentalStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", rental.Status)
	}
	if rental.EndDate.IsZero() {
		t.Error("end date not set")
	}
	if vehicleRepo.GetVehicle("v1").Status != domain.VehicleStatusAvailable {
		t.Error("vehicle was not released")
	}
}

func TestEndRental_AlreadyCompleted(t *testing.T) {
	t.Parallel()

	svc, rentalRepo, _, _ := newRentalFixture()
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1", Status: domain.RentalStatusCompleted,
	})

	_, err := svc.End(context.Background(), "r1")
	if !errors.Is(err, service.ErrRentalNotActive) {
		t.Errorf("got %v, want ErrRentalNotActive", err)
	}
}
