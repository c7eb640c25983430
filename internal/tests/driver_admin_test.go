package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
	"fleetsync/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER UPDATE AND DELETE
// ──────────────────────────────────────────────

func TestUpdateDriver_PartialFieldsApplied(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	rentalRepo := NewMockRentalRepository()
	svc := service.NewDriverService(driverRepo, rentalRepo, service.NewMockVevoClient())

	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	phone := "0412 345 678"
	status := domain.DriverStatusBlocked
	driver, err := svc.Update(context.Background(), "d1", service.UpdateDriverRequest{
		Phone:  &phone,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if driver.Phone != phone {
		t.Errorf("phone = %q, want %q", driver.Phone, phone)
	}
	if driver.Status != domain.DriverStatusBlocked {
		t.Errorf("status = %s, want BLOCKED", driver.Status)
	}
	// Fields not present in the request keep their values.
	if driver.Name != "Test Driver d1" {
		t.Errorf("name changed unexpectedly: %q", driver.Name)
	}
	if driver.Email != "d1@email.com" {
		t.Errorf("email changed unexpectedly: %q", driver.Email)
	}

	if stored := driverRepo.GetDriver("d1"); stored.Phone != phone {
		t.Error("update was not persisted")
	}
}

func TestUpdateDriver_LicenseExpiryApplied(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())

	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	expiry := time.Now().AddDate(2, 0, 0)
	driver, err := svc.Update(context.Background(), "d1", service.UpdateDriverRequest{
		LicenseExpiry: &expiry,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !driver.LicenseExpiry.Equal(expiry) {
		t.Errorf("license expiry = %v, want %v", driver.LicenseExpiry, expiry)
	}
}

func TestUpdateDriver_UnknownDriver(t *testing.T) {
	t.Parallel()

	svc := service.NewDriverService(NewMockDriverRepository(), NewMockRentalRepository(), service.NewMockVevoClient())

	name := "Nobody"
	_, err := svc.Update(context.Background(), "missing", service.UpdateDriverRequest{Name: &name})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteDriver_BlockedByActiveRental(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	rentalRepo := NewMockRentalRepository()
	svc := service.NewDriverService(driverRepo, rentalRepo, service.NewMockVevoClient())

	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		Status: domain.RentalStatusActive,
	})

	err := svc.Delete(context.Background(), "d1")
	if !errors.Is(err, service.ErrDriverHasActiveRental) {
		t.Fatalf("expected ErrDriverHasActiveRental, got %v", err)
	}
	if driverRepo.GetDriver("d1") == nil {
		t.Error("driver was deleted despite active rental")
	}
}

func TestDeleteDriver_Success(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())

	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	if err := svc.Delete(context.Background(), "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driverRepo.GetDriver("d1") != nil {
		t.Error("driver still present after delete")
	}
}
