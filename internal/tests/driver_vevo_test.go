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
// VEVO WORK AUTHORIZATION GATE
// ──────────────────────────────────────────────

func TestRegisterDriver_PassportEndingInZerosIsDenied(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())

	driver, err := svc.Register(context.Background(), service.RegisterDriverRequest{
		Name:       "Raj Patel",
		Email:      "raj.patel@email.com",
		LicenseNo:  "NSW5678901",
		PassportNo: "PA5670000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if driver.VevoStatus != domain.VevoStatusDenied {
		t.Errorf("vevo status = %s, want DENIED", driver.VevoStatus)
	}
	if driver.Status != domain.DriverStatusBlocked {
		t.Errorf("status = %s, want BLOCKED", driver.Status)
	}
	if driver.VevoCheckedAt.IsZero() {
		t.Error("vevo check timestamp not set")
	}
}

func TestRegisterDriver_ApprovedPassport(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())

	driver, err := svc.Register(context.Background(), service.RegisterDriverRequest{
		Name:       "John Smith",
		Email:      "john.smith@email.com",
		LicenseNo:  "NSW1234567",
		PassportNo: "PA1234567",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.VevoStatus != domain.VevoStatusApproved {
		t.Errorf("vevo status = %s, want APPROVED", driver.VevoStatus)
	}
	if driver.Status != domain.DriverStatusPendingApproval {
		t.Errorf("status = %s, want PENDING_APPROVAL", driver.Status)
	}
}

func TestRegisterDriver_NoPassportStaysPending(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())

	driver, err := svc.Register(context.Background(), service.RegisterDriverRequest{
		Name:      "Sarah Chen",
		Email:     "sarah.chen@email.com",
		LicenseNo: "NSW2345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.VevoStatus != domain.VevoStatusPending {
		t.Errorf("vevo status = %s, want PENDING", driver.VevoStatus)
	}
	if !driver.VevoCheckedAt.IsZero() {
		t.Error("vevo check timestamp must stay unset")
	}
}

func TestRegisterDriver_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	_, err := svc.Register(context.Background(), service.RegisterDriverRequest{
		Name:      "Impostor",
		Email:     "d1@email.com",
		LicenseNo: "NSW9999999",
	})
	if !errors.Is(err, service.ErrDriverExists) {
		t.Errorf("got %v, want ErrDriverExists", err)
	}
}

func TestApproveDriver_DeniedVevoAlwaysFails(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())

	denied := newTestDriver("d1", domain.DriverStatusPendingApproval)
	denied.VevoStatus = domain.VevoStatusDenied
	driverRepo.AddDriver(denied)

	_, err := svc.Approve(context.Background(), "d1")
	if !errors.Is(err, service.ErrVevoDenied) {
		t.Errorf("got %v, want ErrVevoDenied", err)
	}
	if driverRepo.GetDriver("d1").Status != domain.DriverStatusPendingApproval {
		t.Error("denied driver's status must not change")
	}
}

func TestApproveDriver_ActivatesPendingDriver(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusPendingApproval))

	driver, err := svc.Approve(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.Status != domain.DriverStatusActive {
		t.Errorf("status = %s, want ACTIVE", driver.Status)
	}
}

func TestRunVevoCheck_RequiresPassport(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusPendingApproval))

	_, err := svc.RunVevoCheck(context.Background(), "d1")
	if !errors.Is(err, service.ErrNoPassportOnFile) {
		t.Errorf("got %v, want ErrNoPassportOnFile", err)
	}
}

func TestRunVevoCheck_DeniedResultBlocksDriver(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockRentalRepository(), service.NewMockVevoClient())

	driver := newTestDriver("d1", domain.DriverStatusActive)
	driver.PassportNo = "XX990000"
	driver.VevoStatus = domain.VevoStatusApproved
	driver.VevoCheckedAt = time.Now().AddDate(0, -6, 0)
	driverRepo.AddDriver(driver)

	updated, err := svc.RunVevoCheck(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.VevoStatus != domain.VevoStatusDenied {
		t.Errorf("vevo status = %s, want DENIED", updated.VevoStatus)
	}
	if updated.Status != domain.DriverStatusBlocked {
		t.Errorf("status = %s, want BLOCKED", updated.Status)
	}
}
