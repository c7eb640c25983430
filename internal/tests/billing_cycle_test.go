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
// INVOICE GENERATION
// ──────────────────────────────────────────────

func newBillingFixture() (*service.BillingService, *MockInvoiceRepository, *MockRentalRepository, *MockDriverRepository) {
	invoiceRepo := NewMockInvoiceRepository()
	rentalRepo := NewMockRentalRepository()
	driverRepo := NewMockDriverRepository()
	svc := service.NewBillingService(invoiceRepo, rentalRepo, driverRepo, zap.NewNop())
	return svc, invoiceRepo, rentalRepo, driverRepo
}

func TestGenerateInvoice_AmountFormula(t *testing.T) {
	t.Parallel()

	svc, _, rentalRepo, _ := newBillingFixture()
	next := time.Now().AddDate(0, 0, 2)
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, NextPaymentDate: next,
		Status: domain.RentalStatusActive,
	})

	invoice, err := svc.GenerateInvoice(context.Background(), service.GenerateInvoiceRequest{
		RentalID: "r1", Tolls: 20, Credits: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 450 + 20 + 0 - 10
	if invoice.Amount != 460 {
		t.Errorf("amount = %v, want 460", invoice.Amount)
	}
	if invoice.Status != domain.InvoiceStatusPending {
		t.Errorf("status = %s, want PENDING", invoice.Status)
	}

	// Due a week out, next payment rolled a week forward.
	wantDue := time.Now().AddDate(0, 0, 7)
	if d := invoice.DueDate.Sub(wantDue); d < -time.Minute || d > time.Minute {
		t.Errorf("due date = %v, want ~%v", invoice.DueDate, wantDue)
	}
	if got := rentalRepo.GetRental("r1").NextPaymentDate; !got.Equal(next.AddDate(0, 0, 7)) {
		t.Errorf("next payment = %v, want %v", got, next.AddDate(0, 0, 7))
	}
}

// ──────────────────────────────────────────────
// BILLING CYCLE IDEMPOTENCE
// ──────────────────────────────────────────────

func TestRunBillingCycle_SecondRunGeneratesNothing(t *testing.T) {
	t.Parallel()

	svc, invoiceRepo, rentalRepo, _ := newBillingFixture()
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, NextPaymentDate: time.Now().AddDate(0, 0, 1),
		Status: domain.RentalStatusActive,
	})
	rentalRepo.AddRental(&domain.Rental{
		ID: "r2", DriverID: "d2", VehicleID: "v2",
		WeeklyRate: 500, NextPaymentDate: time.Now().AddDate(0, 0, 2),
		Status: domain.RentalStatusActive,
	})
	// Not yet due; must be skipped entirely.
	rentalRepo.AddRental(&domain.Rental{
		ID: "r3", DriverID: "d3", VehicleID: "v3",
		WeeklyRate: 400, NextPaymentDate: time.Now().AddDate(0, 0, 14),
		Status: domain.RentalStatusActive,
	})

	first, err := svc.RunBillingCycle(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 results, got %d", len(first))
	}
	for _, r := range first {
		if r.Status != "generated" {
			t.Errorf("rental %s: status %q, want generated", r.RentalID, r.Status)
		}
	}
	if invoiceRepo.CountInvoices() != 2 {
		t.Fatalf("expected 2 invoices, got %d", invoiceRepo.CountInvoices())
	}

	second, err := svc.RunBillingCycle(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for _, r := range second {
		if r.Status != "already_exists" {
			t.Errorf("rental %s: status %q, want already_exists", r.RentalID, r.Status)
		}
	}
	if invoiceRepo.CountInvoices() != 2 {
		t.Errorf("second run created invoices: got %d", invoiceRepo.CountInvoices())
	}
}

func TestRunBillingCycle_OneFailureDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	svc, invoiceRepo, rentalRepo, _ := newBillingFixture()
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, NextPaymentDate: time.Now(),
		Status: domain.RentalStatusActive,
	})

	invoiceRepo.CreateError = context.DeadlineExceeded

	results, err := svc.RunBillingCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Status != "error" {
		t.Fatalf("expected a single error result, got %+v", results)
	}
}

// ──────────────────────────────────────────────
// PAYMENT AND OVERDUE
// ──────────────────────────────────────────────

func TestMarkAsPaid_DebitsDriverBalance(t *testing.T) {
	t.Parallel()

	svc, invoiceRepo, rentalRepo, driverRepo := newBillingFixture()
	driver := newTestDriver("d1", domain.DriverStatusActive)
	driver.Balance = 100
	driverRepo.AddDriver(driver)
	rentalRepo.AddRental(&domain.Rental{
		ID: "r1", DriverID: "d1", VehicleID: "v1",
		WeeklyRate: 450, Status: domain.RentalStatusActive,
	})
	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: "i1", RentalID: "r1", WeeklyRate: 450, Tolls: 20, Credits: 10,
		Amount: 460, Status: domain.InvoiceStatusPending,
		DueDate: time.Now(),
	})

	invoice, err := svc.MarkAsPaid(context.Background(), "i1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Status != domain.InvoiceStatusPaid || invoice.PaidAt.IsZero() {
		t.Error("invoice not marked paid")
	}

	if got := driverRepo.GetDriver("d1").Balance; math.Abs(got-(-360)) > 1e-9 {
		t.Errorf("balance = %v, want -360", got)
	}
}

func TestCheckOverdue(t *testing.T) {
	t.Parallel()

	svc, invoiceRepo, _, _ := newBillingFixture()
	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: "late", RentalID: "r1", Amount: 450,
		Status: domain.InvoiceStatusPending, DueDate: time.Now().AddDate(0, 0, -2),
	})
	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: "current", RentalID: "r1", Amount: 450,
		Status: domain.InvoiceStatusPending, DueDate: time.Now().AddDate(0, 0, 5),
	})

	count, err := svc.CheckOverdue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 overdue, got %d", count)
	}
	if invoiceRepo.GetInvoice("late").Status != domain.InvoiceStatusOverdue {
		t.Error("late invoice not flipped")
	}
	if invoiceRepo.GetInvoice("current").Status != domain.InvoiceStatusPending {
		t.Error("current invoice must stay PENDING")
	}
}
