package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// BillingService generates weekly invoices and tracks their payment
// state.
type BillingService struct {
	invoiceRepo repository.InvoiceRepository
	rentalRepo  repository.RentalRepository
	driverRepo  repository.DriverRepository
	logger      *zap.Logger
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	rentalRepo repository.RentalRepository,
	driverRepo repository.DriverRepository,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		invoiceRepo: invoiceRepo,
		rentalRepo:  rentalRepo,
		driverRepo:  driverRepo,
		logger:      logger,
	}
}

// GenerateInvoiceRequest contains the extra line items for a weekly
// invoice; the weekly rate is snapshotted from the rental.
type GenerateInvoiceRequest struct {
	RentalID string
	Tolls    float64
	Fines    float64
	Credits  float64
}

// GenerateInvoice creates a weekly invoice for a rental. The total is
// weeklyRate + tolls + fines - credits, due seven days from now, and
// the rental's next payment date rolls forward one week.
func (s *BillingService) GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*domain.Invoice, error) {
	if req.RentalID == "" {
		return nil, ErrInvalidRentalID
	}

	rental, err := s.rentalRepo.GetByID(ctx, req.RentalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &domain.Invoice{
		ID:         uuid.New().String(),
		RentalID:   rental.ID,
		WeeklyRate: rental.WeeklyRate,
		Tolls:      req.Tolls,
		Fines:      req.Fines,
		Credits:    req.Credits,
		Amount:     rental.WeeklyRate + req.Tolls + req.Fines - req.Credits,
		DueDate:    now.AddDate(0, 0, 7),
		Status:     domain.InvoiceStatusPending,
		CreatedAt:  now,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	next := rental.NextPaymentDate.AddDate(0, 0, 7)
	if err := s.rentalRepo.UpdateNextPaymentDate(ctx, rental.ID, next); err != nil {
		return nil, err
	}

	s.logger.Info("invoice generated",
		zap.String("invoice_id", invoice.ID),
		zap.String("rental_id", rental.ID),
		zap.Float64("amount", invoice.Amount),
	)
	return invoice, nil
}

// BillingResult is the per-rental outcome of a billing cycle run.
type BillingResult struct {
	RentalID  string  `json:"rentalId"`
	InvoiceID string  `json:"invoiceId,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
}

// RunBillingCycle invoices every active rental whose payment is due
// within the next three days. A rental that already has an invoice
// covering the period is skipped, so running the cycle twice in a row
// produces no duplicates. One rental failing does not stop the rest.
func (s *BillingService) RunBillingCycle(ctx context.Context) ([]BillingResult, error) {
	cutoff := time.Now().AddDate(0, 0, 3)
	due, err := s.rentalRepo.ListDueForInvoicing(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	results := make([]BillingResult, 0, len(due))
	for _, rental := range due {
		existing, err := s.invoiceRepo.FindForPeriod(ctx, rental.ID, rental.NextPaymentDate)
		if err != nil {
			s.logger.Error("billing cycle lookup failed",
				zap.String("rental_id", rental.ID), zap.Error(err))
			results = append(results, BillingResult{
				RentalID: rental.ID,
				Status:   "error",
				Error:    err.Error(),
			})
			continue
		}
		if existing != nil {
			results = append(results, BillingResult{
				RentalID:  rental.ID,
				InvoiceID: existing.ID,
				Status:    "already_exists",
			})
			continue
		}

		invoice, err := s.GenerateInvoice(ctx, GenerateInvoiceRequest{RentalID: rental.ID})
		if err != nil {
			s.logger.Error("billing cycle generation failed",
				zap.String("rental_id", rental.ID), zap.Error(err))
			results = append(results, BillingResult{
				RentalID: rental.ID,
				Status:   "error",
				Error:    err.Error(),
			})
			continue
		}

		results = append(results, BillingResult{
			RentalID:  rental.ID,
			InvoiceID: invoice.ID,
			Amount:    invoice.Amount,
			Status:    "generated",
		})
	}
	return results, nil
}

// MarkAsPaid settles an invoice and debits the amount from the
// driver's running balance.
func (s *BillingService) MarkAsPaid(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	paidAt := time.Now()
	if err := s.invoiceRepo.MarkPaid(ctx, invoiceID, paidAt); err != nil {
		return nil, err
	}
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = paidAt

	rental, err := s.rentalRepo.GetByID(ctx, invoice.RentalID)
	if err != nil {
		return nil, err
	}
	if err := s.driverRepo.AdjustBalance(ctx, rental.DriverID, -invoice.Amount); err != nil {
		return nil, err
	}

	s.logger.Info("invoice paid",
		zap.String("invoice_id", invoice.ID),
		zap.Float64("amount", invoice.Amount),
	)
	return invoice, nil
}

// CheckOverdue flips PENDING invoices past their due date to OVERDUE
// and reports how many changed.
func (s *BillingService) CheckOverdue(ctx context.Context) (int64, error) {
	count, err := s.invoiceRepo.MarkOverdueBefore(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Warn("invoices overdue", zap.Int64("count", count))
	}
	return count, nil
}

// Get retrieves an invoice by ID.
func (s *BillingService) Get(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}
	return s.invoiceRepo.GetByID(ctx, invoiceID)
}

// GetInvoices lists invoices matching the filter.
func (s *BillingService) GetInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]*domain.Invoice, error) {
	return s.invoiceRepo.List(ctx, filter)
}
