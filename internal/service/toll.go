package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// TollService ingests toll provider statements and links charges to
// the invoices of whoever was renting the vehicle.
type TollService struct {
	tollRepo    repository.TollRepository
	vehicleRepo repository.VehicleRepository
	rentalRepo  repository.RentalRepository
	invoiceRepo repository.InvoiceRepository
	logger      *zap.Logger
}

// NewTollService creates a new TollService.
func NewTollService(
	tollRepo repository.TollRepository,
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
	invoiceRepo repository.InvoiceRepository,
	logger *zap.Logger,
) *TollService {
	return &TollService{
		tollRepo:    tollRepo,
		vehicleRepo: vehicleRepo,
		rentalRepo:  rentalRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// TollRecord is one parsed row of a toll provider statement.
type TollRecord struct {
	Plate    string
	Date     time.Time
	Amount   float64
	Location string
}

// IngestOutcome is the per-row result of an ingest run.
type IngestOutcome struct {
	Plate  string  `json:"plate"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
	Detail string  `json:"detail,omitempty"`
}

// IngestResult summarizes one statement ingest.
type IngestResult struct {
	Total    int             `json:"total"`
	Linked   int             `json:"linked"`
	Unlinked int             `json:"unlinked"`
	Failed   int             `json:"failed"`
	Outcomes []IngestOutcome `json:"outcomes"`
}

// Ingest stores each toll charge and, when the plate maps to a vehicle
// with an active rental carrying a pending invoice, folds the charge
// into that invoice. Charges that cannot be matched are stored
// unlinked for a later billing run. One bad row does not abort the
// statement.
func (s *TollService) Ingest(ctx context.Context, records []TollRecord) (*IngestResult, error) {
	result := &IngestResult{Total: len(records)}

	for _, record := range records {
		outcome := IngestOutcome{Plate: record.Plate, Amount: record.Amount}

		toll := &domain.TollCharge{
			ID:        uuid.New().String(),
			Plate:     record.Plate,
			Date:      record.Date,
			Amount:    record.Amount,
			Location:  record.Location,
			CreatedAt: time.Now(),
		}

		invoiceID, detail, err := s.matchInvoice(ctx, record)
		if err != nil {
			s.logger.Error("toll ingest row failed",
				zap.String("plate", record.Plate), zap.Error(err))
			outcome.Status = "error"
			outcome.Detail = err.Error()
			result.Failed++
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}
		toll.InvoiceID = invoiceID

		if err := s.tollRepo.Create(ctx, toll); err != nil {
			outcome.Status = "error"
			outcome.Detail = err.Error()
			result.Failed++
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		if invoiceID != "" {
			if err := s.invoiceRepo.AddTolls(ctx, invoiceID, record.Amount); err != nil {
				outcome.Status = "error"
				outcome.Detail = err.Error()
				result.Failed++
				result.Outcomes = append(result.Outcomes, outcome)
				continue
			}
			outcome.Status = "linked"
			result.Linked++
		} else {
			outcome.Status = "unlinked"
			outcome.Detail = detail
			result.Unlinked++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	s.logger.Info("toll statement ingested",
		zap.Int("total", result.Total),
		zap.Int("linked", result.Linked),
		zap.Int("unlinked", result.Unlinked),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// matchInvoice finds the pending invoice of the active rental on the
// vehicle carrying the plate. An empty invoice ID with a detail string
// means no match, not an error.
func (s *TollService) matchInvoice(ctx context.Context, record TollRecord) (string, string, error) {
	vehicle, err := s.vehicleRepo.GetByPlate(ctx, record.Plate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "no vehicle with this plate", nil
		}
		return "", "", err
	}

	rental, err := s.rentalRepo.GetActiveByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return "", "", err
	}
	if rental == nil {
		return "", "vehicle has no active rental", nil
	}

	invoice, err := s.invoiceRepo.FindPendingByRentalID(ctx, rental.ID)
	if err != nil {
		return "", "", err
	}
	if invoice == nil {
		return "", "rental has no pending invoice", nil
	}
	return invoice.ID, "", nil
}

// List retrieves toll charges matching the filter.
func (s *TollService) List(ctx context.Context, filter repository.TollFilter) ([]*domain.TollCharge, error) {
	return s.tollRepo.List(ctx, filter)
}
