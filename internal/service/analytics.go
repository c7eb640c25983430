package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// AnalyticsService aggregates fleet-wide figures for the admin
// dashboard and the per-vehicle ROI report.
type AnalyticsService struct {
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	rentalRepo  repository.RentalRepository
	invoiceRepo repository.InvoiceRepository
	alertRepo   repository.AlertRepository
	earnings    *EarningsService
	logger      *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	rentalRepo repository.RentalRepository,
	invoiceRepo repository.InvoiceRepository,
	alertRepo repository.AlertRepository,
	earnings *EarningsService,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		rentalRepo:  rentalRepo,
		invoiceRepo: invoiceRepo,
		alertRepo:   alertRepo,
		earnings:    earnings,
		logger:      logger,
	}
}

// InvoiceBucket is a count and dollar total for one invoice status.
type InvoiceBucket struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// FleetDashboard is the admin landing-page summary.
type FleetDashboard struct {
	Vehicles struct {
		Total    int            `json:"total"`
		ByStatus map[string]int `json:"byStatus"`
	} `json:"vehicles"`
	Drivers struct {
		Total    int            `json:"total"`
		ByStatus map[string]int `json:"byStatus"`
	} `json:"drivers"`
	Rentals struct {
		Active int `json:"active"`
	} `json:"rentals"`
	Invoices struct {
		Pending InvoiceBucket `json:"pending"`
		Overdue InvoiceBucket `json:"overdue"`
	} `json:"invoices"`
	Alerts int `json:"alerts"`
}

// Dashboard builds the fleet summary: vehicle and driver counts broken
// down by status, active rentals, outstanding invoice money and open
// compliance alerts.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*FleetDashboard, error) {
	dash := &FleetDashboard{}
	dash.Vehicles.ByStatus = make(map[string]int)
	dash.Drivers.ByStatus = make(map[string]int)

	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	dash.Vehicles.Total = len(vehicles)
	for _, v := range vehicles {
		dash.Vehicles.ByStatus[string(v.Status)]++
	}

	drivers, err := s.driverRepo.GetAll(ctx, "")
	if err != nil {
		return nil, err
	}
	dash.Drivers.Total = len(drivers)
	for _, d := range drivers {
		dash.Drivers.ByStatus[string(d.Status)]++
	}

	active, err := s.rentalRepo.GetAll(ctx, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	dash.Rentals.Active = len(active)

	pending, err := s.invoiceRepo.List(ctx, repository.InvoiceFilter{Status: domain.InvoiceStatusPending})
	if err != nil {
		return nil, err
	}
	dash.Invoices.Pending = bucket(pending)

	overdue, err := s.invoiceRepo.List(ctx, repository.InvoiceFilter{Status: domain.InvoiceStatusOverdue})
	if err != nil {
		return nil, err
	}
	dash.Invoices.Overdue = bucket(overdue)

	alerts, err := s.alertRepo.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	dash.Alerts = len(alerts)

	return dash, nil
}

func bucket(invoices []*domain.Invoice) InvoiceBucket {
	b := InvoiceBucket{Count: len(invoices)}
	for _, inv := range invoices {
		b.Total += inv.Amount
	}
	b.Total = math.Round(b.Total*100) / 100
	return b
}

// VehicleROI compares what a rented vehicle brings in against what its
// driver earns on the platform for the current week.
type VehicleROI struct {
	VehicleID      string  `json:"vehicleId"`
	Plate          string  `json:"plate"`
	DriverID       string  `json:"driverId"`
	DriverName     string  `json:"driverName"`
	WeeklyRate     float64 `json:"weeklyRate"`
	DriverEarnings float64 `json:"driverEarnings"`
	NetEarnings    float64 `json:"netEarnings"`
	Trips          int     `json:"trips"`
	ProfitMargin   string  `json:"profitMargin"`
}

// ROI builds the per-vehicle report across all active rentals. The
// margin is the share of the driver's gross left after the weekly
// rate, "0%" when the week did not cover the rate.
func (s *AnalyticsService) ROI(ctx context.Context) ([]*VehicleROI, error) {
	rentals, err := s.rentalRepo.GetAll(ctx, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}

	rows := make([]*VehicleROI, 0, len(rentals))
	for _, rental := range rentals {
		vehicle, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID)
		if err != nil {
			return nil, err
		}
		driver, err := s.driverRepo.GetByID(ctx, rental.DriverID)
		if err != nil {
			return nil, err
		}
		report, err := s.earnings.GetWeeklyReport(ctx, rental.DriverID, time.Time{})
		if err != nil {
			return nil, err
		}

		margin := "0%"
		if report.GrossEarnings > rental.WeeklyRate {
			pct := (report.GrossEarnings - rental.WeeklyRate) / report.GrossEarnings * 100
			margin = fmt.Sprintf("%.1f%%", pct)
		}

		rows = append(rows, &VehicleROI{
			VehicleID:      vehicle.ID,
			Plate:          vehicle.Plate,
			DriverID:       driver.ID,
			DriverName:     driver.Name,
			WeeklyRate:     rental.WeeklyRate,
			DriverEarnings: report.GrossEarnings,
			NetEarnings:    report.NetEarnings,
			Trips:          report.Trips,
			ProfitMargin:   margin,
		})
	}
	return rows, nil
}
