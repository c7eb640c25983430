package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"fleetsync/internal/repository"
)

// InvoicePDFService renders invoices as downloadable PDF documents.
type InvoicePDFService struct {
	invoiceRepo repository.InvoiceRepository
	rentalRepo  repository.RentalRepository
	driverRepo  repository.DriverRepository
	vehicleRepo repository.VehicleRepository
}

// NewInvoicePDFService creates a new InvoicePDFService.
func NewInvoicePDFService(
	invoiceRepo repository.InvoiceRepository,
	rentalRepo repository.RentalRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
) *InvoicePDFService {
	return &InvoicePDFService{
		invoiceRepo: invoiceRepo,
		rentalRepo:  rentalRepo,
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
	}
}

const pdfDateFormat = "02/01/2006"

// Render produces a tax invoice PDF for the given invoice.
func (s *InvoicePDFService) Render(ctx context.Context, invoiceID string) ([]byte, error) {
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	rental, err := s.rentalRepo.GetByID(ctx, invoice.RentalID)
	if err != nil {
		return nil, err
	}
	driver, err := s.driverRepo.GetByID(ctx, rental.DriverID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+shortID(invoice.ID), false)
	pdf.AddPage()

	// Letterhead.
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 12, "FleetSync", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, "Rideshare Fleet Rentals", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Invoice #: "+shortID(invoice.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Issued: "+invoice.CreatedAt.Format(pdfDateFormat), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Due: "+invoice.DueDate.Format(pdfDateFormat), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Status: "+string(invoice.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Billed To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, driver.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, driver.Email, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Vehicle", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("%d %s %s (%s)", vehicle.Year, vehicle.Make, vehicle.Model, vehicle.Plate),
		"", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Line items.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(140, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	writeLine := func(label string, amount float64) {
		pdf.CellFormat(140, 8, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("$%.2f", amount), "1", 1, "R", false, 0, "")
	}

	writeLine("Weekly vehicle rental", invoice.WeeklyRate)
	if invoice.Tolls != 0 {
		writeLine("Toll charges", invoice.Tolls)
	}
	if invoice.Fines != 0 {
		writeLine("Fines", invoice.Fines)
	}
	if invoice.Credits != 0 {
		writeLine("Credits", -invoice.Credits)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 9, "TOTAL AUD", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 9, fmt.Sprintf("$%.2f", invoice.Amount), "1", 1, "R", true, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Payment is due within 7 days of the issue date.", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "FleetSync Pty Ltd", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shortID renders the first 8 characters of a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
