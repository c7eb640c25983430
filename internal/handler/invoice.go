package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
	"fleetsync/internal/service"
)

// InvoiceHandler handles HTTP requests for billing.
type InvoiceHandler struct {
	billingService *service.BillingService
	pdfService     *service.InvoicePDFService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(billingService *service.BillingService, pdfService *service.InvoicePDFService) *InvoiceHandler {
	return &InvoiceHandler{billingService: billingService, pdfService: pdfService}
}

// InvoiceResponse is the HTTP representation of an invoice.
type InvoiceResponse struct {
	ID         string  `json:"id"`
	RentalID   string  `json:"rentalId"`
	WeeklyRate float64 `json:"weeklyRate"`
	Tolls      float64 `json:"tolls"`
	Fines      float64 `json:"fines"`
	Credits    float64 `json:"credits"`
	Amount     float64 `json:"amount"`
	DueDate    string  `json:"dueDate"`
	Status     string  `json:"status"`
	PaidAt     string  `json:"paidAt,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

func newInvoiceResponse(i *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:         i.ID,
		RentalID:   i.RentalID,
		WeeklyRate: i.WeeklyRate,
		Tolls:      i.Tolls,
		Fines:      i.Fines,
		Credits:    i.Credits,
		Amount:     i.Amount,
		DueDate:    i.DueDate.Format(timeFormat),
		Status:     string(i.Status),
		CreatedAt:  i.CreatedAt.Format(timeFormat),
	}
	if !i.PaidAt.IsZero() {
		resp.PaidAt = i.PaidAt.Format(timeFormat)
	}
	return resp
}

// GenerateInvoiceRequest is the payload for manual invoice generation.
type GenerateInvoiceRequest struct {
	RentalID string  `json:"rentalId" binding:"required"`
	Tolls    float64 `json:"tolls"`
	Fines    float64 `json:"fines"`
	Credits  float64 `json:"credits"`
}

// Generate handles POST /api/invoices/generate
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	invoice, err := h.billingService.GenerateInvoice(c.Request.Context(), service.GenerateInvoiceRequest{
		RentalID: req.RentalID,
		Tolls:    req.Tolls,
		Fines:    req.Fines,
		Credits:  req.Credits,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newInvoiceResponse(invoice))
}

// RunBillingCycle handles POST /api/invoices/run-billing-cycle
func (h *InvoiceHandler) RunBillingCycle(c *gin.Context) {
	results, err := h.billingService.RunBillingCycle(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"results": results})
}

// GetAll handles GET /api/invoices
func (h *InvoiceHandler) GetAll(c *gin.Context) {
	filter := repository.InvoiceFilter{
		Status:   domain.InvoiceStatus(c.Query("status")),
		RentalID: c.Query("rentalId"),
		DriverID: c.Query("driverId"),
	}

	invoices, err := h.billingService.GetInvoices(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]InvoiceResponse, 0, len(invoices))
	for _, i := range invoices {
		response = append(response, newInvoiceResponse(i))
	}
	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.billingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newInvoiceResponse(invoice))
}

// MarkPaid handles POST /api/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	invoice, err := h.billingService.MarkAsPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newInvoiceResponse(invoice))
}

// CheckOverdue handles POST /api/invoices/check-overdue
func (h *InvoiceHandler) CheckOverdue(c *gin.Context) {
	count, err := h.billingService.CheckOverdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"markedOverdue": count})
}

// DownloadPDF handles GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id := c.Param("id")
	data, err := h.pdfService.Render(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice-`+id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
