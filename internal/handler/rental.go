package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// RentalHandler handles HTTP requests for rentals.
type RentalHandler struct {
	rentalService *service.RentalService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// RentalResponse is the HTTP representation of a rental.
type RentalResponse struct {
	ID              string  `json:"id"`
	DriverID        string  `json:"driverId"`
	VehicleID       string  `json:"vehicleId"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate,omitempty"`
	WeeklyRate      float64 `json:"weeklyRate"`
	BondAmount      float64 `json:"bondAmount"`
	NextPaymentDate string  `json:"nextPaymentDate"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}

func newRentalResponse(r *domain.Rental) RentalResponse {
	resp := RentalResponse{
		ID:              r.ID,
		DriverID:        r.DriverID,
		VehicleID:       r.VehicleID,
		StartDate:       r.StartDate.Format(timeFormat),
		WeeklyRate:      r.WeeklyRate,
		BondAmount:      r.BondAmount,
		NextPaymentDate: r.NextPaymentDate.Format(timeFormat),
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(timeFormat),
	}
	if !r.EndDate.IsZero() {
		resp.EndDate = r.EndDate.Format(timeFormat)
	}
	return resp
}

// RentalDetailResponse is a rental with driver and vehicle attached.
type RentalDetailResponse struct {
	RentalResponse
	Driver  *DriverResponse  `json:"driver,omitempty"`
	Vehicle *VehicleResponse `json:"vehicle,omitempty"`
}

// CreateRentalRequest is the payload for assigning a vehicle. The rate
// and bond are the terms negotiated for this rental, not the vehicle's
// listed ones.
type CreateRentalRequest struct {
	DriverID   string    `json:"driverId" binding:"required"`
	VehicleID  string    `json:"vehicleId" binding:"required"`
	WeeklyRate float64   `json:"weeklyRate" binding:"required"`
	BondAmount float64   `json:"bondAmount" binding:"required"`
	StartDate  time.Time `json:"startDate"`
}

// Create handles POST /api/rentals
func (h *RentalHandler) Create(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rental, err := h.rentalService.Create(c.Request.Context(), service.CreateRentalRequest{
		DriverID:   req.DriverID,
		VehicleID:  req.VehicleID,
		WeeklyRate: req.WeeklyRate,
		BondAmount: req.BondAmount,
		StartDate:  req.StartDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newRentalResponse(rental))
}

// GetAll handles GET /api/rentals
func (h *RentalHandler) GetAll(c *gin.Context) {
	status := domain.RentalStatus(c.Query("status"))

	rentals, err := h.rentalService.GetAll(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		response = append(response, newRentalResponse(r))
	}
	respondJSON(c, http.StatusOK, response)
}

// GetActive handles GET /api/rentals/active
func (h *RentalHandler) GetActive(c *gin.Context) {
	details, err := h.rentalService.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentalDetailResponse, 0, len(details))
	for _, detail := range details {
		entry := RentalDetailResponse{RentalResponse: newRentalResponse(detail.Rental)}
		if detail.Driver != nil {
			d := newDriverResponse(detail.Driver)
			entry.Driver = &d
		}
		if detail.Vehicle != nil {
			v := newVehicleResponse(detail.Vehicle)
			entry.Vehicle = &v
		}
		response = append(response, entry)
	}
	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /api/rentals/:id
func (h *RentalHandler) Get(c *gin.Context) {
	rental, err := h.rentalService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newRentalResponse(rental))
}

// End handles POST /api/rentals/:id/end
func (h *RentalHandler) End(c *gin.Context) {
	rental, err := h.rentalService.End(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newRentalResponse(rental))
}

// DueForInvoicing handles GET /api/rentals/due-for-invoicing
func (h *RentalHandler) DueForInvoicing(c *gin.Context) {
	rentals, err := h.rentalService.GetDueForInvoicing(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		response = append(response, newRentalResponse(r))
	}
	respondJSON(c, http.StatusOK, response)
}
