package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// VehicleHandler handles HTTP requests for fleet vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

const timeFormat = time.RFC3339

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID             string  `json:"id"`
	VIN            string  `json:"vin"`
	Plate          string  `json:"plate"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	Color          string  `json:"color,omitempty"`
	Status         string  `json:"status"`
	RegoExpiry     string  `json:"regoExpiry"`
	CtpExpiry      string  `json:"ctpExpiry"`
	PinkSlipExpiry string  `json:"pinkSlipExpiry"`
	WeeklyRate     float64 `json:"weeklyRate"`
	BondAmount     float64 `json:"bondAmount"`
	CreatedAt      string  `json:"createdAt"`
}

func newVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:             v.ID,
		VIN:            v.VIN,
		Plate:          v.Plate,
		Make:           v.Make,
		Model:          v.Model,
		Year:           v.Year,
		Color:          v.Color,
		Status:         string(v.Status),
		RegoExpiry:     v.RegoExpiry.Format(timeFormat),
		CtpExpiry:      v.CtpExpiry.Format(timeFormat),
		PinkSlipExpiry: v.PinkSlipExpiry.Format(timeFormat),
		WeeklyRate:     v.WeeklyRate,
		BondAmount:     v.BondAmount,
		CreatedAt:      v.CreatedAt.Format(timeFormat),
	}
}

// VehicleDetailResponse adds the compliance verdict and current driver.
type VehicleDetailResponse struct {
	VehicleResponse
	Compliance    domain.VehicleCompliance `json:"compliance"`
	CurrentDriver *DriverResponse          `json:"currentDriver,omitempty"`
}

func newVehicleDetailResponse(v *service.VehicleWithCompliance) VehicleDetailResponse {
	resp := VehicleDetailResponse{
		VehicleResponse: newVehicleResponse(v.Vehicle),
		Compliance:      v.Compliance,
	}
	if v.CurrentDriver != nil {
		d := newDriverResponse(v.CurrentDriver)
		resp.CurrentDriver = &d
	}
	return resp
}

// CreateVehicleRequest is the payload for adding a vehicle.
type CreateVehicleRequest struct {
	VIN            string    `json:"vin" binding:"required"`
	Plate          string    `json:"plate" binding:"required"`
	Make           string    `json:"make" binding:"required"`
	Model          string    `json:"model" binding:"required"`
	Year           int       `json:"year" binding:"required"`
	Color          string    `json:"color"`
	RegoExpiry     time.Time `json:"regoExpiry" binding:"required"`
	CtpExpiry      time.Time `json:"ctpExpiry" binding:"required"`
	PinkSlipExpiry time.Time `json:"pinkSlipExpiry" binding:"required"`
	WeeklyRate     float64   `json:"weeklyRate" binding:"required"`
	BondAmount     float64   `json:"bondAmount"`
}

// Create handles POST /api/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), service.CreateVehicleRequest{
		VIN:            req.VIN,
		Plate:          req.Plate,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		Color:          req.Color,
		RegoExpiry:     req.RegoExpiry,
		CtpExpiry:      req.CtpExpiry,
		PinkSlipExpiry: req.PinkSlipExpiry,
		WeeklyRate:     req.WeeklyRate,
		BondAmount:     req.BondAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newVehicleResponse(vehicle))
}

// GetAll handles GET /api/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleService.GetAllWithCompliance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleDetailResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, newVehicleDetailResponse(v))
	}
	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /api/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newVehicleDetailResponse(vehicle))
}

// UpdateVehicleRequest is the payload for a partial vehicle update.
type UpdateVehicleRequest struct {
	VIN            *string    `json:"vin"`
	Plate          *string    `json:"plate"`
	Make           *string    `json:"make"`
	Model          *string    `json:"model"`
	Year           *int       `json:"year"`
	Color          *string    `json:"color"`
	Status         *string    `json:"status"`
	RegoExpiry     *time.Time `json:"regoExpiry"`
	CtpExpiry      *time.Time `json:"ctpExpiry"`
	PinkSlipExpiry *time.Time `json:"pinkSlipExpiry"`
	WeeklyRate     *float64   `json:"weeklyRate"`
	BondAmount     *float64   `json:"bondAmount"`
}

// Update handles PUT /api/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	update := service.UpdateVehicleRequest{
		VIN:            req.VIN,
		Plate:          req.Plate,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		Color:          req.Color,
		RegoExpiry:     req.RegoExpiry,
		CtpExpiry:      req.CtpExpiry,
		PinkSlipExpiry: req.PinkSlipExpiry,
		WeeklyRate:     req.WeeklyRate,
		BondAmount:     req.BondAmount,
	}
	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		update.Status = &status
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newVehicleResponse(vehicle))
}

// Delete handles DELETE /api/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ValidateCompliance handles POST /api/vehicles/:id/check-compliance
func (h *VehicleHandler) ValidateCompliance(c *gin.Context) {
	result, err := h.vehicleService.ValidateCompliance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"isCompliant": result.IsCompliant,
		"issues":      result.Issues,
		"vehicle":     newVehicleResponse(result.Vehicle),
	})
}
