package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	LicenseNo     string  `json:"licenseNo"`
	LicenseExpiry string  `json:"licenseExpiry,omitempty"`
	PassportNo    string  `json:"passportNo,omitempty"`
	VevoStatus    string  `json:"vevoStatus"`
	VevoCheckedAt string  `json:"vevoCheckedAt,omitempty"`
	Status        string  `json:"status"`
	Balance       float64 `json:"balance"`
	CreatedAt     string  `json:"createdAt"`
}

func newDriverResponse(d *domain.Driver) DriverResponse {
	resp := DriverResponse{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		LicenseNo:  d.LicenseNo,
		PassportNo: d.PassportNo,
		VevoStatus: string(d.VevoStatus),
		Status:     string(d.Status),
		Balance:    d.Balance,
		CreatedAt:  d.CreatedAt.Format(timeFormat),
	}
	if !d.LicenseExpiry.IsZero() {
		resp.LicenseExpiry = d.LicenseExpiry.Format(timeFormat)
	}
	if !d.VevoCheckedAt.IsZero() {
		resp.VevoCheckedAt = d.VevoCheckedAt.Format(timeFormat)
	}
	return resp
}

// RegisterDriverRequest is the payload for admin-side registration.
type RegisterDriverRequest struct {
	Name          string    `json:"name" binding:"required"`
	Email         string    `json:"email" binding:"required,email"`
	Phone         string    `json:"phone"`
	LicenseNo     string    `json:"licenseNo" binding:"required"`
	LicenseExpiry time.Time `json:"licenseExpiry"`
	PassportNo    string    `json:"passportNo"`
}

// Register handles POST /api/drivers
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	driver, err := h.driverService.Register(c.Request.Context(), service.RegisterDriverRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenseNo:     req.LicenseNo,
		LicenseExpiry: req.LicenseExpiry,
		PassportNo:    req.PassportNo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newDriverResponse(driver))
}

// GetAll handles GET /api/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	status := domain.DriverStatus(c.Query("status"))

	drivers, err := h.driverService.GetAll(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, newDriverResponse(d))
	}
	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /api/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}

// UpdateDriverRequest is the payload for a partial driver update.
type UpdateDriverRequest struct {
	Name          *string    `json:"name"`
	Email         *string    `json:"email"`
	Phone         *string    `json:"phone"`
	LicenseNo     *string    `json:"licenseNo"`
	LicenseExpiry *time.Time `json:"licenseExpiry"`
	PassportNo    *string    `json:"passportNo"`
	Status        *string    `json:"status"`
}

// Update handles PUT /api/drivers/:id
func (h *DriverHandler) Update(c *gin.Context) {
	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	update := service.UpdateDriverRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenseNo:     req.LicenseNo,
		LicenseExpiry: req.LicenseExpiry,
		PassportNo:    req.PassportNo,
	}
	if req.Status != nil {
		status := domain.DriverStatus(*req.Status)
		update.Status = &status
	}

	driver, err := h.driverService.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}

// Delete handles DELETE /api/drivers/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.driverService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// VevoCheck handles POST /api/drivers/:id/vevo-check
func (h *DriverHandler) VevoCheck(c *gin.Context) {
	driver, err := h.driverService.RunVevoCheck(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}

// Approve handles POST /api/drivers/:id/approve
func (h *DriverHandler) Approve(c *gin.Context) {
	driver, err := h.driverService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}

// Block handles POST /api/drivers/:id/block
func (h *DriverHandler) Block(c *gin.Context) {
	driver, err := h.driverService.Block(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}
