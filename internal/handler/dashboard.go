package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// DashboardHandler handles the driver-facing dashboard.
type DashboardHandler struct {
	dashboardService *service.DriverDashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DriverDashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// ShiftResponse is the HTTP representation of a shift.
type ShiftResponse struct {
	ID        string `json:"id"`
	RentalID  string `json:"rentalId"`
	DriverID  string `json:"driverId"`
	Status    string `json:"status"`
	StartedAt string `json:"startedAt,omitempty"`
	EndedAt   string `json:"endedAt,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func newShiftResponse(s *domain.Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:        s.ID,
		RentalID:  s.RentalID,
		DriverID:  s.DriverID,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt.Format(timeFormat),
	}
	if !s.StartedAt.IsZero() {
		resp.StartedAt = s.StartedAt.Format(timeFormat)
	}
	if !s.EndedAt.IsZero() {
		resp.EndedAt = s.EndedAt.Format(timeFormat)
	}
	return resp
}

// ActiveRental handles GET /api/driver/dashboard/active-rental
func (h *DashboardHandler) ActiveRental(c *gin.Context) {
	view, err := h.dashboardService.ActiveRental(c.Request.Context(), c.Query("driverId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if !view.HasActiveRental {
		respondJSON(c, http.StatusOK, gin.H{"hasActiveRental": false})
		return
	}

	response := gin.H{
		"hasActiveRental": true,
		"rentalId":        view.RentalID,
		"vehicle":         newVehicleResponse(view.Vehicle),
		"shiftId":         view.ShiftID,
		"shiftStatus":     view.ShiftStatus,
	}
	if !view.StartedAt.IsZero() {
		response["startedAt"] = view.StartedAt.Format(timeFormat)
	}
	if !view.LastConditionReport.IsZero() {
		response["lastConditionReport"] = view.LastConditionReport.Format(timeFormat)
	}
	respondJSON(c, http.StatusOK, response)
}

// StartShiftRequest is the payload for starting a shift. DamageMarkers
// is passed through as raw JSON from the inspection widget.
type StartShiftRequest struct {
	ShiftID       string          `json:"shiftId" binding:"required"`
	VehicleID     string          `json:"vehicleId" binding:"required"`
	DriverID      string          `json:"driverId" binding:"required"`
	DamageMarkers json.RawMessage `json:"damageMarkers"`
	Notes         string          `json:"notes"`
	Photos        []string        `json:"photos"`
}

// StartShift handles POST /api/driver/dashboard/start-shift
func (h *DashboardHandler) StartShift(c *gin.Context) {
	var req StartShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	shift, report, err := h.dashboardService.StartShift(c.Request.Context(), service.StartShiftRequest{
		ShiftID:       req.ShiftID,
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		DamageMarkers: string(req.DamageMarkers),
		Notes:         req.Notes,
		Photos:        req.Photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"success":         true,
		"shift":           newShiftResponse(shift),
		"conditionReport": gin.H{"id": report.ID, "verifiedAt": report.VerifiedAt.Format(timeFormat)},
	})
}

// EndShiftRequest is the payload for ending a shift.
type EndShiftRequest struct {
	ShiftID string `json:"shiftId" binding:"required"`
}

// EndShift handles POST /api/driver/dashboard/end-shift
func (h *DashboardHandler) EndShift(c *gin.Context) {
	var req EndShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	shift, err := h.dashboardService.EndShift(c.Request.Context(), req.ShiftID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"success": true, "shift": newShiftResponse(shift)})
}

// ReturnVehicleRequest is the payload for a vehicle return request.
type ReturnVehicleRequest struct {
	RentalID string `json:"rentalId" binding:"required"`
	ShiftID  string `json:"shiftId"`
}

// ReturnVehicle handles POST /api/driver/dashboard/return-vehicle
func (h *DashboardHandler) ReturnVehicle(c *gin.Context) {
	var req ReturnVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.dashboardService.ReturnVehicle(c.Request.Context(), req.RentalID, req.ShiftID); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{
		"success": true,
		"message": "Return request submitted. Please return the vehicle to the depot.",
	})
}

// AccidentReportRequest is the payload for filing an accident report.
type AccidentReportRequest struct {
	RentalID          string    `json:"rentalId"`
	DriverID          string    `json:"driverId" binding:"required"`
	VehicleID         string    `json:"vehicleId" binding:"required"`
	IsSafe            *bool     `json:"isSafe"`
	EmergencyCalled   bool      `json:"emergencyCalled"`
	ScenePhotos       []string  `json:"scenePhotos"`
	ThirdPartyName    string    `json:"thirdPartyName"`
	ThirdPartyPhone   string    `json:"thirdPartyPhone"`
	ThirdPartyPlate   string    `json:"thirdPartyPlate"`
	ThirdPartyInsurer string    `json:"thirdPartyInsurer"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	OccurredAt        time.Time `json:"occurredAt"`
}

// ReportAccident handles POST /api/driver/dashboard/accident-report
func (h *DashboardHandler) ReportAccident(c *gin.Context) {
	var req AccidentReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// Safe unless the driver says otherwise.
	isSafe := true
	if req.IsSafe != nil {
		isSafe = *req.IsSafe
	}

	report, err := h.dashboardService.ReportAccident(c.Request.Context(), service.AccidentReportRequest{
		RentalID:          req.RentalID,
		DriverID:          req.DriverID,
		VehicleID:         req.VehicleID,
		IsSafe:            isSafe,
		EmergencyCalled:   req.EmergencyCalled,
		ScenePhotos:       req.ScenePhotos,
		ThirdPartyName:    req.ThirdPartyName,
		ThirdPartyPhone:   req.ThirdPartyPhone,
		ThirdPartyPlate:   req.ThirdPartyPlate,
		ThirdPartyInsurer: req.ThirdPartyInsurer,
		Description:       req.Description,
		Location:          req.Location,
		OccurredAt:        req.OccurredAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, gin.H{"success": true, "reportId": report.ID})
}

// AccidentReportResponse is the HTTP representation of an accident
// report.
type AccidentReportResponse struct {
	ID              string   `json:"id"`
	RentalID        string   `json:"rentalId,omitempty"`
	DriverID        string   `json:"driverId"`
	VehicleID       string   `json:"vehicleId"`
	IsSafe          bool     `json:"isSafe"`
	EmergencyCalled bool     `json:"emergencyCalled"`
	ScenePhotos     []string `json:"scenePhotos,omitempty"`
	Description     string   `json:"description,omitempty"`
	Location        string   `json:"location,omitempty"`
	OccurredAt      string   `json:"occurredAt"`
	SyncedAt        string   `json:"syncedAt"`
}

// AccidentHistory handles GET /api/vehicles/:id/accidents
func (h *DashboardHandler) AccidentHistory(c *gin.Context) {
	reports, err := h.dashboardService.AccidentHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]AccidentReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, AccidentReportResponse{
			ID:              r.ID,
			RentalID:        r.RentalID,
			DriverID:        r.DriverID,
			VehicleID:       r.VehicleID,
			IsSafe:          r.IsSafe,
			EmergencyCalled: r.EmergencyCalled,
			ScenePhotos:     r.ScenePhotos,
			Description:     r.Description,
			Location:        r.Location,
			OccurredAt:      r.OccurredAt.Format(timeFormat),
			SyncedAt:        r.SyncedAt.Format(timeFormat),
		})
	}
	respondJSON(c, http.StatusOK, out)
}
