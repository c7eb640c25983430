package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/domain"
	"fleetsync/internal/service"
)

// ComplianceHandler handles HTTP requests for the compliance sweep and
// alerts.
type ComplianceHandler struct {
	complianceService *service.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceService *service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// AlertResponse is the HTTP representation of a compliance alert.
type AlertResponse struct {
	ID         string `json:"id"`
	VehicleID  string `json:"vehicleId"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Resolved   bool   `json:"resolved"`
	ResolvedAt string `json:"resolvedAt,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func newAlertResponse(a *domain.Alert) AlertResponse {
	resp := AlertResponse{
		ID:        a.ID,
		VehicleID: a.VehicleID,
		Type:      string(a.Type),
		Message:   a.Message,
		Resolved:  a.Resolved,
		CreatedAt: a.CreatedAt.Format(timeFormat),
	}
	if !a.ResolvedAt.IsZero() {
		resp.ResolvedAt = a.ResolvedAt.Format(timeFormat)
	}
	return resp
}

// CheckExpiries handles POST /api/compliance/check
func (h *ComplianceHandler) CheckExpiries(c *gin.Context) {
	result, err := h.complianceService.CheckExpiries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, result)
}

// UpcomingExpiries handles GET /api/compliance/upcoming-expiries
func (h *ComplianceHandler) UpcomingExpiries(c *gin.Context) {
	entries, err := h.complianceService.GetUpcomingExpiries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type upcomingEntry struct {
		Vehicle    VehicleResponse          `json:"vehicle"`
		Compliance domain.VehicleCompliance `json:"compliance"`
	}
	response := make([]upcomingEntry, 0, len(entries))
	for _, entry := range entries {
		response = append(response, upcomingEntry{
			Vehicle:    newVehicleResponse(entry.Vehicle),
			Compliance: entry.Compliance,
		})
	}
	respondJSON(c, http.StatusOK, response)
}

// Alerts handles GET /api/compliance/alerts
func (h *ComplianceHandler) Alerts(c *gin.Context) {
	alerts, err := h.complianceService.UnresolvedAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		response = append(response, newAlertResponse(a))
	}
	respondJSON(c, http.StatusOK, response)
}

// ResolveAlert handles POST /api/compliance/alerts/:id/resolve
func (h *ComplianceHandler) ResolveAlert(c *gin.Context) {
	alert, err := h.complianceService.ResolveAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newAlertResponse(alert))
}
