package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/service"
)

// AnalyticsHandler serves fleet and driver earnings analytics.
type AnalyticsHandler struct {
	earningsService  *service.EarningsService
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(earningsService *service.EarningsService, analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{earningsService: earningsService, analyticsService: analyticsService}
}

// Dashboard handles GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dash, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, dash)
}

// ROI handles GET /api/analytics/roi
func (h *AnalyticsHandler) ROI(c *gin.Context) {
	rows, err := h.analyticsService.ROI(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rows)
}

// DriverEarnings handles GET /api/analytics/drivers/:id/earnings.
// An optional "week" query (YYYY-MM-DD) selects a past week; the
// current week is the default.
func (h *AnalyticsHandler) DriverEarnings(c *gin.Context) {
	var at time.Time
	if v := c.Query("week"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid week, expected YYYY-MM-DD"})
			return
		}
		at = t
	}

	report, err := h.earningsService.GetWeeklyReport(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, report)
}
