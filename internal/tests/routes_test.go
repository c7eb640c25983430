package tests

import (
	"testing"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/app"
)

// ──────────────────────────────────────────────
// ROUTE TABLE
// ──────────────────────────────────────────────

// The API surface is part of the contract with the web client; this
// pins the method and path of every registered route.
func TestRouter_RegisteredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := app.NewRouter(app.RouterDeps{})

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/me",

		"GET /api/onboarding/validate/:token",
		"POST /api/onboarding/submit",
		"POST /api/onboarding/verify",
		"POST /api/onboarding/generate-link",

		"GET /api/vehicles",
		"GET /api/vehicles/:id",
		"POST /api/vehicles",
		"PUT /api/vehicles/:id",
		"DELETE /api/vehicles/:id",
		"POST /api/vehicles/:id/check-compliance",
		"GET /api/vehicles/:id/accidents",

		"GET /api/drivers",
		"GET /api/drivers/:id",
		"POST /api/drivers",
		"PUT /api/drivers/:id",
		"DELETE /api/drivers/:id",
		"POST /api/drivers/:id/vevo-check",
		"POST /api/drivers/:id/approve",
		"POST /api/drivers/:id/block",

		"GET /api/rentals",
		"GET /api/rentals/active",
		"GET /api/rentals/due-for-invoicing",
		"GET /api/rentals/:id",
		"POST /api/rentals",
		"POST /api/rentals/:id/end",

		"GET /api/invoices",
		"GET /api/invoices/:id",
		"GET /api/invoices/:id/pdf",
		"POST /api/invoices/generate",
		"POST /api/invoices/run-billing-cycle",
		"POST /api/invoices/check-overdue",
		"POST /api/invoices/:id/pay",

		"GET /api/compliance/upcoming-expiries",
		"GET /api/compliance/alerts",
		"POST /api/compliance/check",
		"POST /api/compliance/alerts/:id/resolve",

		"GET /api/tolls",
		"POST /api/tolls/upload",

		"GET /api/analytics/dashboard",
		"GET /api/analytics/roi",
		"GET /api/analytics/drivers/:id/earnings",

		"GET /api/driver/dashboard/active-rental",
		"POST /api/driver/dashboard/start-shift",
		"POST /api/driver/dashboard/end-shift",
		"POST /api/driver/dashboard/return-vehicle",
		"POST /api/driver/dashboard/accident-report",
	}

	for _, route := range want {
		if !registered[route] {
			t.Errorf("route not registered: %s", route)
		}
	}
}
