package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"fleetsync/internal/handler"
	"fleetsync/internal/jwt"
	"fleetsync/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler       *handler.AuthHandler
	VehicleHandler    *handler.VehicleHandler
	DriverHandler     *handler.DriverHandler
	RentalHandler     *handler.RentalHandler
	InvoiceHandler    *handler.InvoiceHandler
	ComplianceHandler *handler.ComplianceHandler
	OnboardingHandler *handler.OnboardingHandler
	TollHandler       *handler.TollHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	DashboardHandler  *handler.DashboardHandler
	Tokens            *jwt.Generator
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes.
	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	// The onboarding form is reached via emailed magic link, before
	// the applicant has an account.
	onboarding := api.Group("/onboarding")
	{
		onboarding.GET("/validate/:token", deps.OnboardingHandler.Validate)
		onboarding.POST("/submit", deps.OnboardingHandler.Submit)
		onboarding.POST("/verify", deps.OnboardingHandler.VerifyPassport)
	}

	// Authenticated routes.
	protected := api.Group("")
	protected.Use(middleware.AuthRequired(deps.Tokens))
	{
		protected.GET("/auth/me", deps.AuthHandler.Me)

		protected.GET("/vehicles", deps.VehicleHandler.GetAll)
		protected.GET("/vehicles/:id", deps.VehicleHandler.Get)
		protected.GET("/vehicles/:id/accidents", deps.DashboardHandler.AccidentHistory)
		protected.GET("/drivers", deps.DriverHandler.GetAll)
		protected.GET("/drivers/:id", deps.DriverHandler.Get)
		protected.GET("/rentals", deps.RentalHandler.GetAll)
		protected.GET("/rentals/active", deps.RentalHandler.GetActive)
		protected.GET("/rentals/due-for-invoicing", deps.RentalHandler.DueForInvoicing)
		protected.GET("/rentals/:id", deps.RentalHandler.Get)
		protected.GET("/invoices", deps.InvoiceHandler.GetAll)
		protected.GET("/invoices/:id", deps.InvoiceHandler.Get)
		protected.GET("/invoices/:id/pdf", deps.InvoiceHandler.DownloadPDF)
		protected.GET("/compliance/upcoming-expiries", deps.ComplianceHandler.UpcomingExpiries)
		protected.GET("/compliance/alerts", deps.ComplianceHandler.Alerts)
		protected.GET("/tolls", deps.TollHandler.GetAll)
		protected.GET("/analytics/dashboard", deps.AnalyticsHandler.Dashboard)
		protected.GET("/analytics/roi", deps.AnalyticsHandler.ROI)
		protected.GET("/analytics/drivers/:id/earnings", deps.AnalyticsHandler.DriverEarnings)

		// Driver-facing dashboard.
		dashboard := protected.Group("/driver/dashboard")
		{
			dashboard.GET("/active-rental", deps.DashboardHandler.ActiveRental)
			dashboard.POST("/start-shift", deps.DashboardHandler.StartShift)
			dashboard.POST("/end-shift", deps.DashboardHandler.EndShift)
			dashboard.POST("/return-vehicle", deps.DashboardHandler.ReturnVehicle)
			dashboard.POST("/accident-report", deps.DashboardHandler.ReportAccident)
		}
	}

	// Admin-only mutations.
	admin := api.Group("")
	admin.Use(middleware.AuthRequired(deps.Tokens), middleware.RequireRole("ADMIN"))
	{
		admin.POST("/vehicles", deps.VehicleHandler.Create)
		admin.PUT("/vehicles/:id", deps.VehicleHandler.Update)
		admin.DELETE("/vehicles/:id", deps.VehicleHandler.Delete)
		admin.POST("/vehicles/:id/check-compliance", deps.VehicleHandler.ValidateCompliance)

		admin.POST("/drivers", deps.DriverHandler.Register)
		admin.PUT("/drivers/:id", deps.DriverHandler.Update)
		admin.DELETE("/drivers/:id", deps.DriverHandler.Delete)
		admin.POST("/drivers/:id/vevo-check", deps.DriverHandler.VevoCheck)
		admin.POST("/drivers/:id/approve", deps.DriverHandler.Approve)
		admin.POST("/drivers/:id/block", deps.DriverHandler.Block)

		admin.POST("/rentals", deps.RentalHandler.Create)
		admin.POST("/rentals/:id/end", deps.RentalHandler.End)

		admin.POST("/invoices/generate", deps.InvoiceHandler.Generate)
		admin.POST("/invoices/run-billing-cycle", deps.InvoiceHandler.RunBillingCycle)
		admin.POST("/invoices/check-overdue", deps.InvoiceHandler.CheckOverdue)
		admin.POST("/invoices/:id/pay", deps.InvoiceHandler.MarkPaid)

		admin.POST("/compliance/check", deps.ComplianceHandler.CheckExpiries)
		admin.POST("/compliance/alerts/:id/resolve", deps.ComplianceHandler.ResolveAlert)

		admin.POST("/onboarding/generate-link", deps.OnboardingHandler.GenerateLink)

		admin.POST("/tolls/upload", deps.TollHandler.Upload)
	}

	return router
}
