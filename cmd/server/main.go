package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fleetsync/internal/app"
	"fleetsync/internal/config"
	"fleetsync/internal/handler"
	"fleetsync/internal/jwt"
	"fleetsync/internal/logger"
	internalRedis "fleetsync/internal/redis"
	"fleetsync/internal/repository/postgres"
	"fleetsync/internal/service"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be
	// instrumented.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			zapLogger.Warn("failed to initialize New Relic", zap.Error(err))
		} else {
			zapLogger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		zapLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	zapLogger.Info("connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg, zapLogger)

	go func() {
		zapLogger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, zapLogger *zap.Logger) *http.Server {
	// Repositories.
	vehicleRepo := postgres.NewVehicleRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	rentalRepo := postgres.NewRentalRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	tollRepo := postgres.NewTollRepository(db)
	tokenRepo := postgres.NewOnboardingTokenRepository(db)
	userRepo := postgres.NewUserRepository(db)
	shiftRepo := postgres.NewShiftRepository(db)
	conditionRepo := postgres.NewConditionReportRepository(db)
	accidentRepo := postgres.NewAccidentReportRepository(db)

	// Shared infrastructure.
	tokens := jwt.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	cache := internalRedis.NewCache(redisClient, cfg.Redis.CacheTTL)
	vevo := service.NewMockVevoClient()

	// Services.
	vehicleService := service.NewVehicleService(vehicleRepo, driverRepo, rentalRepo)
	driverService := service.NewDriverService(driverRepo, rentalRepo, vevo)
	rentalService := service.NewRentalService(rentalRepo, vehicleRepo, driverRepo)
	billingService := service.NewBillingService(invoiceRepo, rentalRepo, driverRepo, zapLogger)
	complianceService := service.NewComplianceService(vehicleRepo, alertRepo, zapLogger)
	onboardingService := service.NewOnboardingService(
		tokenRepo, driverRepo, vevo,
		cfg.Onboarding.TokenTTL, cfg.Onboarding.ClientURL, zapLogger,
	)
	authService := service.NewAuthService(userRepo, driverRepo, tokens)
	earningsService := service.NewEarningsService(
		driverRepo, service.NewMockEarningsProvider(), cache, zapLogger,
	)
	tollService := service.NewTollService(tollRepo, vehicleRepo, rentalRepo, invoiceRepo, zapLogger)
	pdfService := service.NewInvoicePDFService(invoiceRepo, rentalRepo, driverRepo, vehicleRepo)
	analyticsService := service.NewAnalyticsService(
		vehicleRepo, driverRepo, rentalRepo, invoiceRepo, alertRepo, earningsService, zapLogger,
	)
	dashboardService := service.NewDriverDashboardService(
		rentalRepo, vehicleRepo, shiftRepo, conditionRepo, accidentRepo, zapLogger,
	)

	// Router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:       handler.NewAuthHandler(authService),
		VehicleHandler:    handler.NewVehicleHandler(vehicleService),
		DriverHandler:     handler.NewDriverHandler(driverService),
		RentalHandler:     handler.NewRentalHandler(rentalService),
		InvoiceHandler:    handler.NewInvoiceHandler(billingService, pdfService),
		ComplianceHandler: handler.NewComplianceHandler(complianceService),
		OnboardingHandler: handler.NewOnboardingHandler(onboardingService),
		TollHandler:       handler.NewTollHandler(tollService),
		AnalyticsHandler:  handler.NewAnalyticsHandler(earningsService, analyticsService),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService),
		Tokens:            tokens,
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
