// Command seed applies the schema and loads demo data for local
// development.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fleetsync/internal/app"
	"fleetsync/internal/config"
	"fleetsync/internal/domain"
	"fleetsync/internal/repository/postgres"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := applySchema(ctx, db); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	if err := clearData(ctx, db); err != nil {
		log.Fatalf("failed to clear existing data: %v", err)
	}
	if err := seed(ctx, db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("seeding complete")
	log.Println("admin login: admin@fleetsync.com.au / admin123")
	log.Println("driver login: john.smith@email.com / driver123")
}

func applySchema(ctx context.Context, db *sql.DB) error {
	schema, err := os.ReadFile("migrations/schema.sql")
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(schema))
	return err
}

func clearData(ctx context.Context, db *sql.DB) error {
	// Delete in dependency order.
	for _, table := range []string{
		"toll_charges", "alerts", "invoices", "rentals",
		"onboarding_tokens", "drivers", "vehicles", "users",
	} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func addDays(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

func seed(ctx context.Context, db *sql.DB) error {
	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	alertRepo := postgres.NewAlertRepository(db)

	now := time.Now()

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := userRepo.Create(ctx, &domain.User{
		ID:           uuid.New().String(),
		Email:        "admin@fleetsync.com.au",
		PasswordHash: string(adminHash),
		Name:         "Fleet Admin",
		Role:         domain.UserRoleAdmin,
		CreatedAt:    now,
	}); err != nil {
		return err
	}

	type vehicleSeed struct {
		vin, plate, make, model, color string
		year                           int
		status                         domain.VehicleStatus
		regoDays, ctpDays, pinkDays    int
		weeklyRate, bondAmount         float64
	}
	vehicleSeeds := []vehicleSeed{
		{"WVWZZZ3CZ2E123456", "ABC123", "Toyota", "Camry", "White", 2022, domain.VehicleStatusAvailable, 90, 120, 180, 450, 1000},
		{"WVWZZZ3CZ2E123457", "DEF456", "Toyota", "Corolla", "Silver", 2023, domain.VehicleStatusAvailable, 60, 90, 150, 400, 900},
		{"WVWZZZ3CZ2E123458", "GHI789", "Hyundai", "i30", "Black", 2022, domain.VehicleStatusAvailable, 45, 60, 120, 380, 850},
		{"WVWZZZ3CZ2E123459", "JKL012", "Kia", "Cerato", "Red", 2023, domain.VehicleStatusAvailable, 100, 130, 200, 390, 900},
		{"WVWZZZ3CZ2E123460", "MNO345", "Mazda", "3", "Blue", 2022, domain.VehicleStatusAvailable, 75, 100, 160, 420, 950},
		{"WVWZZZ3CZ2E123461", "PQR678", "Honda", "Civic", "White", 2023, domain.VehicleStatusAvailable, 50, 80, 140, 430, 1000},
		{"WVWZZZ3CZ2E123462", "STU901", "Toyota", "Yaris", "Grey", 2021, domain.VehicleStatusAvailable, 25, 40, 100, 350, 800},
		{"WVWZZZ3CZ2E123463", "VWX234", "Hyundai", "Elantra", "Black", 2022, domain.VehicleStatusAvailable, 80, 110, 170, 400, 900},
		{"WVWZZZ3CZ2E123464", "YZA567", "Kia", "Rio", "Silver", 2023, domain.VehicleStatusAvailable, 35, 55, 115, 360, 850},
		{"WVWZZZ3CZ2E123465", "BCD890", "Mazda", "CX-3", "Red", 2022, domain.VehicleStatusAvailable, 65, 95, 155, 470, 1100},
		{"WVWZZZ3CZ2E123466", "EFG123", "Toyota", "Camry Hybrid", "White", 2023, domain.VehicleStatusRented, 70, 100, 160, 500, 1200},
		{"WVWZZZ3CZ2E123467", "HIJ456", "Toyota", "RAV4", "Blue", 2022, domain.VehicleStatusRented, 55, 85, 145, 520, 1300},
		{"WVWZZZ3CZ2E123468", "KLM789", "Hyundai", "Tucson", "Black", 2023, domain.VehicleStatusRented, 40, 70, 130, 490, 1150},
		{"WVWZZZ3CZ2E123469", "NOP012", "Kia", "Sportage", "Grey", 2022, domain.VehicleStatusRented, 85, 115, 175, 480, 1100},
		{"WVWZZZ3CZ2E123470", "QRS345", "Mazda", "CX-5", "Red", 2023, domain.VehicleStatusRented, 30, 60, 120, 530, 1250},
		{"WVWZZZ3CZ2E123471", "TUV678", "Honda", "HR-V", "White", 2022, domain.VehicleStatusRented, 95, 125, 185, 460, 1050},
		{"WVWZZZ3CZ2E123472", "WXY901", "Toyota", "C-HR", "Silver", 2023, domain.VehicleStatusRented, 20, 50, 110, 470, 1100},
		{"WVWZZZ3CZ2E123473", "ZAB234", "Hyundai", "Kona", "Blue", 2022, domain.VehicleStatusRented, 110, 140, 200, 450, 1000},
		{"WVWZZZ3CZ2E123474", "CDE567", "Nissan", "Pulsar", "Black", 2020, domain.VehicleStatusSuspended, 30, 60, -10, 320, 750},
		{"WVWZZZ3CZ2E123475", "FGH890", "Mitsubishi", "Lancer", "Grey", 2019, domain.VehicleStatusSuspended, -5, 45, -30, 300, 700},
	}

	vehicles := make([]*domain.Vehicle, 0, len(vehicleSeeds))
	for _, v := range vehicleSeeds {
		vehicle := &domain.Vehicle{
			ID:             uuid.New().String(),
			VIN:            v.vin,
			Plate:          v.plate,
			Make:           v.make,
			Model:          v.model,
			Year:           v.year,
			Color:          v.color,
			Status:         v.status,
			RegoExpiry:     addDays(v.regoDays),
			CtpExpiry:      addDays(v.ctpDays),
			PinkSlipExpiry: addDays(v.pinkDays),
			WeeklyRate:     v.weeklyRate,
			BondAmount:     v.bondAmount,
			CreatedAt:      now,
		}
		if err := vehicleRepo.Create(ctx, vehicle); err != nil {
			return err
		}
		vehicles = append(vehicles, vehicle)
	}

	// Alerts for the suspended vehicles.
	for _, alert := range []*domain.Alert{
		{VehicleID: vehicles[18].ID, Type: domain.AlertTypePinkSlipExpiry, Message: "CDE567: Pink Slip (Safety Check) expired"},
		{VehicleID: vehicles[19].ID, Type: domain.AlertTypeRegoExpiry, Message: "FGH890: Registration expired"},
		{VehicleID: vehicles[19].ID, Type: domain.AlertTypePinkSlipExpiry, Message: "FGH890: Pink Slip (Safety Check) expired"},
	} {
		alert.ID = uuid.New().String()
		alert.CreatedAt = now
		if err := alertRepo.Create(ctx, alert); err != nil {
			return err
		}
	}

	driverHash, err := bcrypt.GenerateFromPassword([]byte("driver123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	type driverSeed struct {
		name, email, phone, licenseNo, passportNo string
		licenseDays                               int
		vevoStatus                                domain.VevoStatus
		status                                    domain.DriverStatus
	}
	driverSeeds := []driverSeed{
		{"John Smith", "john.smith@email.com", "0412345678", "NSW1234567", "PA1234567", 365, domain.VevoStatusApproved, domain.DriverStatusActive},
		{"Sarah Chen", "sarah.chen@email.com", "0423456789", "NSW2345678", "PA2345678", 400, domain.VevoStatusApproved, domain.DriverStatusActive},
		{"Mohammed Ali", "mohammed.ali@email.com", "0434567890", "NSW3456789", "PA3456789", 200, domain.VevoStatusApproved, domain.DriverStatusActive},
		{"Emma Thompson", "emma.thompson@email.com", "0445678901", "NSW4567890", "PA4567890", 500, domain.VevoStatusApproved, domain.DriverStatusActive},
		// Passport ends in 0000: fails the VEVO check.
		{"Raj Patel", "raj.patel@email.com", "0456789012", "NSW5678901", "PA5670000", 300, domain.VevoStatusDenied, domain.DriverStatusBlocked},
	}

	var activeDrivers []*domain.Driver
	for _, d := range driverSeeds {
		if err := userRepo.Create(ctx, &domain.User{
			ID:           uuid.New().String(),
			Email:        d.email,
			PasswordHash: string(driverHash),
			Name:         d.name,
			Role:         domain.UserRoleDriver,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		driver := &domain.Driver{
			ID:            uuid.New().String(),
			Name:          d.name,
			Email:         d.email,
			Phone:         d.phone,
			LicenseNo:     d.licenseNo,
			LicenseExpiry: addDays(d.licenseDays),
			PassportNo:    d.passportNo,
			VevoStatus:    d.vevoStatus,
			VevoCheckedAt: now,
			Status:        d.status,
			Balance:       rand.Float64()*500 - 250,
			CreatedAt:     now,
		}
		if err := driverRepo.Create(ctx, driver); err != nil {
			return err
		}
		if driver.Status == domain.DriverStatusActive {
			activeDrivers = append(activeDrivers, driver)
		}
	}

	// Active rentals on the RENTED vehicles with four weeks of invoice
	// history each.
	var rented []*domain.Vehicle
	for _, v := range vehicles {
		if v.Status == domain.VehicleStatusRented {
			rented = append(rented, v)
		}
	}

	for i, vehicle := range rented {
		if i >= len(activeDrivers)*2 {
			break
		}
		driver := activeDrivers[i%len(activeDrivers)]

		rental := &domain.Rental{
			ID:              uuid.New().String(),
			DriverID:        driver.ID,
			VehicleID:       vehicle.ID,
			StartDate:       addDays(-28 + i*7),
			WeeklyRate:      vehicle.WeeklyRate,
			BondAmount:      vehicle.BondAmount,
			NextPaymentDate: addDays(7),
			Status:          domain.RentalStatusActive,
			CreatedAt:       now,
		}
		// The vehicle rows are already RENTED, so insert directly
		// rather than through the guarded assignment path.
		if _, err := db.ExecContext(ctx,
			`INSERT INTO rentals (id, driver_id, vehicle_id, start_date, weekly_rate,
				bond_amount, next_payment_date, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			rental.ID, rental.DriverID, rental.VehicleID, rental.StartDate,
			rental.WeeklyRate, rental.BondAmount, rental.NextPaymentDate,
			rental.Status, rental.CreatedAt,
		); err != nil {
			return err
		}

		for week := 0; week < 4; week++ {
			dueDate := addDays(-7 * (3 - week))
			tolls := rand.Float64() * 50
			var fines, credits float64
			if week == 2 {
				fines = rand.Float64() * 100
			}
			if week == 1 {
				credits = 20
			}

			invoice := &domain.Invoice{
				ID:         uuid.New().String(),
				RentalID:   rental.ID,
				WeeklyRate: rental.WeeklyRate,
				Tolls:      tolls,
				Fines:      fines,
				Credits:    credits,
				Amount:     rental.WeeklyRate + tolls + fines - credits,
				DueDate:    dueDate,
				Status:     domain.InvoiceStatusPending,
				CreatedAt:  now,
			}
			if err := invoiceRepo.Create(ctx, invoice); err != nil {
				return err
			}
			if week < 3 {
				if err := invoiceRepo.MarkPaid(ctx, invoice.ID, dueDate); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
