package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/jwt"
	"fleetsync/internal/service"
)

// ──────────────────────────────────────────────
// REGISTRATION AND LOGIN
// ──────────────────────────────────────────────

func newAuthFixture() (*service.AuthService, *MockUserRepository, *MockDriverRepository, *jwt.Generator) {
	userRepo := NewMockUserRepository()
	driverRepo := NewMockDriverRepository()
	tokens := jwt.NewGenerator("test-secret", time.Hour)
	return service.NewAuthService(userRepo, driverRepo, tokens), userRepo, driverRepo, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, _, _, tokens := newAuthFixture()

	user, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Email:    "ops@fleetsync.com.au",
		Password: "admin123",
		Name:     "Ops Admin",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.UserRoleAdmin {
		t.Errorf("role = %s, want ADMIN default", user.Role)
	}
	if user.PasswordHash == "admin123" {
		t.Error("password stored in the clear")
	}

	result, err := svc.Login(context.Background(), "ops@fleetsync.com.au", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.UserID != user.ID || result.DriverID != "" {
		t.Errorf("unexpected result: %+v", result)
	}

	claims, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token rejected: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != "ADMIN" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newAuthFixture()
	if _, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Email: "ops@fleetsync.com.au", Password: "admin123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), "ops@fleetsync.com.au", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}

	// Unknown account must be indistinguishable from a bad password.
	_, err = svc.Login(context.Background(), "nobody@fleetsync.com.au", "admin123")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_DriverAccountCarriesDriverID(t *testing.T) {
	t.Parallel()

	svc, _, driverRepo, _ := newAuthFixture()
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	if _, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Email:    "d1@email.com",
		Password: "driver123",
		Role:     domain.UserRoleDriver,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "d1@email.com", "driver123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.DriverID != "d1" {
		t.Errorf("driver id = %q, want d1", result.DriverID)
	}
	if result.Role != domain.UserRoleDriver {
		t.Errorf("role = %s, want DRIVER", result.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newAuthFixture()
	if _, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Email: "ops@fleetsync.com.au", Password: "admin123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Email: "ops@fleetsync.com.au", Password: "other",
	})
	if !errors.Is(err, service.ErrUserExists) {
		t.Errorf("got %v, want ErrUserExists", err)
	}
}
