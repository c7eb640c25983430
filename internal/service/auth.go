package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fleetsync/internal/domain"
	"fleetsync/internal/jwt"
	"fleetsync/internal/repository"
)

// AuthService handles dashboard registration and login.
type AuthService struct {
	userRepo   repository.UserRepository
	driverRepo repository.DriverRepository
	tokens     *jwt.Generator
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	driverRepo repository.DriverRepository,
	tokens *jwt.Generator,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		driverRepo: driverRepo,
		tokens:     tokens,
	}
}

// RegisterUserRequest contains the parameters for creating a login
// account.
type RegisterUserRequest struct {
	Email    string
	Password string
	Name     string
	Role     domain.UserRole
}

// Register creates a login account with a bcrypt password hash.
// The role defaults to ADMIN when unspecified.
func (s *AuthService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.UserRoleAdmin
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token    string          `json:"token"`
	UserID   string          `json:"userId"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
	DriverID string          `json:"driverId,omitempty"`
}

// Login verifies credentials and issues an access token. When a driver
// record shares the login email its ID rides along so the dashboard
// can scope driver views.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(jwt.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	result := &LoginResult{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}

	driver, err := s.driverRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if driver != nil {
		result.DriverID = driver.ID
	}
	return result, nil
}

// CurrentUser loads the account behind a validated token subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
