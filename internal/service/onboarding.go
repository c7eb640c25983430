package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// OnboardingService issues magic-link tokens and turns submitted
// applications into driver records.
type OnboardingService struct {
	tokenRepo  repository.OnboardingTokenRepository
	driverRepo repository.DriverRepository
	vevo       VevoChecker
	tokenTTL   time.Duration
	clientURL  string
	logger     *zap.Logger
}

// NewOnboardingService creates a new OnboardingService.
func NewOnboardingService(
	tokenRepo repository.OnboardingTokenRepository,
	driverRepo repository.DriverRepository,
	vevo VevoChecker,
	tokenTTL time.Duration,
	clientURL string,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		tokenRepo:  tokenRepo,
		driverRepo: driverRepo,
		vevo:       vevo,
		tokenTTL:   tokenTTL,
		clientURL:  clientURL,
		logger:     logger,
	}
}

// OnboardingLink is a freshly minted magic link.
type OnboardingLink struct {
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GenerateLink mints a single-use onboarding token for an email that
// is not yet registered as a driver.
func (s *OnboardingService) GenerateLink(ctx context.Context, email string) (*OnboardingLink, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}

	existing, err := s.driverRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDriverExists
	}

	now := time.Now()
	token := &domain.OnboardingToken{
		Token:     uuid.New().String(),
		Email:     email,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info("onboarding link generated", zap.String("email", email))
	return &OnboardingLink{
		Token:     token.Token,
		Link:      s.clientURL + "/onboard/" + token.Token,
		Email:     email,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// Validate checks a token without consuming it and returns the email
// it was issued for.
func (s *OnboardingService) Validate(ctx context.Context, token string) (*domain.OnboardingToken, error) {
	t, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if t.Used {
		return nil, ErrTokenUsed
	}
	if t.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}
	return t, nil
}

// SubmitApplicationRequest is the applicant-supplied portion of an
// onboarding submission. The email comes from the token, not the form.
type SubmitApplicationRequest struct {
	Token         string
	Name          string
	Phone         string
	LicenseNo     string
	LicenseExpiry time.Time
	PassportNo    string
}

// Submit consumes the token and runs the VEVO check on the supplied
// passport. A DENIED result still consumes the token but creates no
// driver record; anything else creates a PENDING_APPROVAL driver.
func (s *OnboardingService) Submit(ctx context.Context, req SubmitApplicationRequest) (*domain.Driver, error) {
	token, err := s.Validate(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if req.PassportNo == "" {
		return nil, ErrInvalidPassportNo
	}

	vevoStatus, err := s.vevo.Check(ctx, req.PassportNo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if vevoStatus == domain.VevoStatusDenied {
		if err := s.tokenRepo.MarkUsed(ctx, token.Token, now); err != nil {
			return nil, err
		}
		s.logger.Warn("onboarding application rejected",
			zap.String("email", token.Email))
		return nil, ErrApplicationRejected
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         token.Email,
		Phone:         req.Phone,
		LicenseNo:     req.LicenseNo,
		LicenseExpiry: req.LicenseExpiry,
		PassportNo:    req.PassportNo,
		VevoStatus:    vevoStatus,
		VevoCheckedAt: now,
		Status:        domain.DriverStatusPendingApproval,
		CreatedAt:     now,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDriverExists
		}
		return nil, err
	}
	if err := s.tokenRepo.MarkUsed(ctx, token.Token, now); err != nil {
		return nil, err
	}

	s.logger.Info("onboarding application accepted",
		zap.String("driver_id", driver.ID),
		zap.String("email", driver.Email),
	)
	return driver, nil
}

// VerifyPassport runs a standalone VEVO check during form fill, before
// the application is submitted.
func (s *OnboardingService) VerifyPassport(ctx context.Context, passportNo string) (domain.VevoStatus, error) {
	if passportNo == "" {
		return "", ErrInvalidPassportNo
	}
	return s.vevo.Check(ctx, passportNo)
}
