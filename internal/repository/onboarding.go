package repository

import (
	"context"
	"time"

	"fleetsync/internal/domain"
)

// OnboardingTokenRepository defines the persistence operations for
// magic-link onboarding tokens.
type OnboardingTokenRepository interface {
	// Create adds a new token.
	Create(ctx context.Context, token *domain.OnboardingToken) error

	// GetByToken retrieves a token by its value.
	GetByToken(ctx context.Context, token string) (*domain.OnboardingToken, error)

	// MarkUsed consumes the token.
	MarkUsed(ctx context.Context, token string, usedAt time.Time) error
}
