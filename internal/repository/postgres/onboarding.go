package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetsync/internal/domain"
)

// OnboardingTokenRepository is a PostgreSQL implementation of
// repository.OnboardingTokenRepository.
type OnboardingTokenRepository struct {
	q Querier
}

// NewOnboardingTokenRepository creates a new PostgreSQL onboarding
// token repository.
func NewOnboardingTokenRepository(db *sql.DB) *OnboardingTokenRepository {
	return &OnboardingTokenRepository{q: db}
}

// Create adds a new token.
func (r *OnboardingTokenRepository) Create(ctx context.Context, token *domain.OnboardingToken) error {
	query := `INSERT INTO onboarding_tokens (token, email, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.ExecContext(ctx, query,
		token.Token, token.Email, token.ExpiresAt, token.Used, token.CreatedAt,
	)
	return mapError(err)
}

// GetByToken retrieves a token by its value.
func (r *OnboardingTokenRepository) GetByToken(ctx context.Context, token string) (*domain.OnboardingToken, error) {
	query := `SELECT token, email, expires_at, used, used_at, created_at
		FROM onboarding_tokens WHERE token = $1`
	var t domain.OnboardingToken
	var usedAt sql.NullTime
	err := r.q.QueryRowContext(ctx, query, token).Scan(
		&t.Token, &t.Email, &t.ExpiresAt, &t.Used, &usedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	t.UsedAt = usedAt.Time
	return &t, nil
}

// MarkUsed consumes the token.
func (r *OnboardingTokenRepository) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	query := `UPDATE onboarding_tokens SET used = TRUE, used_at = $1 WHERE token = $2`
	result, err := r.q.ExecContext(ctx, query, usedAt, token)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}
