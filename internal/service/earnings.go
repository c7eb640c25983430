package service

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/redis"
	"fleetsync/internal/repository"
)

// EarningsProvider fetches weekly rideshare earnings for a driver from
// the platform analytics API.
type EarningsProvider interface {
	WeeklyReport(ctx context.Context, driverID string, weekStarting time.Time) (*domain.EarningsReport, error)
}

// MockEarningsProvider synthesizes plausible weekly figures in place
// of the real platform API.
type MockEarningsProvider struct {
	rng *rand.Rand
}

// NewMockEarningsProvider creates a new mock earnings provider.
func NewMockEarningsProvider() *MockEarningsProvider {
	return &MockEarningsProvider{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// WeeklyReport implements EarningsProvider. Gross lands in 800-1499,
// net is 75% of gross, trips in 40-79 and hours online in 25-49.
func (p *MockEarningsProvider) WeeklyReport(ctx context.Context, driverID string, weekStarting time.Time) (*domain.EarningsReport, error) {
	gross := 800 + p.rng.Float64()*700
	gross = math.Round(gross*100) / 100
	trips := 40 + p.rng.Intn(40)

	return &domain.EarningsReport{
		DriverID:           driverID,
		WeekStarting:       weekStarting,
		GrossEarnings:      gross,
		NetEarnings:        math.Round(gross*0.75*100) / 100,
		Trips:              trips,
		HoursOnline:        25 + p.rng.Intn(25),
		AvgEarningsPerTrip: math.Round(gross/float64(trips)*100) / 100,
		Platform:           "uber",
	}, nil
}

// ReportCache stores earnings reports between provider calls.
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
}

// EarningsService serves weekly earnings analytics with a Redis cache
// in front of the provider.
type EarningsService struct {
	driverRepo repository.DriverRepository
	provider   EarningsProvider
	cache      ReportCache
	logger     *zap.Logger
}

// NewEarningsService creates a new EarningsService. cache may be nil,
// in which case every call hits the provider.
func NewEarningsService(
	driverRepo repository.DriverRepository,
	provider EarningsProvider,
	cache ReportCache,
	logger *zap.Logger,
) *EarningsService {
	return &EarningsService{
		driverRepo: driverRepo,
		provider:   provider,
		cache:      cache,
		logger:     logger,
	}
}

// weekStart returns the Monday midnight on or before t.
func weekStart(t time.Time) time.Time {
	t = startOfDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// GetWeeklyReport returns the driver's earnings for the week
// containing at, defaulting to the current week when at is zero.
func (s *EarningsService) GetWeeklyReport(ctx context.Context, driverID string, at time.Time) (*domain.EarningsReport, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now()
	}
	week := weekStart(at)
	key := "earnings:" + driverID + ":" + week.Format("2006-01-02")

	if s.cache != nil {
		var cached domain.EarningsReport
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("earnings cache read failed", zap.Error(err))
		}
	}

	report, err := s.provider.WeeklyReport(ctx, driverID, week)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report); err != nil {
			s.logger.Warn("earnings cache write failed", zap.Error(err))
		}
	}
	return report, nil
}
