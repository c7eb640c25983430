package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fleetsync/internal/domain"
	"fleetsync/internal/redis"
	"fleetsync/internal/repository"
	"fleetsync/internal/service"
)

// ──────────────────────────────────────────────
// WEEKLY EARNINGS ANALYTICS
// ──────────────────────────────────────────────

// fakeReportCache is an in-memory stand-in for the Redis report cache.
type fakeReportCache struct {
	reports map[string]domain.EarningsReport

	GetCallCount int
	SetCallCount int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{reports: make(map[string]domain.EarningsReport)}
}

func (c *fakeReportCache) Get(ctx context.Context, key string, dest any) error {
	c.GetCallCount++
	report, ok := c.reports[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	*dest.(*domain.EarningsReport) = report
	return nil
}

func (c *fakeReportCache) Set(ctx context.Context, key string, value any) error {
	c.SetCallCount++
	c.reports[key] = *value.(*domain.EarningsReport)
	return nil
}

func newEarningsFixture() (*service.EarningsService, *MockDriverRepository, *fakeReportCache) {
	driverRepo := NewMockDriverRepository()
	cache := newFakeReportCache()
	svc := service.NewEarningsService(driverRepo, service.NewMockEarningsProvider(), cache, zap.NewNop())
	return svc, driverRepo, cache
}

func TestGetWeeklyReport_ValueRanges(t *testing.T) {
	t.Parallel()

	svc, driverRepo, _ := newEarningsFixture()
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	report, err := svc.GetWeeklyReport(context.Background(), "d1", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.GrossEarnings < 800 || report.GrossEarnings >= 1500 {
		t.Errorf("gross %v out of range", report.GrossEarnings)
	}
	if want := report.GrossEarnings * 0.75; report.NetEarnings < want-0.01 || report.NetEarnings > want+0.01 {
		t.Errorf("net %v, want ~%v", report.NetEarnings, want)
	}
	if report.Trips < 40 || report.Trips >= 80 {
		t.Errorf("trips %d out of range", report.Trips)
	}
	if report.HoursOnline < 25 || report.HoursOnline >= 50 {
		t.Errorf("hours %d out of range", report.HoursOnline)
	}
	if report.Platform != "uber" {
		t.Errorf("platform = %q", report.Platform)
	}
	if report.WeekStarting.Weekday() != time.Monday {
		t.Errorf("week starts on %s, want Monday", report.WeekStarting.Weekday())
	}
}

func TestGetWeeklyReport_WeekStartIsPrecedingMonday(t *testing.T) {
	t.Parallel()

	svc, driverRepo, _ := newEarningsFixture()
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	// A Sunday evening belongs to the week that began six days earlier.
	sunday := time.Date(2025, 3, 9, 22, 15, 0, 0, time.Local)
	report, err := svc.GetWeeklyReport(context.Background(), "d1", sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.Local)
	if !report.WeekStarting.Equal(want) {
		t.Errorf("week starting = %v, want %v", report.WeekStarting, want)
	}

	// A Monday maps onto itself.
	monday := time.Date(2025, 3, 3, 9, 0, 0, 0, time.Local)
	report, err = svc.GetWeeklyReport(context.Background(), "d1", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.WeekStarting.Equal(want) {
		t.Errorf("week starting = %v, want %v", report.WeekStarting, want)
	}
}

func TestGetWeeklyReport_SecondCallServedFromCache(t *testing.T) {
	t.Parallel()

	svc, driverRepo, cache := newEarningsFixture()
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))

	at := time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local)
	first, err := svc.GetWeeklyReport(context.Background(), "d1", at)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if cache.SetCallCount != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.SetCallCount)
	}

	second, err := svc.GetWeeklyReport(context.Background(), "d1", at)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	// The mock provider is random, so identical figures mean the cache
	// answered.
	if second.GrossEarnings != first.GrossEarnings || second.Trips != first.Trips {
		t.Error("second call was not served from cache")
	}
	if cache.SetCallCount != 1 {
		t.Errorf("expected no further cache writes, got %d", cache.SetCallCount)
	}
}

func TestGetWeeklyReport_UnknownDriver(t *testing.T) {
	t.Parallel()

	svc, _, cache := newEarningsFixture()

	_, err := svc.GetWeeklyReport(context.Background(), "nobody", time.Time{})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if cache.GetCallCount != 0 {
		t.Error("cache must not be consulted for unknown drivers")
	}
}

func TestGetWeeklyReport_NilCacheHitsProviderEveryTime(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(newTestDriver("d1", domain.DriverStatusActive))
	svc := service.NewEarningsService(driverRepo, service.NewMockEarningsProvider(), nil, zap.NewNop())

	if _, err := svc.GetWeeklyReport(context.Background(), "d1", time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
