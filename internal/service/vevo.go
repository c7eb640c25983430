package service

import (
	"context"
	"strings"

	"fleetsync/internal/domain"
)

// VevoChecker verifies a driver's work authorization against the
// government VEVO service.
type VevoChecker interface {
	Check(ctx context.Context, passportNo string) (domain.VevoStatus, error)
}

// MockVevoClient is a deterministic stand-in for the real VEVO API:
// a passport number ending in "0000" is DENIED, anything else is
// APPROVED. Test fixtures depend on this exact rule.
type MockVevoClient struct{}

// NewMockVevoClient creates a new mock VEVO client.
func NewMockVevoClient() *MockVevoClient {
	return &MockVevoClient{}
}

// Check implements VevoChecker.
func (c *MockVevoClient) Check(ctx context.Context, passportNo string) (domain.VevoStatus, error) {
	if strings.HasSuffix(passportNo, "0000") {
		return domain.VevoStatusDenied, nil
	}
	return domain.VevoStatusApproved, nil
}
