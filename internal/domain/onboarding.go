package domain

import "time"

// OnboardingToken is a single-use magic-link token mailed to a
// prospective driver.
type OnboardingToken struct {
	Token     string
	Email     string
	ExpiresAt time.Time
	Used      bool
	UsedAt    time.Time // zero until consumed
	CreatedAt time.Time
}

// Expired reports whether the token had expired at the given instant.
func (t *OnboardingToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
