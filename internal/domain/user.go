package domain

import "time"

// UserRole gates access to admin-only routes.
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleDriver UserRole = "DRIVER"
)

// User is a dashboard login account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         UserRole
	CreatedAt    time.Time
}
