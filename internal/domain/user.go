package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a domain user object
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Name             string
	Role             string
	ResetToken       string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAdmin reports whether the user may use the admin routes.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	ClearAllResetTokens(ctx context.Context) (int64, error)
	UpdateRole(ctx context.Context, userID, role string) error
}
