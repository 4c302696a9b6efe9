package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	ID               string         `db:"id"`
	Email            string         `db:"email"`
	PasswordHash     string         `db:"password_hash"`
	Name             sql.NullString `db:"name"`
	Role             string         `db:"role"`
	ResetToken       sql.NullString `db:"reset_token"`
	ResetTokenExpiry sql.NullTime   `db:"reset_token_expiry"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}
