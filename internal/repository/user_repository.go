package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/repository/models"
	"lingo-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, name, role, reset_token, reset_token_expiry, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user. A duplicate email surfaces as domain.CodeEmailInUse.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	query := `INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :name, :role, :created_at, :updated_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUser(user)); err != nil {
		if IsUniqueViolation(err) {
			return domain.NewEmailInUseError()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

// GetUserByEmail matches the email case-insensitively.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, strings.ToLower(strings.TrimSpace(email)))
}

// GetUserByResetToken only matches tokens that have not expired at now.
func (r *sqlxUserRepository) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = $1 AND reset_token_expiry > $2`, token, now)
}

func (r *sqlxUserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	query := `UPDATE users SET reset_token = $1, reset_token_expiry = $2, updated_at = $3 WHERE id = $4`
	return r.execOne(ctx, "set reset token", query, token, expiry, time.Now().UTC(), userID)
}

// UpdatePassword stores the new hash and consumes any pending reset token.
func (r *sqlxUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL, updated_at = $2 WHERE id = $3`
	return r.execOne(ctx, "update password", query, passwordHash, time.Now().UTC(), userID)
}

func (r *sqlxUserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
	return r.execOne(ctx, "update role", query, role, time.Now().UTC(), userID)
}

// ClearAllResetTokens invalidates every outstanding reset token and returns how many were cleared.
func (r *sqlxUserRepository) ClearAllResetTokens(ctx context.Context) (int64, error) {
	query := `UPDATE users SET reset_token = NULL, reset_token_expiry = NULL WHERE reset_token IS NOT NULL`
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to clear reset tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var user models.User
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Return nil, nil for not found, services can handle this
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&user), nil
}

func (r *sqlxUserRepository) execOne(ctx context.Context, op, query string, args ...interface{}) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError()
	}
	return nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:               m.ID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		Name:             util.NullStringToString(m.Name),
		Role:             m.Role,
		ResetToken:       util.NullStringToString(m.ResetToken),
		ResetTokenExpiry: util.NullTimeToPtr(m.ResetTokenExpiry),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func fromDomainUser(d *domain.User) *models.User {
	if d == nil {
		return nil
	}
	return &models.User{
		ID:               d.ID,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		Name:             util.StringToNullString(d.Name),
		Role:             d.Role,
		ResetToken:       util.StringToNullString(d.ResetToken),
		ResetTokenExpiry: util.TimePtrToNullTime(d.ResetTokenExpiry),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
