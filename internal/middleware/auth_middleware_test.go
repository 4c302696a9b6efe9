package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *mockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

type mockUserRepository struct {
	GetUserByIDFunc func(ctx context.Context, userID string) (*domain.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	panic("not implemented in mock")
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.GetUserByIDFunc(ctx, userID)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	panic("not implemented in mock")
}

func (m *mockUserRepository) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	panic("not implemented in mock")
}

func (m *mockUserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	panic("not implemented in mock")
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	panic("not implemented in mock")
}

func (m *mockUserRepository) ClearAllResetTokens(ctx context.Context) (int64, error) {
	panic("not implemented in mock")
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	panic("not implemented in mock")
}

func decodeError(t *testing.T, body []byte) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestProtected(t *testing.T) {
	validator := &mockTokenValidator{
		ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			switch tokenString {
			case "valid_access_token":
				return &dto.AuthClaims{UserID: "user123", Role: domain.RoleUser, TokenType: "access"}, nil
			case "valid_reset_token":
				return &dto.AuthClaims{UserID: "user123", TokenType: "reset"}, nil
			default:
				return nil, errors.New("invalid token")
			}
		},
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedCode   string
		expectedUserID interface{}
	}{
		{name: "No Auth Header", expectedStatus: fiber.StatusUnauthorized, expectedCode: "MISSING_AUTH_HEADER"},
		{name: "Not Bearer", authHeader: "Basic abc", expectedStatus: fiber.StatusUnauthorized, expectedCode: "INVALID_AUTH_SCHEME"},
		{name: "Bearer No Token", authHeader: "Bearer  ", expectedStatus: fiber.StatusUnauthorized, expectedCode: "EMPTY_TOKEN"},
		{name: "Invalid Token", authHeader: "Bearer bogus", expectedStatus: fiber.StatusUnauthorized, expectedCode: "INVALID_TOKEN"},
		{name: "Wrong Token Type", authHeader: "Bearer valid_reset_token", expectedStatus: fiber.StatusForbidden, expectedCode: "INVALID_TOKEN_TYPE"},
		{name: "Valid Access Token", authHeader: "Bearer valid_access_token", expectedStatus: fiber.StatusOK, expectedUserID: "user123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			var userIDLocal, roleLocal interface{}
			app.Get("/protected", middleware.Protected(validator), func(c *fiber.Ctx) error {
				userIDLocal = c.Locals(middleware.UserIDKey)
				roleLocal = c.Locals(middleware.RoleKey)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedUserID, userIDLocal)

			if tc.expectedCode != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tc.expectedCode, decodeError(t, body).Code)
			} else {
				assert.Equal(t, domain.RoleUser, roleLocal)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	users := &mockUserRepository{
		GetUserByIDFunc: func(ctx context.Context, userID string) (*domain.User, error) {
			switch userID {
			case "admin":
				return &domain.User{ID: "admin", Role: domain.RoleAdmin}, nil
			case "user":
				return &domain.User{ID: "user", Role: domain.RoleUser}, nil
			case "broken":
				return nil, errors.New("db down")
			default:
				return nil, nil
			}
		},
	}

	tests := []struct {
		userID         string
		expectedStatus int
	}{
		{userID: "admin", expectedStatus: fiber.StatusOK},
		{userID: "user", expectedStatus: fiber.StatusForbidden},
		{userID: "deleted", expectedStatus: fiber.StatusForbidden},
		{userID: "broken", expectedStatus: fiber.StatusInternalServerError},
		{userID: "", expectedStatus: fiber.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run("user "+tc.userID, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/admin",
				func(c *fiber.Ctx) error {
					if tc.userID != "" {
						c.Locals(middleware.UserIDKey, tc.userID)
					}
					return c.Next()
				},
				middleware.RequireAdmin(users),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)

			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}
