package handler_test

import (
	"context"
	"encoding/json"
	"testing"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(svc *MockAuthService) *fiber.App {
	h := handler.NewAuthHandler(svc)
	app := newTestApp()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	app.Get("/api/auth/me", asUser(testUserID), h.Me)
	app.Post("/api/auth/forgot-password", h.ForgotPassword)
	app.Post("/api/auth/reset-password", h.ResetPassword)
	app.Post("/api/auth/reset-auth", h.ResetAuth)
	return app
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &MockAuthService{
		RegisterFunc: func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
			if req.Email == "taken@example.com" {
				return nil, domain.NewEmailInUseError()
			}
			return &dto.AuthResponse{Token: "jwt", User: dto.UserResponse{ID: "u1", Email: req.Email, Role: domain.RoleUser}}, nil
		},
	}
	app := newAuthApp(svc)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", dto.RegisterRequest{Email: "new@example.com", Password: "secret123"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "jwt", got.Token)
	assert.Equal(t, "new@example.com", got.User.Email)

	resp, body = doJSON(t, app, "POST", "/api/auth/register", dto.RegisterRequest{Email: "taken@example.com", Password: "secret123"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "Email already in use")
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &MockAuthService{
		LoginFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
			return nil, domain.NewInvalidCredentialsError()
		},
	}
	app := newAuthApp(svc)

	resp, body := doJSON(t, app, "POST", "/api/auth/login", dto.LoginRequest{Email: "a@b.co", Password: "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid email or password")
}

func TestAuthHandler_Me(t *testing.T) {
	svc := &MockAuthService{
		MeFunc: func(ctx context.Context, userID string) (*dto.MeResponse, error) {
			assert.Equal(t, testUserID, userID)
			return &dto.MeResponse{User: dto.UserResponse{ID: userID, Role: domain.RoleUser}}, nil
		},
	}
	resp, body := doJSON(t, newAuthApp(svc), "GET", "/api/auth/me", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"user":{"id":"user-1","email":"","role":"user"}}`, string(body))
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	svc := &MockAuthService{
		ForgotPasswordFunc: func(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
			return &dto.ForgotPasswordResponse{Message: "If the email exists, a password reset link has been sent."}, nil
		},
		ResetPasswordFunc: func(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
			if req.Token != "good" {
				return nil, domain.NewInvalidResetTokenError()
			}
			return &dto.MessageResponse{Message: "Password has been reset successfully"}, nil
		},
		ResetAuthFunc: func(ctx context.Context) (*dto.ResetAuthResponse, error) {
			return &dto.ResetAuthResponse{Message: "Authentication data reset successfully", Timestamp: "2024-06-01T12:00:00Z"}, nil
		},
	}
	app := newAuthApp(svc)

	resp, body := doJSON(t, app, "POST", "/api/auth/forgot-password", dto.ForgotPasswordRequest{Email: "a@b.co"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"If the email exists, a password reset link has been sent."}`, string(body))

	resp, _ = doJSON(t, app, "POST", "/api/auth/reset-password", dto.ResetPasswordRequest{Token: "good", Password: "newpassword"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/api/auth/reset-password", dto.ResetPasswordRequest{Token: "stale", Password: "newpassword"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_RESET_TOKEN")

	resp, body = doJSON(t, app, "POST", "/api/auth/reset-auth", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "2024-06-01T12:00:00Z")
}
