package middleware

import (
	"context"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	RoleKey             = "role"

	accessTokenType = "access"
)

// TokenValidator is the part of the auth service the bearer middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// Protected rejects requests without a valid access token and stores the caller's id and role
// in the context locals.
func Protected(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Access token required")
		}
		if strings.TrimSpace(authHeader) == strings.TrimSpace(BearerSchema) {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := tokens.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}
		if claims.TokenType != accessTokenType {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: "Invalid token type: expected access, got " + claims.TokenType,
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RoleKey, claims.Role)
		return c.Next()
	}
}

// RequireAdmin must run after Protected. The role is re-read from the store so a demoted
// admin loses access before their token expires.
func RequireAdmin(users domain.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Access token required")
		}

		user, err := users.GetUserByID(c.UserContext(), userID)
		if err != nil {
			return domain.NewInternalError("Failed to verify admin access", err)
		}
		if !user.IsAdmin() {
			logger.Get().Warn("Admin access denied", zap.String("userID", userID), zap.String("path", c.Path()))
			return domain.NewAdminRequiredError()
		}

		c.Locals(RoleKey, user.Role)
		return c.Next()
	}
}

// UserID returns the authenticated user id, or "" on unauthenticated routes.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(RoleKey).(string)
	return role
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
