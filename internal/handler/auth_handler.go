package handler

import (
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/middleware"
	"lingo-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Account"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Email already in use"
// @Failure 429 {object} middleware.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid email or password"
// @Failure 429 {object} middleware.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me godoc
// @Summary Get the current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	resp, err := h.authService.Me(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description Unknown emails get the same generic answer. Without a mail server the link is returned in the body.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} dto.ForgotPasswordResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	resp, err := h.authService.ForgotPassword(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid or expired reset token"
// @Failure 429 {object} middleware.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	resp, err := h.authService.ResetPassword(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetAuth godoc
// @Summary Invalidate every outstanding reset token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResetAuthResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /auth/reset-auth [post]
func (h *AuthHandler) ResetAuth(c *fiber.Ctx) error {
	resp, err := h.authService.ResetAuth(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
