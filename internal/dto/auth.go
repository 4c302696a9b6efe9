package dto

import "github.com/golang-jwt/jwt/v5"

// RegisterRequest is the body of POST /api/auth/register.
// @Description Account registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7"`
	Name     string `json:"name" validate:"omitempty,min=1"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// AuthResponse is returned by register and login.
// @Description Access token and the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse reports how the reset link was delivered.
// Only the fields relevant to the delivery outcome are set.
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	EmailSent  bool   `json:"emailSent,omitempty"`
	ResetLink  string `json:"resetLink,omitempty"`
	ResetToken string `json:"resetToken,omitempty"`
	EmailError string `json:"emailError,omitempty"`
	Note       string `json:"note,omitempty"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=7"`
}

type ResetAuthResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// DictionaryResponse is the body of GET /api/auth/dictionary/:word.
type DictionaryResponse struct {
	Word          string `json:"word"`
	Definition    string `json:"definition"`
	PartOfSpeech  string `json:"partOfSpeech"`
	Pronunciation string `json:"pronunciation"`
	Synonyms      string `json:"synonyms"`
	Source        string `json:"source"`
}
