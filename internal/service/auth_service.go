package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"lingo-quiz/internal/config"
	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess = "access"

	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
	bcryptCost      = 10

	resetEmailSubject = "Password Reset Request - English Learning App"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*dto.MeResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error)
	ResetAuth(ctx context.Context) (*dto.ResetAuthResponse, error)
	// ClearResetTokens invalidates every outstanding password reset token.
	ClearResetTokens(ctx context.Context) (int64, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	mailer    domain.Mailer
	validator *validation.Validator
	appConfig *config.Config
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService. mailer may be nil, in which case
// password reset links are returned to the caller instead of being emailed.
func NewAuthService(userRepo domain.UserRepository, mailer domain.Mailer, validator *validation.Validator, appConfig *config.Config) (AuthService, error) {
	if appConfig == nil || appConfig.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		mailer:    mailer,
		validator: validator,
		appConfig: appConfig,
		now:       time.Now,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to register user", err)
	}
	if existing != nil {
		return nil, domain.NewEmailInUseError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to register user", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Role:         domain.RoleUser,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if isDomainCode(err, domain.CodeEmailInUse) {
			return nil, err
		}
		logger.Get().Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, domain.NewInternalError("Failed to register user", err)
	}

	logger.Get().Info("New user registered", zap.String("userID", user.ID))
	return s.authResponse(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, domain.NewInternalError("Failed to log in", err)
	}
	if user == nil {
		return nil, domain.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewInvalidCredentialsError()
	}

	return s.authResponse(ctx, user)
}

func (s *authServiceImpl) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError()
	}
	return &dto.MeResponse{User: toUserResponse(user)}, nil
}

func (s *authServiceImpl) authResponse(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

// ForgotPassword issues a one hour reset token. Unknown emails get the same generic answer.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to process password reset", err)
	}
	if user == nil {
		return &dto.ForgotPasswordResponse{Message: "If the email exists, a password reset link has been sent."}, nil
	}

	token, err := newResetToken()
	if err != nil {
		return nil, domain.NewInternalError("Failed to generate reset token", err)
	}
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return nil, domain.NewInternalError("Failed to process password reset", err)
	}
	link := s.resetLink(token)

	if s.mailer == nil {
		logger.Get().Info("Password reset link generated without mailer", zap.String("userID", user.ID))
		return &dto.ForgotPasswordResponse{
			Message:    "Password reset link generated. Email service not configured.",
			ResetLink:  link,
			ResetToken: token,
			Note:       "Configure EMAIL_USER and EMAIL_PASS environment variables to enable email sending",
		}, nil
	}

	body, err := renderResetEmail(link, user.Name)
	if err == nil {
		err = s.mailer.Send(ctx, user.Email, resetEmailSubject, body)
	}
	if err != nil {
		logger.Get().Error("Failed to send password reset email", zap.String("userID", user.ID), zap.Error(err))
		return &dto.ForgotPasswordResponse{
			Message:    "Password reset link generated, but email could not be sent. Please use the link below.",
			ResetLink:  link,
			EmailError: "Email service unavailable",
		}, nil
	}

	logger.Get().Info("Password reset email sent", zap.String("userID", user.ID))
	return &dto.ForgotPasswordResponse{
		Message:   "If the email exists, a password reset link has been sent to your email address.",
		EmailSent: true,
	}, nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.userRepo.GetUserByResetToken(ctx, req.Token, s.now())
	if err != nil {
		return nil, domain.NewInternalError("Failed to reset password", err)
	}
	if user == nil {
		return nil, domain.NewInvalidResetTokenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to reset password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, domain.NewInternalError("Failed to reset password", err)
	}

	logger.Get().Info("Password reset", zap.String("userID", user.ID))
	return &dto.MessageResponse{Message: "Password has been reset successfully"}, nil
}

func (s *authServiceImpl) ResetAuth(ctx context.Context) (*dto.ResetAuthResponse, error) {
	if _, err := s.ClearResetTokens(ctx); err != nil {
		return nil, domain.NewInternalError("Failed to reset authentication data", err)
	}
	return &dto.ResetAuthResponse{
		Message:   "Authentication data reset successfully",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *authServiceImpl) ClearResetTokens(ctx context.Context) (int64, error) {
	n, err := s.userRepo.ClearAllResetTokens(ctx)
	if err != nil {
		return 0, err
	}
	logger.Get().Info("Cleared password reset tokens", zap.Int64("count", n))
	return n, nil
}

func (s *authServiceImpl) resetLink(token string) string {
	return strings.TrimRight(s.appConfig.App.FrontendURL, "/") + "/reset-password.html?token=" + token
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

var resetEmailTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password Reset Request</h2>
  <p>Hello{{if .Name}} {{.Name}}{{end}},</p>
  <p>We received a request to reset the password of your English Learning App account.
     Click the button below to choose a new password.</p>
  <p><a href="{{.Link}}" style="background: #4f46e5; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset Password</a></p>
  <p>Or copy this link into your browser:<br>{{.Link}}</p>
  <p>This link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>
</body>
</html>`))

func renderResetEmail(link, name string) (string, error) {
	var buf bytes.Buffer
	err := resetEmailTemplate.Execute(&buf, struct {
		Link string
		Name string
	}{Link: link, Name: name})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
