package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/app/models/dto"
	"github.com/eduflow/eduflow/internal/app/repositories"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/eduflow/eduflow/internal/pkg/auth"
	"github.com/eduflow/eduflow/internal/pkg/email"
	"github.com/rs/zerolog"
)

// resetCodeTTL is how long an emailed password reset code stays valid
const resetCodeTTL = 10 * time.Minute

// AuthService handles authentication operations
type AuthService struct {
	userRepo      repositories.UserRepository
	resetCodeRepo repositories.PasswordResetCodeRepository
	jwtService    *auth.JWTService
	emailService  email.Service
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	resetCodeRepo repositories.PasswordResetCodeRepository,
	jwtService *auth.JWTService,
	emailService email.Service,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		resetCodeRepo: resetCodeRepo,
		jwtService:    jwtService,
		emailService:  emailService,
		logger:        logger,
	}
}

// Register creates a new account and returns an access token.
// Admin accounts cannot be self-registered; they are seeded or created by an
// existing admin.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if !req.Role.Valid() || req.Role == models.RoleAdmin {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "role must be one of student, professor, hod")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   passwordHash,
		Role:       req.Role,
		Department: req.Department,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	s.logger.Info().
		Int64("userID", id).
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("User registered")

	return s.generateTokenResponse(user)
}

// Login authenticates credentials and returns an access token.
// An unknown email and a wrong password are reported as distinct errors.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("role", string(user.Role)).
		Msg("User logged in")

	return s.generateTokenResponse(user)
}

// ForgotPassword generates a reset code, stores it with an expiry and emails
// it to the account owner. A repeat request overwrites the previous code.
// Email delivery failures are logged but do not fail the request.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	expiresAt := time.Now().Add(resetCodeTTL)
	if err := s.resetCodeRepo.Upsert(ctx, user.Email, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	msg := email.NewPasswordResetMessage(user.Email, user.FullName, code)
	if err := s.emailService.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
	}

	s.logger.Info().Str("email", user.Email).Msg("Password reset code issued")
	return nil
}

// VerifyOTP validates a reset code and, when it matches, sets the new
// password and consumes the code in a single transaction. A mismatched code
// leaves the stored record valid; an expired record is deleted on detection.
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error {
	if req.Password != req.ConfirmPassword {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "passwords do not match")
	}

	record, err := s.resetCodeRepo.Get(ctx, req.Email)
	if err != nil {
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.resetCodeRepo.Delete(ctx, req.Email); err != nil {
			s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to delete expired reset code")
		}
		return apperrors.ErrResetCodeExpired
	}

	if record.Code != req.OTP {
		s.logger.Warn().Str("email", req.Email).Msg("Reset code mismatch")
		return apperrors.ErrResetCodeMismatch
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.resetCodeRepo.ConsumeWithPasswordUpdate(ctx, req.Email, passwordHash); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info().Str("email", req.Email).Msg("Password reset completed")
	return nil
}

// generateTokenResponse builds the token payload returned by Register and Login
func (s *AuthService) generateTokenResponse(user *models.User) (*dto.TokenResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Role:        string(user.Role),
	}, nil
}
