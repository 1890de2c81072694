package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/app/repositories"
	"github.com/jiitreviews/backend/internal/config"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
	"github.com/jiitreviews/backend/internal/pkg/auth"
	"github.com/jiitreviews/backend/internal/pkg/email"
	"github.com/jiitreviews/backend/internal/pkg/validation"
)

// AuthService handles registration, verification and session operations
type AuthService struct {
	userRepo     repositories.IUserRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	resetURLBase string
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	cfg *config.Config,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
		resetURLBase: cfg.App.ResetURLBase,
		logger:       logger,
	}
}

// Register creates an unverified account and emails its verification code.
// Only institution addresses may register; the OTP dispatch is blocking and
// its failure fails the registration.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	if !validation.IsInstitutionEmail(emailAddr) {
		return nil, fmt.Errorf("%w: only %s addresses can register",
			apperrors.ErrInvalidEmail, validation.EmailDomainSuffix)
	}

	if !validation.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters with a letter and a digit",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}

	if !validation.IsValidCampus(req.Campus) {
		return nil, apperrors.NewBadRequestError("Campus must be 62 or 128")
	}

	exists, err := s.userRepo.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("error generating OTP: %w", err)
	}
	otpExpiry := time.Now().Add(auth.OTPValidity)

	user := &models.User{
		Email:      emailAddr,
		Password:   hashedPassword,
		Campus:     models.Campus(req.Campus),
		IsVerified: false,
		OTP:        &otp,
		OTPExpiry:  &otpExpiry,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	if err := s.emailService.SendOTPEmail(emailAddr, otp); err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Msg("Failed to send OTP email")
		return nil, apperrors.ErrEmailSendFailed
	}

	s.logger.Info().Int64("userId", userID).Str("campus", req.Campus).Msg("User registered, verification pending")

	return &dto.RegisterResponse{
		Email:   emailAddr,
		Message: "OTP sent to your email",
	}, nil
}

// VerifyOTP checks the emailed code and marks the account verified.
// Unknown email, wrong code and expired code all return the same error.
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidOTP
		}
		return fmt.Errorf("error getting user: %w", err)
	}

	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	if user.OTP == nil || user.OTPExpiry == nil {
		return apperrors.ErrInvalidOTP
	}
	if *user.OTP != req.OTP || !user.OTPExpiry.After(time.Now()) {
		return apperrors.ErrInvalidOTP
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("error marking user verified: %w", err)
	}

	s.logger.Info().Int64("userId", user.ID).Msg("Email verified")
	return nil
}

// Login authenticates a verified user and issues a session token.
// Unknown email and wrong password share one generic error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, string(user.Campus))
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
	}, nil
}

// GetProfile retrieves the authenticated user's own profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}

	return &dto.UserProfile{
		ID:         user.ID,
		Email:      user.Email,
		Campus:     string(user.Campus),
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}, nil
}

// ForgotPassword starts a password reset. It succeeds silently for unknown
// addresses so the endpoint cannot be used to enumerate accounts. The stored
// token hash is rolled back when the reset email cannot be sent.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error getting user: %w", err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}
	tokenHash := auth.HashResetToken(token)
	expiry := time.Now().Add(auth.ResetValidity)

	if err := s.userRepo.SetResetToken(ctx, user.ID, tokenHash, expiry); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/%s", strings.TrimRight(s.resetURLBase, "/"), token)
	if err := s.emailService.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		s.logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to send password reset email")
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.Error().Err(clearErr).Int64("userId", user.ID).Msg("Failed to clear reset token after email failure")
		}
		return apperrors.ErrEmailSendFailed
	}

	s.logger.Info().Int64("userId", user.ID).Msg("Password reset email sent")
	return nil
}

// ResetPassword replaces the password for the account matching the emailed
// token. Unknown and expired tokens return the same error.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !validation.ValidatePassword(newPassword) {
		return fmt.Errorf("%w: password must be at least %d characters with a letter and a digit",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}

	user, err := s.userRepo.GetByResetTokenHash(ctx, auth.HashResetToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("error getting user by reset token: %w", err)
	}

	if user.ResetPasswordExpire == nil || !user.ResetPasswordExpire.After(time.Now()) {
		return apperrors.ErrInvalidResetToken
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordAndClearResetToken(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	s.logger.Info().Int64("userId", user.ID).Msg("Password reset completed")
	return nil
}
