package dto

import "time"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Campus   string `json:"campus" binding:"required,oneof=62 128"`
}

// RegisterResponse confirms that the verification code was dispatched
type RegisterResponse struct {
	Email   string `json:"email" example:"foo@mail.jiit.ac.in"`
	Message string `json:"message" example:"OTP sent to your email"`
}

// VerifyOTPRequest represents an email verification request
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents the session token issued on login
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"Bearer"`
	ExpiresIn int64  `json:"expiresIn" example:"604800"`
}

// ForgotPasswordRequest represents a password reset initiation request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the replacement password; the reset token
// travels in the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UserProfile represents the authenticated user's own profile
type UserProfile struct {
	ID         int64     `json:"id" example:"1"`
	Email      string    `json:"email" example:"foo@mail.jiit.ac.in"`
	Campus     string    `json:"campus" example:"62"`
	IsVerified bool      `json:"isVerified" example:"true"`
	CreatedAt  time.Time `json:"createdAt"`
}
