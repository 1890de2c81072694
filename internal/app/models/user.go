package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email      string    `json:"email" db:"email" example:"foo@mail.jiit.ac.in"`           // Institution email address
	Password   string    `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	Campus     Campus    `json:"campus" db:"campus" example:"62"`                          // Campus the user belongs to
	IsVerified bool      `json:"isVerified" db:"is_verified" example:"true"`               // Whether the email has been verified
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated

	// One-time email verification code. Set on registration, cleared once
	// the account is verified or the code is abandoned.
	OTP       *string    `json:"-" db:"otp"`
	OTPExpiry *time.Time `json:"-" db:"otp_expiry"`

	// Password reset state. Only the SHA-256 hash of the emailed token is
	// stored; both fields are cleared after a successful reset.
	ResetPasswordToken  *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpire *time.Time `json:"-" db:"reset_password_expire"`
}
