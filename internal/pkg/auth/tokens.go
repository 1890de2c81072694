package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// Lifetimes of the one-time credentials sent by email.
const (
	OTPLength       = 6
	OTPValidity     = 10 * time.Minute
	ResetTokenBytes = 32
	ResetValidity   = 15 * time.Minute
)

// GenerateOTP generates a random numeric one-time code of OTPLength digits.
func GenerateOTP() (string, error) {
	digits := make([]byte, OTPLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate OTP digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// GenerateResetToken generates a random password reset token. The raw token
// goes out by email; only its hash is persisted.
func GenerateResetToken() (string, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashResetToken returns the hex-encoded SHA-256 digest of a reset token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
