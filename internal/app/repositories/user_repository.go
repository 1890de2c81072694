package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
	"github.com/jiitreviews/backend/internal/pkg/dberrors"
)

const userColumns = `id, email, password, campus, is_verified, otp, otp_expiry,
	reset_password_token, reset_password_expire, created_at, updated_at`

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns its ID. A duplicate email is
// reported as apperrors.ErrEmailAlreadyExists regardless of whether the
// duplicate was caught by the pre-check or the unique index.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password, campus, is_verified, otp, otp_expiry)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Email, user.Password, user.Campus, user.IsVerified, user.OTP, user.OTPExpiry).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Campus, &user.IsVerified,
		&user.OTP, &user.OTPExpiry, &user.ResetPasswordToken, &user.ResetPasswordExpire,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`, email))
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}


// MarkVerified flips the account to verified and clears the OTP fields
func (r *UserRepository) MarkVerified(ctx context.Context, userID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE, otp = NULL, otp_expiry = NULL, updated_at = NOW()
		WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error marking user verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetResetToken stores the hash of a reset token and its expiry
func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $1, reset_password_expire = $2, updated_at = NOW()
		WHERE id = $3`, tokenHash, expiry, userID)
	if err != nil {
		return fmt.Errorf("error setting reset token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ClearResetToken removes any pending reset token. Used as the compensating
// step when the reset email cannot be sent.
func (r *UserRepository) ClearResetToken(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = NULL, reset_password_expire = NULL, updated_at = NOW()
		WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error clearing reset token: %w", err)
	}
	return nil
}

// GetByResetTokenHash looks a user up by the hash of a presented reset token
func (r *UserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_password_token = $1`, tokenHash))
}

// UpdatePasswordAndClearResetToken replaces the password hash and clears the
// reset token fields in one statement.
func (r *UserRepository) UpdatePasswordAndClearResetToken(ctx context.Context, userID int64, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, reset_password_token = NULL, reset_password_expire = NULL, updated_at = NOW()
		WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
