package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
	"github.com/jiitreviews/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the HTTP error taxonomy.
// Controllers call this for every error coming out of a service.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 400 - invalid input
	case errors.Is(err, apperrors.ErrInvalidOTP):
		respondError(c, err, http.StatusBadRequest, dto.ErrorCodeInvalidOTP, "Invalid or expired OTP")
	case errors.Is(err, apperrors.ErrInvalidResetToken):
		respondError(c, err, http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired reset token")
	case errors.Is(err, apperrors.ErrAlreadyVerified):
		respondError(c, err, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Email already verified")
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respondError(c, err, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, err.Error())
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, err, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, err.Error())
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, err, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	// 401 - not authenticated
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, err, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, err, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, err, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// 403 - authenticated but not allowed
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		respondError(c, err, http.StatusForbidden, dto.ErrorCodeEmailNotVerified, "Please verify your email first")
	case errors.Is(err, apperrors.ErrCampusNotAllowed):
		respondError(c, err, http.StatusForbidden, dto.ErrorCodeForbidden, "Subject is not available for your campus")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, err, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// 404 - missing resources
	case errors.Is(err, apperrors.ErrSubjectNotFound):
		respondError(c, err, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Subject not found")
	case errors.Is(err, apperrors.ErrTeacherNotFound):
		respondError(c, err, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Teacher not found")
	case errors.Is(err, apperrors.ErrReviewNotFound):
		respondError(c, err, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Review not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, err, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, err, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// 409 - conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, err, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrReviewAlreadyExists):
		respondError(c, err, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "You have already reviewed this")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, err, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")

	// 500 - everything else
	case errors.Is(err, apperrors.ErrEmailSendFailed):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Email dispatch failed")
		respondError(c, err, http.StatusInternalServerError, dto.ErrorCodeExternalServiceError, "Failed to send email")
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respondError(c, err, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}
}

// respondError writes the error envelope. Services may wrap a sentinel in
// apperrors.CustomError to replace the canned message with a contextual one.
func respondError(c *gin.Context, err error, status int, code dto.ErrorCode, message string) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
