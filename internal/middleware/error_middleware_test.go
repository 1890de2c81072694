package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"invalid OTP", apperrors.ErrInvalidOTP, http.StatusBadRequest, dto.ErrorCodeInvalidOTP},
		{"invalid reset token", apperrors.ErrInvalidResetToken, http.StatusBadRequest, dto.ErrorCodeInvalidToken},
		{"already verified", apperrors.ErrAlreadyVerified, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid email", fmt.Errorf("%w: wrong domain", apperrors.ErrInvalidEmail), http.StatusBadRequest, dto.ErrorCodeInvalidEmail},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"email not verified", apperrors.ErrEmailNotVerified, http.StatusForbidden, dto.ErrorCodeEmailNotVerified},
		{"campus gate", apperrors.ErrCampusNotAllowed, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"subject not found", apperrors.ErrSubjectNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"teacher not found", apperrors.ErrTeacherNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"review not found", apperrors.ErrReviewNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate review", apperrors.ErrReviewAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"email send failure", apperrors.ErrEmailSendFailed, http.StatusInternalServerError, dto.ErrorCodeExternalServiceError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if resp.Success {
				t.Error("success = true on an error response")
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %v, want %v", resp.Error, tt.wantCode)
			}
		})
	}
}

// A CustomError keeps the wrapped sentinel's status mapping but replaces
// the canned message with its own.
func TestHandleAPIErrorCustomMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    dto.ErrorCode
		wantMessage string
	}{
		{
			name:        "forbidden with context",
			err:         apperrors.NewForbiddenError("Only the author can delete a review"),
			wantStatus:  http.StatusForbidden,
			wantCode:    dto.ErrorCodeForbidden,
			wantMessage: "Only the author can delete a review",
		},
		{
			name:        "validation with context",
			err:         apperrors.NewCustomError(apperrors.ErrValidationFailed, "Ratings must be between 1 and 5"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeValidationFailed,
			wantMessage: "Ratings must be between 1 and 5",
		},
		{
			name:        "bad request with context",
			err:         apperrors.NewBadRequestError("Campus must be 62 or 128"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeValidationFailed,
			wantMessage: "Campus must be 62 or 128",
		},
		{
			name:        "conflict with context",
			err:         apperrors.NewConflictError("Subject already exists"),
			wantStatus:  http.StatusConflict,
			wantCode:    dto.ErrorCodeResourceAlreadyExists,
			wantMessage: "Subject already exists",
		},
		{
			name:        "not found with context",
			err:         apperrors.NewResourceNotFoundError("Route not found"),
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrorCodeResourceNotFound,
			wantMessage: "Route not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("error detail = %v, want code %v", resp.Error, tt.wantCode)
			}
			if resp.Error.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Error.Message, tt.wantMessage)
			}
		})
	}
}
