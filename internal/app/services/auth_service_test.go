package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/config"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
	"github.com/jiitreviews/backend/internal/pkg/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeEmailService) {
	t.Helper()

	userRepo := newFakeUserRepo()
	emailSvc := &fakeEmailService{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    168 * time.Hour,
		TokenIssuer: "test",
	})
	cfg := &config.Config{}
	cfg.App.ResetURLBase = "http://localhost:5173/reset-password"

	svc := NewAuthService(userRepo, jwtService, emailSvc, cfg, zerolog.Nop())
	return svc, userRepo, emailSvc
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr error
	}{
		{
			name:    "non-institution email",
			req:     dto.RegisterRequest{Email: "user@gmail.com", Password: "password1", Campus: "62"},
			wantErr: apperrors.ErrInvalidEmail,
		},
		{
			name:    "password too short",
			req:     dto.RegisterRequest{Email: "user@mail.jiit.ac.in", Password: "ab1", Campus: "62"},
			wantErr: apperrors.ErrInvalidPassword,
		},
		{
			name:    "password without digit",
			req:     dto.RegisterRequest{Email: "user@mail.jiit.ac.in", Password: "passwords", Campus: "62"},
			wantErr: apperrors.ErrInvalidPassword,
		},
		{
			name:    "invalid campus",
			req:     dto.RegisterRequest{Email: "user@mail.jiit.ac.in", Password: "password1", Campus: "both"},
			wantErr: apperrors.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthService(t)
			_, err := svc.Register(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	req := &dto.RegisterRequest{Email: "dup@mail.jiit.ac.in", Password: "password1", Campus: "62"}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("second Register() error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestRegisterEmailFailure(t *testing.T) {
	svc, _, emailSvc := newTestAuthService(t)
	emailSvc.failSend = true

	req := &dto.RegisterRequest{Email: "user@mail.jiit.ac.in", Password: "password1", Campus: "62"}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrEmailSendFailed) {
		t.Fatalf("Register() error = %v, want ErrEmailSendFailed", err)
	}
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	svc, userRepo, emailSvc := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "student@mail.jiit.ac.in", Password: "password1", Campus: "128"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.Email != "student@mail.jiit.ac.in" {
		t.Errorf("Register() email = %q", resp.Email)
	}
	if len(emailSvc.otpSent) != 1 {
		t.Fatalf("expected one OTP email, got %d", len(emailSvc.otpSent))
	}

	login := &dto.LoginRequest{Email: "student@mail.jiit.ac.in", Password: "password1"}

	// Login before verification is forbidden
	if _, err := svc.Login(ctx, login); !errors.Is(err, apperrors.ErrEmailNotVerified) {
		t.Fatalf("Login() before verify error = %v, want ErrEmailNotVerified", err)
	}

	// Wrong OTP
	err = svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "student@mail.jiit.ac.in", OTP: "000000"})
	if !errors.Is(err, apperrors.ErrInvalidOTP) && emailSvc.otpSent[0] != "000000" {
		t.Fatalf("VerifyOTP() with wrong code error = %v, want ErrInvalidOTP", err)
	}

	// Correct OTP
	err = svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "student@mail.jiit.ac.in", OTP: emailSvc.otpSent[0]})
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}

	// Verifying twice is rejected
	err = svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "student@mail.jiit.ac.in", OTP: emailSvc.otpSent[0]})
	if !errors.Is(err, apperrors.ErrAlreadyVerified) {
		t.Fatalf("second VerifyOTP() error = %v, want ErrAlreadyVerified", err)
	}

	tokenResp, err := svc.Login(ctx, login)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if tokenResp.Token == "" || tokenResp.TokenType != "Bearer" {
		t.Errorf("Login() response = %+v", tokenResp)
	}

	user, err := userRepo.GetByEmail(ctx, "student@mail.jiit.ac.in")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if !user.IsVerified || user.OTP != nil {
		t.Errorf("verified user state = verified %v, otp %v", user.IsVerified, user.OTP)
	}

	profile, err := svc.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.Campus != "128" || !profile.IsVerified {
		t.Errorf("GetProfile() = %+v", profile)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, userRepo, emailSvc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "late@mail.jiit.ac.in", Password: "password1", Campus: "62"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, _ := userRepo.GetByEmail(ctx, "late@mail.jiit.ac.in")
	userRepo.expireOTP(user.ID)

	err := svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "late@mail.jiit.ac.in", OTP: emailSvc.otpSent[0]})
	if !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Fatalf("VerifyOTP() with expired code error = %v, want ErrInvalidOTP", err)
	}
}

func TestLoginGenericErrors(t *testing.T) {
	svc, _, emailSvc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "known@mail.jiit.ac.in", Password: "password1", Campus: "62"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{
		Email: "known@mail.jiit.ac.in", OTP: emailSvc.otpSent[0]}); err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}

	// Unknown email and wrong password collapse into the same error
	_, errUnknown := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@mail.jiit.ac.in", Password: "password1"})
	_, errWrongPw := svc.Login(ctx, &dto.LoginRequest{Email: "known@mail.jiit.ac.in", Password: "password2"})

	if !errors.Is(errUnknown, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPw, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrongPw)
	}
}

func registerAndVerify(t *testing.T, svc *AuthService, emailSvc *fakeEmailService, emailAddr string) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: emailAddr, Password: "password1", Campus: "62"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	otp := emailSvc.otpSent[len(emailSvc.otpSent)-1]
	if err := svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: emailAddr, OTP: otp}); err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, userRepo, emailSvc := newTestAuthService(t)

	if err := svc.ForgotPassword(context.Background(), "ghost@mail.jiit.ac.in"); err != nil {
		t.Fatalf("ForgotPassword() for unknown email error = %v, want nil", err)
	}
	if len(emailSvc.resetsSent) != 0 {
		t.Errorf("expected no reset email for unknown address")
	}
	if len(userRepo.users) != 0 {
		t.Errorf("expected no user rows to be written")
	}
}

func TestForgotPasswordEmailFailureRollsBack(t *testing.T) {
	svc, userRepo, emailSvc := newTestAuthService(t)
	ctx := context.Background()

	registerAndVerify(t, svc, emailSvc, "reset@mail.jiit.ac.in")

	emailSvc.failSend = true
	err := svc.ForgotPassword(ctx, "reset@mail.jiit.ac.in")
	if !errors.Is(err, apperrors.ErrEmailSendFailed) {
		t.Fatalf("ForgotPassword() error = %v, want ErrEmailSendFailed", err)
	}

	user, _ := userRepo.GetByEmail(ctx, "reset@mail.jiit.ac.in")
	if user.ResetPasswordToken != nil || user.ResetPasswordExpire != nil {
		t.Errorf("reset token fields not cleared after email failure")
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, userRepo, emailSvc := newTestAuthService(t)
	ctx := context.Background()

	registerAndVerify(t, svc, emailSvc, "flow@mail.jiit.ac.in")

	if err := svc.ForgotPassword(ctx, "flow@mail.jiit.ac.in"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	if len(emailSvc.resetsSent) != 1 {
		t.Fatalf("expected one reset email, got %d", len(emailSvc.resetsSent))
	}

	// The raw token is the last URL path segment
	resetURL := emailSvc.resetsSent[0]
	token := resetURL[len("http://localhost:5173/reset-password/"):]

	user, _ := userRepo.GetByEmail(ctx, "flow@mail.jiit.ac.in")
	if user.ResetPasswordToken == nil {
		t.Fatal("reset token hash not stored")
	}
	if *user.ResetPasswordToken == token {
		t.Fatal("raw reset token stored instead of its hash")
	}

	// Garbage token is rejected
	if err := svc.ResetPassword(ctx, "not-the-token", "newpassword1"); !errors.Is(err, apperrors.ErrInvalidResetToken) {
		t.Fatalf("ResetPassword() with bad token error = %v, want ErrInvalidResetToken", err)
	}

	// Weak replacement password is rejected before touching the token
	if err := svc.ResetPassword(ctx, token, "short"); !errors.Is(err, apperrors.ErrInvalidPassword) {
		t.Fatalf("ResetPassword() with weak password error = %v, want ErrInvalidPassword", err)
	}

	if err := svc.ResetPassword(ctx, token, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	user, _ = userRepo.GetByEmail(ctx, "flow@mail.jiit.ac.in")
	if user.ResetPasswordToken != nil || user.ResetPasswordExpire != nil {
		t.Errorf("reset fields not cleared after successful reset")
	}

	// Old password stops working, new one logs in
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "flow@mail.jiit.ac.in", Password: "password1"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login() with old password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "flow@mail.jiit.ac.in", Password: "newpassword1"}); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, userRepo, emailSvc := newTestAuthService(t)
	ctx := context.Background()

	registerAndVerify(t, svc, emailSvc, "expired@mail.jiit.ac.in")

	if err := svc.ForgotPassword(ctx, "expired@mail.jiit.ac.in"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	token := emailSvc.resetsSent[0][len("http://localhost:5173/reset-password/"):]

	// Force the stored expiry into the past
	user, _ := userRepo.GetByEmail(ctx, "expired@mail.jiit.ac.in")
	if err := userRepo.SetResetToken(ctx, user.ID, *user.ResetPasswordToken, time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("SetResetToken() error = %v", err)
	}

	if err := svc.ResetPassword(ctx, token, "newpassword1"); !errors.Is(err, apperrors.ErrInvalidResetToken) {
		t.Fatalf("ResetPassword() with expired token error = %v, want ErrInvalidResetToken", err)
	}
}
