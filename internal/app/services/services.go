package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/app/repositories"
	"github.com/jiitreviews/backend/internal/config"
	"github.com/jiitreviews/backend/internal/pkg/auth"
	"github.com/jiitreviews/backend/internal/pkg/email"
)

// IAuthService defines the authentication business operations
type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// ISubjectService defines subject listing and review operations
type ISubjectService interface {
	ListSubjects(ctx context.Context) ([]dto.SubjectListItem, error)
	GetSubject(ctx context.Context, id int64) (*dto.SubjectDetail, error)
	ListReviews(ctx context.Context, subjectID, userID int64, userCampus string) (*dto.SubjectReviewListResponse, error)
	AddReview(ctx context.Context, subjectID, userID int64, userCampus string, req *dto.AddSubjectReviewRequest) (*dto.SubjectReviewResponse, error)
	DeleteReview(ctx context.Context, subjectID, reviewID, userID int64) error
}

// ITeacherService defines teacher listing and review operations
type ITeacherService interface {
	ListTeachers(ctx context.Context) ([]dto.TeacherListItem, error)
	GetTeacher(ctx context.Context, id int64) (*dto.TeacherDetail, error)
	ListReviews(ctx context.Context, teacherID int64) (*dto.TeacherReviewListResponse, error)
	AddReview(ctx context.Context, teacherID, userID int64, req *dto.AddTeacherReviewRequest) (*dto.TeacherReviewResponse, error)
	DeleteReview(ctx context.Context, teacherID, reviewID, userID int64) error
}

// Services holds all the service instances
type Services struct {
	AuthService    IAuthService
	SubjectService ISubjectService
	TeacherService ITeacherService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository, jwtService, emailService, cfg, logger),
		SubjectService: NewSubjectService(
			repos.SubjectRepository, repos.SubjectReviewRepository, logger),
		TeacherService: NewTeacherService(
			repos.TeacherRepository, repos.TeacherReviewRepository, logger),
	}
}
