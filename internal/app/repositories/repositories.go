package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jiitreviews/backend/internal/app/models"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// Verification lifecycle; the OTP is written at Create time
	MarkVerified(ctx context.Context, userID int64) error

	// Password reset lifecycle; only the token hash is ever stored
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error
	ClearResetToken(ctx context.Context, userID int64) error
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	UpdatePasswordAndClearResetToken(ctx context.Context, userID int64, passwordHash string) error
}

// ISubjectRepository defines the interface for subject database operations
type ISubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// ITeacherRepository defines the interface for teacher database operations
type ITeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) (int64, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
}

// ISubjectReviewRepository defines the interface for subject review operations
type ISubjectReviewRepository interface {
	Create(ctx context.Context, review *models.SubjectReview) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SubjectReview, error)
	ListBySubjectID(ctx context.Context, subjectID int64) ([]*models.SubjectReview, error)
	ExistsForUser(ctx context.Context, subjectID, userID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ITeacherReviewRepository defines the interface for teacher review operations
type ITeacherReviewRepository interface {
	Create(ctx context.Context, review *models.TeacherReview) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.TeacherReview, error)
	ListByTeacherID(ctx context.Context, teacherID int64) ([]*models.TeacherReview, error)
	ExistsForUser(ctx context.Context, teacherID, userID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          IUserRepository
	SubjectRepository       ISubjectRepository
	TeacherRepository       ITeacherRepository
	SubjectReviewRepository ISubjectReviewRepository
	TeacherReviewRepository ITeacherReviewRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		SubjectRepository:       NewSubjectRepository(db),
		TeacherRepository:       NewTeacherRepository(db),
		SubjectReviewRepository: NewSubjectReviewRepository(db),
		TeacherReviewRepository: NewTeacherReviewRepository(db),
	}
}
