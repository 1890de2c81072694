package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	stored := *user
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// expireOTP backdates the stored verification code's expiry so the expired
// path can be exercised.
func (r *fakeUserRepo) expireOTP(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok && user.OTPExpiry != nil {
		past := time.Now().Add(-time.Minute)
		user.OTPExpiry = &past
	}
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsVerified = true
	user.OTP = nil
	user.OTPExpiry = nil
	return nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID int64, tokenHash string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.ResetPasswordToken = &tokenHash
	user.ResetPasswordExpire = &expiry
	return nil
}

func (r *fakeUserRepo) ClearResetToken(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.ResetPasswordToken = nil
	user.ResetPasswordExpire = nil
	return nil
}

func (r *fakeUserRepo) GetByResetTokenHash(_ context.Context, tokenHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ResetPasswordToken != nil && *user.ResetPasswordToken == tokenHash {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePasswordAndClearResetToken(_ context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	user.ResetPasswordToken = nil
	user.ResetPasswordExpire = nil
	return nil
}

type fakeSubjectRepo struct {
	mu       sync.Mutex
	nextID   int64
	subjects map[int64]*models.Subject
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{nextID: 1, subjects: make(map[int64]*models.Subject)}
}

func (r *fakeSubjectRepo) Create(_ context.Context, subject *models.Subject) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subjects {
		if s.Name == subject.Name && s.Type == subject.Type && s.Semester == subject.Semester {
			return 0, apperrors.ErrConflict
		}
	}
	id := r.nextID
	r.nextID++
	stored := *subject
	stored.ID = id
	r.subjects[id] = &stored
	return id, nil
}

func (r *fakeSubjectRepo) GetAll(_ context.Context) ([]*models.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subjects := make([]*models.Subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		copied := *s
		subjects = append(subjects, &copied)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Semester != subjects[j].Semester {
			return subjects[i].Semester < subjects[j].Semester
		}
		return subjects[i].Name < subjects[j].Name
	})
	return subjects, nil
}

func (r *fakeSubjectRepo) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subject, ok := r.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	copied := *subject
	return &copied, nil
}

type fakeTeacherRepo struct {
	mu       sync.Mutex
	nextID   int64
	teachers map[int64]*models.Teacher
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{nextID: 1, teachers: make(map[int64]*models.Teacher)}
}

func (r *fakeTeacherRepo) Create(_ context.Context, teacher *models.Teacher) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.Name == teacher.Name && t.Department == teacher.Department {
			return 0, apperrors.ErrConflict
		}
	}
	id := r.nextID
	r.nextID++
	stored := *teacher
	stored.ID = id
	r.teachers[id] = &stored
	return id, nil
}

func (r *fakeTeacherRepo) GetAll(_ context.Context) ([]*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teachers := make([]*models.Teacher, 0, len(r.teachers))
	for _, t := range r.teachers {
		copied := *t
		teachers = append(teachers, &copied)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })
	return teachers, nil
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teacher, ok := r.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	copied := *teacher
	return &copied, nil
}

type fakeSubjectReviewRepo struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]*models.SubjectReview
}

func newFakeSubjectReviewRepo() *fakeSubjectReviewRepo {
	return &fakeSubjectReviewRepo{nextID: 1, reviews: make(map[int64]*models.SubjectReview)}
}

func (r *fakeSubjectReviewRepo) Create(_ context.Context, review *models.SubjectReview) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.SubjectID == review.SubjectID && existing.UserID == review.UserID {
			return 0, apperrors.ErrReviewAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	stored := *review
	stored.ID = id
	stored.CreatedAt = time.Now().Add(time.Duration(id) * time.Millisecond)
	r.reviews[id] = &stored
	return id, nil
}

func (r *fakeSubjectReviewRepo) GetByID(_ context.Context, id int64) (*models.SubjectReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *fakeSubjectReviewRepo) ListBySubjectID(_ context.Context, subjectID int64) ([]*models.SubjectReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reviews []*models.SubjectReview
	for _, review := range r.reviews {
		if review.SubjectID == subjectID {
			copied := *review
			reviews = append(reviews, &copied)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (r *fakeSubjectReviewRepo) ExistsForUser(_ context.Context, subjectID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.SubjectID == subjectID && review.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubjectReviewRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return apperrors.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

type fakeTeacherReviewRepo struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]*models.TeacherReview
}

func newFakeTeacherReviewRepo() *fakeTeacherReviewRepo {
	return &fakeTeacherReviewRepo{nextID: 1, reviews: make(map[int64]*models.TeacherReview)}
}

func (r *fakeTeacherReviewRepo) Create(_ context.Context, review *models.TeacherReview) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.TeacherID == review.TeacherID && existing.UserID == review.UserID {
			return 0, apperrors.ErrReviewAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	stored := *review
	stored.ID = id
	stored.CreatedAt = time.Now().Add(time.Duration(id) * time.Millisecond)
	r.reviews[id] = &stored
	return id, nil
}

func (r *fakeTeacherReviewRepo) GetByID(_ context.Context, id int64) (*models.TeacherReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *fakeTeacherReviewRepo) ListByTeacherID(_ context.Context, teacherID int64) ([]*models.TeacherReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reviews []*models.TeacherReview
	for _, review := range r.reviews {
		if review.TeacherID == teacherID {
			copied := *review
			reviews = append(reviews, &copied)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (r *fakeTeacherReviewRepo) ExistsForUser(_ context.Context, teacherID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.TeacherID == teacherID && review.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeacherReviewRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return apperrors.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

// fakeEmailService records outbound mail and can be told to fail.
type fakeEmailService struct {
	mu         sync.Mutex
	failSend   bool
	otpSent    []string
	resetsSent []string
}

var errSendFailed = errors.New("smtp unavailable")

func (s *fakeEmailService) SendOTPEmail(toEmail, otp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSend {
		return errSendFailed
	}
	s.otpSent = append(s.otpSent, otp)
	_ = toEmail
	return nil
}

func (s *fakeEmailService) SendPasswordResetEmail(toEmail, resetURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSend {
		return errSendFailed
	}
	s.resetsSent = append(s.resetsSent, resetURL)
	_ = toEmail
	return nil
}
