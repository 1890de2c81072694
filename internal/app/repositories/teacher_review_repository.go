package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
	"github.com/jiitreviews/backend/internal/pkg/dberrors"
)

// TeacherReviewRepository handles teacher review database operations
type TeacherReviewRepository struct {
	db *pgxpool.Pool
}

// NewTeacherReviewRepository creates a new TeacherReviewRepository
func NewTeacherReviewRepository(db *pgxpool.Pool) *TeacherReviewRepository {
	return &TeacherReviewRepository{db: db}
}

// Create inserts a new teacher review, mapping the UNIQUE
// (teacher_id, user_id) violation to apperrors.ErrReviewAlreadyExists.
func (r *TeacherReviewRepository) Create(ctx context.Context, review *models.TeacherReview) (int64, error) {
	query := squirrel.Insert("teacher_reviews").
		Columns("teacher_id", "user_id",
			"late_entry", "ta_marks", "clarity", "attendance", "text_review").
		Values(review.TeacherID, review.UserID,
			review.Ratings.LateEntry, review.Ratings.TAMarks,
			review.Ratings.Clarity, review.Ratings.Attendance, review.TextReview).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teacher_reviews_teacher_id_user_id_key") {
			return 0, apperrors.ErrReviewAlreadyExists
		}
		return 0, fmt.Errorf("error creating teacher review: %w", err)
	}

	return id, nil
}

// GetByID retrieves one teacher review
func (r *TeacherReviewRepository) GetByID(ctx context.Context, id int64) (*models.TeacherReview, error) {
	query := squirrel.Select("id", "teacher_id", "user_id",
		"late_entry", "ta_marks", "clarity", "attendance", "text_review", "created_at").
		From("teacher_reviews").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	review := &models.TeacherReview{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&review.ID, &review.TeacherID, &review.UserID,
		&review.Ratings.LateEntry, &review.Ratings.TAMarks,
		&review.Ratings.Clarity, &review.Ratings.Attendance,
		&review.TextReview, &review.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error getting teacher review: %w", err)
	}

	return review, nil
}

// ListByTeacherID retrieves a teacher's reviews, newest first
func (r *TeacherReviewRepository) ListByTeacherID(ctx context.Context, teacherID int64) ([]*models.TeacherReview, error) {
	query := squirrel.Select("id", "teacher_id", "user_id",
		"late_entry", "ta_marks", "clarity", "attendance", "text_review", "created_at").
		From("teacher_reviews").
		Where("teacher_id = ?", teacherID).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.TeacherReview
	for rows.Next() {
		review := &models.TeacherReview{}
		if err := rows.Scan(
			&review.ID, &review.TeacherID, &review.UserID,
			&review.Ratings.LateEntry, &review.Ratings.TAMarks,
			&review.Ratings.Clarity, &review.Ratings.Attendance,
			&review.TextReview, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning teacher review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher reviews: %w", err)
	}

	return reviews, nil
}

// ExistsForUser checks whether the user already reviewed the teacher
func (r *TeacherReviewRepository) ExistsForUser(ctx context.Context, teacherID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teacher_reviews WHERE teacher_id = $1 AND user_id = $2)`,
		teacherID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher review existence: %w", err)
	}
	return exists, nil
}

// Delete removes one teacher review
func (r *TeacherReviewRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("teacher_reviews").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting teacher review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}

	return nil
}
