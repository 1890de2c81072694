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

// SubjectReviewRepository handles subject review database operations
type SubjectReviewRepository struct {
	db *pgxpool.Pool
}

// NewSubjectReviewRepository creates a new SubjectReviewRepository
func NewSubjectReviewRepository(db *pgxpool.Pool) *SubjectReviewRepository {
	return &SubjectReviewRepository{db: db}
}

// Create inserts a new subject review. The UNIQUE (subject_id, user_id)
// index is the authoritative one-review-per-user guard; its violation is
// mapped to apperrors.ErrReviewAlreadyExists so concurrent duplicate
// submissions surface the same conflict as the service pre-check.
func (r *SubjectReviewRepository) Create(ctx context.Context, review *models.SubjectReview) (int64, error) {
	query := squirrel.Insert("subject_reviews").
		Columns("subject_id", "user_id", "campus",
			"difficulty", "content", "exam_pattern", "relative_marks", "text_review").
		Values(review.SubjectID, review.UserID, review.UserCampus,
			review.Ratings.Difficulty, review.Ratings.Content,
			review.Ratings.ExamPattern, review.Ratings.RelativeMarks, review.TextReview).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subject_reviews_subject_id_user_id_key") {
			return 0, apperrors.ErrReviewAlreadyExists
		}
		return 0, fmt.Errorf("error creating subject review: %w", err)
	}

	return id, nil
}

// GetByID retrieves one subject review
func (r *SubjectReviewRepository) GetByID(ctx context.Context, id int64) (*models.SubjectReview, error) {
	query := squirrel.Select("id", "subject_id", "user_id", "campus",
		"difficulty", "content", "exam_pattern", "relative_marks", "text_review", "created_at").
		From("subject_reviews").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	review := &models.SubjectReview{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&review.ID, &review.SubjectID, &review.UserID, &review.UserCampus,
		&review.Ratings.Difficulty, &review.Ratings.Content,
		&review.Ratings.ExamPattern, &review.Ratings.RelativeMarks,
		&review.TextReview, &review.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error getting subject review: %w", err)
	}

	return review, nil
}

// ListBySubjectID retrieves a subject's reviews, newest first
func (r *SubjectReviewRepository) ListBySubjectID(ctx context.Context, subjectID int64) ([]*models.SubjectReview, error) {
	query := squirrel.Select("id", "subject_id", "user_id", "campus",
		"difficulty", "content", "exam_pattern", "relative_marks", "text_review", "created_at").
		From("subject_reviews").
		Where("subject_id = ?", subjectID).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing subject reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.SubjectReview
	for rows.Next() {
		review := &models.SubjectReview{}
		if err := rows.Scan(
			&review.ID, &review.SubjectID, &review.UserID, &review.UserCampus,
			&review.Ratings.Difficulty, &review.Ratings.Content,
			&review.Ratings.ExamPattern, &review.Ratings.RelativeMarks,
			&review.TextReview, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning subject review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject reviews: %w", err)
	}

	return reviews, nil
}

// ExistsForUser checks whether the user already reviewed the subject.
// Fast-path only; Create re-checks via the unique index.
func (r *SubjectReviewRepository) ExistsForUser(ctx context.Context, subjectID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM subject_reviews WHERE subject_id = $1 AND user_id = $2)`,
		subjectID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subject review existence: %w", err)
	}
	return exists, nil
}

// Delete removes one subject review
func (r *SubjectReviewRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("subject_reviews").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subject review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}

	return nil
}
