package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/app/repositories"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
	"github.com/jiitreviews/backend/internal/pkg/ratings"
	"github.com/jiitreviews/backend/internal/pkg/validation"
)

// TeacherService handles teacher listing and teacher review operations.
// Teachers are visible from both campuses, so there is no campus gate here.
type TeacherService struct {
	teacherRepo repositories.ITeacherRepository
	reviewRepo  repositories.ITeacherReviewRepository
	logger      zerolog.Logger
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(
	teacherRepo repositories.ITeacherRepository,
	reviewRepo repositories.ITeacherReviewRepository,
	logger zerolog.Logger,
) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// ListTeachers returns all teachers with their aggregate ratings
func (s *TeacherService) ListTeachers(ctx context.Context) ([]dto.TeacherListItem, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}

	items := make([]dto.TeacherListItem, 0, len(teachers))
	for _, teacher := range teachers {
		reviews, err := s.reviewRepo.ListByTeacherID(ctx, teacher.ID)
		if err != nil {
			return nil, fmt.Errorf("error listing reviews for teacher %d: %w", teacher.ID, err)
		}
		items = append(items, dto.NewTeacherListItem(teacher, reviews))
	}

	return items, nil
}

// GetTeacher returns one teacher with their full rating summary
func (s *TeacherService) GetTeacher(ctx context.Context, id int64) (*dto.TeacherDetail, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByTeacherID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher reviews: %w", err)
	}

	detail := dto.NewTeacherDetail(teacher, reviews)
	return &detail, nil
}

// ListReviews returns a teacher's reviews, newest first, with their aggregate
func (s *TeacherService) ListReviews(ctx context.Context, teacherID int64) (*dto.TeacherReviewListResponse, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher reviews: %w", err)
	}

	summary, overall := ratings.SummarizeTeacherReviews(reviews)
	responses := make([]dto.TeacherReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, dto.NewTeacherReviewResponse(review))
	}

	return &dto.TeacherReviewListResponse{
		ReviewCount:   len(reviews),
		AvgRatings:    summary,
		OverallRating: overall,
		Reviews:       responses,
	}, nil
}

// AddReview submits one review for a teacher. Checks run in a fixed order:
// teacher exists, rating bounds, no prior review by the same user.
func (s *TeacherService) AddReview(ctx context.Context, teacherID, userID int64, req *dto.AddTeacherReviewRequest) (*dto.TeacherReviewResponse, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}

	reviewRatings := req.Ratings()
	for _, v := range reviewRatings.Values() {
		if !validation.IsValidRating(v) {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("Ratings must be between %d and %d", validation.RatingMin, validation.RatingMax))
		}
	}
	if req.TextReview != nil && len(*req.TextReview) > validation.TextReviewMaxLength {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("Text review must be at most %d characters", validation.TextReviewMaxLength))
	}

	exists, err := s.reviewRepo.ExistsForUser(ctx, teacherID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing review: %w", err)
	}
	if exists {
		return nil, apperrors.ErrReviewAlreadyExists
	}

	review := &models.TeacherReview{
		TeacherID:  teacherID,
		UserID:     userID,
		Ratings:    reviewRatings,
		TextReview: req.TextReview,
	}

	reviewID, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	created, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("error reading back created review: %w", err)
	}

	s.logger.Info().Int64("teacherId", teacherID).Int64("userId", userID).Msg("Teacher review added")

	response := dto.NewTeacherReviewResponse(created)
	return &response, nil
}

// DeleteReview removes a review. Only the author may delete it, and the
// review must belong to the addressed teacher.
func (s *TeacherService) DeleteReview(ctx context.Context, teacherID, reviewID, userID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.TeacherID != teacherID {
		return apperrors.ErrReviewNotFound
	}
	if review.UserID != userID {
		return apperrors.NewForbiddenError("Only the author can delete a review")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.logger.Info().Int64("reviewId", reviewID).Int64("userId", userID).Msg("Teacher review deleted")
	return nil
}
