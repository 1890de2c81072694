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

// SubjectService handles subject listing and subject review operations
type SubjectService struct {
	subjectRepo repositories.ISubjectRepository
	reviewRepo  repositories.ISubjectReviewRepository
	logger      zerolog.Logger
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(
	subjectRepo repositories.ISubjectRepository,
	reviewRepo repositories.ISubjectReviewRepository,
	logger zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// ListSubjects returns all subjects with their aggregate ratings
func (s *SubjectService) ListSubjects(ctx context.Context) ([]dto.SubjectListItem, error) {
	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}

	items := make([]dto.SubjectListItem, 0, len(subjects))
	for _, subject := range subjects {
		reviews, err := s.reviewRepo.ListBySubjectID(ctx, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("error listing reviews for subject %d: %w", subject.ID, err)
		}
		items = append(items, dto.NewSubjectListItem(subject, reviews))
	}

	return items, nil
}

// GetSubject returns one subject with its full rating summary
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*dto.SubjectDetail, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListBySubjectID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing subject reviews: %w", err)
	}

	detail := dto.NewSubjectDetail(subject, reviews)
	return &detail, nil
}

// ListReviews returns a subject's reviews, newest first, with their
// aggregate. The requester's campus must have access to the subject.
func (s *SubjectService) ListReviews(ctx context.Context, subjectID, userID int64, userCampus string) (*dto.SubjectReviewListResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if !subject.VisibleTo(models.Campus(userCampus)) {
		return nil, apperrors.ErrCampusNotAllowed
	}

	reviews, err := s.reviewRepo.ListBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error listing subject reviews: %w", err)
	}

	summary, overall := ratings.SummarizeSubjectReviews(reviews)
	responses := make([]dto.SubjectReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, dto.NewSubjectReviewResponse(review))
	}

	return &dto.SubjectReviewListResponse{
		ReviewCount:   len(reviews),
		AvgRatings:    summary,
		OverallRating: overall,
		Reviews:       responses,
	}, nil
}

// AddReview submits one review for a subject. Checks run in a fixed order:
// subject exists, campus access, rating bounds, no prior review by the same
// user. The unique index in the store backs the duplicate check.
func (s *SubjectService) AddReview(ctx context.Context, subjectID, userID int64, userCampus string, req *dto.AddSubjectReviewRequest) (*dto.SubjectReviewResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if !subject.VisibleTo(models.Campus(userCampus)) {
		return nil, apperrors.ErrCampusNotAllowed
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

	exists, err := s.reviewRepo.ExistsForUser(ctx, subjectID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing review: %w", err)
	}
	if exists {
		return nil, apperrors.ErrReviewAlreadyExists
	}

	review := &models.SubjectReview{
		SubjectID:  subjectID,
		UserID:     userID,
		UserCampus: models.Campus(userCampus),
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

	s.logger.Info().Int64("subjectId", subjectID).Int64("userId", userID).Msg("Subject review added")

	response := dto.NewSubjectReviewResponse(created)
	return &response, nil
}

// DeleteReview removes a review. Only the author may delete it, and the
// review must belong to the addressed subject.
func (s *SubjectService) DeleteReview(ctx context.Context, subjectID, reviewID, userID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.SubjectID != subjectID {
		return apperrors.ErrReviewNotFound
	}
	if review.UserID != userID {
		return apperrors.NewForbiddenError("Only the author can delete a review")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.logger.Info().Int64("reviewId", reviewID).Int64("userId", userID).Msg("Subject review deleted")
	return nil
}
