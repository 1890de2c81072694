package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
)

func newTestSubjectService(t *testing.T) (*SubjectService, *fakeSubjectRepo, *fakeSubjectReviewRepo) {
	t.Helper()
	subjectRepo := newFakeSubjectRepo()
	reviewRepo := newFakeSubjectReviewRepo()
	svc := NewSubjectService(subjectRepo, reviewRepo, zerolog.Nop())
	return svc, subjectRepo, reviewRepo
}

func seedSubject(t *testing.T, repo *fakeSubjectRepo, campus models.Campus) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &models.Subject{
		Name: "Data Structures", Type: "core", Semester: 3, Campus: campus,
	})
	if err != nil {
		t.Fatalf("seed subject error = %v", err)
	}
	return id
}

func subjectReviewRequest() *dto.AddSubjectReviewRequest {
	return &dto.AddSubjectReviewRequest{
		Difficulty: 4, Content: 2, ExamPattern: 5, RelativeMarks: 3,
	}
}

func TestAddSubjectReviewChecksOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown subject", func(t *testing.T) {
		svc, _, _ := newTestSubjectService(t)
		_, err := svc.AddReview(ctx, 99, 1, "62", subjectReviewRequest())
		if !errors.Is(err, apperrors.ErrSubjectNotFound) {
			t.Fatalf("AddReview() error = %v, want ErrSubjectNotFound", err)
		}
	})

	t.Run("campus gate", func(t *testing.T) {
		svc, subjectRepo, _ := newTestSubjectService(t)
		subjectID := seedSubject(t, subjectRepo, models.Campus62)

		// Even an invalid payload must hit the campus gate first
		req := subjectReviewRequest()
		req.Difficulty = 9
		_, err := svc.AddReview(ctx, subjectID, 1, "128", req)
		if !errors.Is(err, apperrors.ErrCampusNotAllowed) {
			t.Fatalf("AddReview() error = %v, want ErrCampusNotAllowed", err)
		}
	})

	t.Run("rating bounds", func(t *testing.T) {
		svc, subjectRepo, _ := newTestSubjectService(t)
		subjectID := seedSubject(t, subjectRepo, models.Campus62)

		req := subjectReviewRequest()
		req.RelativeMarks = 6
		_, err := svc.AddReview(ctx, subjectID, 1, "62", req)
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("AddReview() error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("duplicate review", func(t *testing.T) {
		svc, subjectRepo, _ := newTestSubjectService(t)
		subjectID := seedSubject(t, subjectRepo, models.CampusBoth)

		if _, err := svc.AddReview(ctx, subjectID, 1, "62", subjectReviewRequest()); err != nil {
			t.Fatalf("first AddReview() error = %v", err)
		}
		_, err := svc.AddReview(ctx, subjectID, 1, "62", subjectReviewRequest())
		if !errors.Is(err, apperrors.ErrReviewAlreadyExists) {
			t.Fatalf("second AddReview() error = %v, want ErrReviewAlreadyExists", err)
		}
	})
}

func TestAddSubjectReviewBothCampusSubject(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService(t)
	subjectID := seedSubject(t, subjectRepo, models.CampusBoth)

	for _, campus := range []string{"62", "128"} {
		review, err := svc.AddReview(context.Background(), subjectID, int64(len(campus)), campus, subjectReviewRequest())
		if err != nil {
			t.Fatalf("AddReview() from campus %s error = %v", campus, err)
		}
		if review.UserCampus != campus {
			t.Errorf("review campus = %q, want %q", review.UserCampus, campus)
		}
	}
}

func TestSubjectListReviewsAggregates(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService(t)
	ctx := context.Background()
	subjectID := seedSubject(t, subjectRepo, models.CampusBoth)

	reqs := []*dto.AddSubjectReviewRequest{
		{Difficulty: 4, Content: 2, ExamPattern: 5, RelativeMarks: 3},
		{Difficulty: 2, Content: 4, ExamPattern: 5, RelativeMarks: 5},
	}
	for i, req := range reqs {
		if _, err := svc.AddReview(ctx, subjectID, int64(i+1), "62", req); err != nil {
			t.Fatalf("AddReview() error = %v", err)
		}
	}

	list, err := svc.ListReviews(ctx, subjectID, 1, "62")
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}

	if list.ReviewCount != 2 {
		t.Errorf("ReviewCount = %d, want 2", list.ReviewCount)
	}
	if list.OverallRating == nil || *list.OverallRating != 3.8 {
		t.Errorf("OverallRating = %v, want 3.8", list.OverallRating)
	}
	if list.AvgRatings == nil || list.AvgRatings.Difficulty != 3.0 || list.AvgRatings.ExamPattern != 5.0 {
		t.Errorf("AvgRatings = %+v", list.AvgRatings)
	}

	// Newest first
	if len(list.Reviews) == 2 && list.Reviews[0].CreatedAt.Before(list.Reviews[1].CreatedAt) {
		t.Errorf("reviews not ordered newest first")
	}
}

func TestSubjectListReviewsCampusGate(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService(t)
	subjectID := seedSubject(t, subjectRepo, models.Campus128)

	_, err := svc.ListReviews(context.Background(), subjectID, 1, "62")
	if !errors.Is(err, apperrors.ErrCampusNotAllowed) {
		t.Fatalf("ListReviews() error = %v, want ErrCampusNotAllowed", err)
	}
}

func TestSubjectDetailWithoutReviews(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService(t)
	subjectID := seedSubject(t, subjectRepo, models.Campus62)

	detail, err := svc.GetSubject(context.Background(), subjectID)
	if err != nil {
		t.Fatalf("GetSubject() error = %v", err)
	}
	if detail.OverallRating != nil || detail.AvgRatings != nil {
		t.Errorf("expected nil aggregates for unreviewed subject, got %+v", detail)
	}
	if detail.ReviewCount != 0 {
		t.Errorf("ReviewCount = %d, want 0", detail.ReviewCount)
	}
}

func TestListSubjectsIncludesAggregates(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService(t)
	ctx := context.Background()

	reviewed := seedSubject(t, subjectRepo, models.CampusBoth)
	if _, err := subjectRepo.Create(ctx, &models.Subject{
		Name: "Operating Systems", Type: "core", Semester: 5, Campus: models.CampusBoth}); err != nil {
		t.Fatalf("seed subject error = %v", err)
	}

	if _, err := svc.AddReview(ctx, reviewed, 1, "62", subjectReviewRequest()); err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}

	items, err := svc.ListSubjects(ctx)
	if err != nil {
		t.Fatalf("ListSubjects() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListSubjects() returned %d items, want 2", len(items))
	}

	for _, item := range items {
		if item.ID == reviewed {
			if item.OverallRating == nil || item.ReviewCount != 1 {
				t.Errorf("reviewed subject aggregate = %+v", item)
			}
		} else {
			if item.OverallRating != nil || item.ReviewCount != 0 {
				t.Errorf("unreviewed subject aggregate = %+v", item)
			}
		}
	}
}

func TestDeleteSubjectReview(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService(t)
	ctx := context.Background()
	subjectID := seedSubject(t, subjectRepo, models.CampusBoth)

	review, err := svc.AddReview(ctx, subjectID, 7, "62", subjectReviewRequest())
	if err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}

	// Non-author cannot delete; the error carries a request-facing message
	err = svc.DeleteReview(ctx, subjectID, review.ID, 8)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("DeleteReview() by non-author error = %v, want ErrPermissionDenied", err)
	}
	if err.Error() != "Only the author can delete a review" {
		t.Errorf("DeleteReview() message = %q", err.Error())
	}

	// Wrong subject in the path is a missing review, not a forbidden one
	if err := svc.DeleteReview(ctx, subjectID+1, review.ID, 7); !errors.Is(err, apperrors.ErrReviewNotFound) {
		t.Fatalf("DeleteReview() with wrong subject error = %v, want ErrReviewNotFound", err)
	}

	if err := svc.DeleteReview(ctx, subjectID, review.ID, 7); err != nil {
		t.Fatalf("DeleteReview() error = %v", err)
	}

	// Deleting again reports the review as gone
	if err := svc.DeleteReview(ctx, subjectID, review.ID, 7); !errors.Is(err, apperrors.ErrReviewNotFound) {
		t.Fatalf("repeat DeleteReview() error = %v, want ErrReviewNotFound", err)
	}

	// Author may resubmit after deleting
	if _, err := svc.AddReview(ctx, subjectID, 7, "62", subjectReviewRequest()); err != nil {
		t.Fatalf("AddReview() after delete error = %v", err)
	}
}
