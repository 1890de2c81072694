package dto

import (
	"time"

	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/pkg/ratings"
)

// AddSubjectReviewRequest carries one subject review submission.
// Every rating category is required and bounded by the binding tags;
// the service re-checks the bounds before persisting.
type AddSubjectReviewRequest struct {
	Difficulty    int     `json:"difficulty" binding:"required,min=1,max=5"`
	Content       int     `json:"content" binding:"required,min=1,max=5"`
	ExamPattern   int     `json:"examPattern" binding:"required,min=1,max=5"`
	RelativeMarks int     `json:"relativeMarks" binding:"required,min=1,max=5"`
	TextReview    *string `json:"textReview,omitempty" binding:"omitempty,max=1000"`
}

// Ratings converts the request into the stored ratings record
func (r *AddSubjectReviewRequest) Ratings() models.SubjectRatings {
	return models.SubjectRatings{
		Difficulty:    r.Difficulty,
		Content:       r.Content,
		ExamPattern:   r.ExamPattern,
		RelativeMarks: r.RelativeMarks,
	}
}

// AddTeacherReviewRequest carries one teacher review submission
type AddTeacherReviewRequest struct {
	LateEntry  int     `json:"lateEntry" binding:"required,min=1,max=5"`
	TAMarks    int     `json:"taMarks" binding:"required,min=1,max=5"`
	Clarity    int     `json:"clarity" binding:"required,min=1,max=5"`
	Attendance int     `json:"attendance" binding:"required,min=1,max=5"`
	TextReview *string `json:"textReview,omitempty" binding:"omitempty,max=1000"`
}

// Ratings converts the request into the stored ratings record
func (r *AddTeacherReviewRequest) Ratings() models.TeacherRatings {
	return models.TeacherRatings{
		LateEntry:  r.LateEntry,
		TAMarks:    r.TAMarks,
		Clarity:    r.Clarity,
		Attendance: r.Attendance,
	}
}

// SubjectReviewResponse is one review as returned to clients
type SubjectReviewResponse struct {
	ID         int64                 `json:"id"`
	SubjectID  int64                 `json:"subjectId"`
	UserID     int64                 `json:"userId"`
	UserCampus string                `json:"userCampus" example:"62"`
	Ratings    models.SubjectRatings `json:"ratings"`
	TextReview *string               `json:"textReview,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// TeacherReviewResponse is one review as returned to clients
type TeacherReviewResponse struct {
	ID         int64                 `json:"id"`
	TeacherID  int64                 `json:"teacherId"`
	UserID     int64                 `json:"userId"`
	Ratings    models.TeacherRatings `json:"ratings"`
	TextReview *string               `json:"textReview,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// SubjectReviewListResponse bundles a subject's reviews with their aggregate.
// AvgRatings and OverallRating are null when the subject has no reviews.
type SubjectReviewListResponse struct {
	ReviewCount   int                     `json:"reviewCount"`
	AvgRatings    *ratings.SubjectSummary `json:"avgRatings"`
	OverallRating *float64                `json:"overallRating"`
	Reviews       []SubjectReviewResponse `json:"reviews"`
}

// TeacherReviewListResponse bundles a teacher's reviews with their aggregate
type TeacherReviewListResponse struct {
	ReviewCount   int                     `json:"reviewCount"`
	AvgRatings    *ratings.TeacherSummary `json:"avgRatings"`
	OverallRating *float64                `json:"overallRating"`
	Reviews       []TeacherReviewResponse `json:"reviews"`
}

// NewSubjectReviewResponse maps a stored review to its response form
func NewSubjectReviewResponse(review *models.SubjectReview) SubjectReviewResponse {
	return SubjectReviewResponse{
		ID:         review.ID,
		SubjectID:  review.SubjectID,
		UserID:     review.UserID,
		UserCampus: string(review.UserCampus),
		Ratings:    review.Ratings,
		TextReview: review.TextReview,
		CreatedAt:  review.CreatedAt,
	}
}

// NewTeacherReviewResponse maps a stored review to its response form
func NewTeacherReviewResponse(review *models.TeacherReview) TeacherReviewResponse {
	return TeacherReviewResponse{
		ID:         review.ID,
		TeacherID:  review.TeacherID,
		UserID:     review.UserID,
		Ratings:    review.Ratings,
		TextReview: review.TextReview,
		CreatedAt:  review.CreatedAt,
	}
}
