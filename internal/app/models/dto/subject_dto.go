package dto

import (
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/pkg/ratings"
)

// SubjectListItem is one subject in the listing, with its aggregate score.
// OverallRating is null for subjects without reviews.
type SubjectListItem struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Semester      int      `json:"semester"`
	Campus        string   `json:"campus"`
	OverallRating *float64 `json:"overallRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// SubjectDetail is the subject detail view with the full rating summary
type SubjectDetail struct {
	ID            int64                   `json:"id"`
	Name          string                  `json:"name"`
	Type          string                  `json:"type"`
	Semester      int                     `json:"semester"`
	Campus        string                  `json:"campus"`
	AvgRatings    *ratings.SubjectSummary `json:"avgRatings"`
	OverallRating *float64                `json:"overallRating"`
	ReviewCount   int                     `json:"reviewCount"`
}

// NewSubjectListItem maps a subject and its review set to a listing entry
func NewSubjectListItem(subject *models.Subject, reviews []*models.SubjectReview) SubjectListItem {
	_, overall := ratings.SummarizeSubjectReviews(reviews)
	return SubjectListItem{
		ID:            subject.ID,
		Name:          subject.Name,
		Type:          subject.Type,
		Semester:      subject.Semester,
		Campus:        string(subject.Campus),
		OverallRating: overall,
		ReviewCount:   len(reviews),
	}
}

// NewSubjectDetail maps a subject and its review set to the detail view
func NewSubjectDetail(subject *models.Subject, reviews []*models.SubjectReview) SubjectDetail {
	summary, overall := ratings.SummarizeSubjectReviews(reviews)
	return SubjectDetail{
		ID:            subject.ID,
		Name:          subject.Name,
		Type:          subject.Type,
		Semester:      subject.Semester,
		Campus:        string(subject.Campus),
		AvgRatings:    summary,
		OverallRating: overall,
		ReviewCount:   len(reviews),
	}
}
