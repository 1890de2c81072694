package dto

import (
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/pkg/ratings"
)

// TeacherListItem is one teacher in the listing, with their aggregate score
type TeacherListItem struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Department    string   `json:"department"`
	Designation   string   `json:"designation"`
	Qualification string   `json:"qualification"`
	OverallRating *float64 `json:"overallRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// TeacherDetail is the teacher detail view with the full rating summary
type TeacherDetail struct {
	ID            int64                   `json:"id"`
	Name          string                  `json:"name"`
	Department    string                  `json:"department"`
	Designation   string                  `json:"designation"`
	Qualification string                  `json:"qualification"`
	AvgRatings    *ratings.TeacherSummary `json:"avgRatings"`
	OverallRating *float64                `json:"overallRating"`
	ReviewCount   int                     `json:"reviewCount"`
}

// NewTeacherListItem maps a teacher and their review set to a listing entry
func NewTeacherListItem(teacher *models.Teacher, reviews []*models.TeacherReview) TeacherListItem {
	_, overall := ratings.SummarizeTeacherReviews(reviews)
	return TeacherListItem{
		ID:            teacher.ID,
		Name:          teacher.Name,
		Department:    teacher.Department,
		Designation:   teacher.Designation,
		Qualification: teacher.Qualification,
		OverallRating: overall,
		ReviewCount:   len(reviews),
	}
}

// NewTeacherDetail maps a teacher and their review set to the detail view
func NewTeacherDetail(teacher *models.Teacher, reviews []*models.TeacherReview) TeacherDetail {
	summary, overall := ratings.SummarizeTeacherReviews(reviews)
	return TeacherDetail{
		ID:            teacher.ID,
		Name:          teacher.Name,
		Department:    teacher.Department,
		Designation:   teacher.Designation,
		Qualification: teacher.Qualification,
		AvgRatings:    summary,
		OverallRating: overall,
		ReviewCount:   len(reviews),
	}
}
