// Package ratings computes average rating summaries over review sets.
// Averages are recomputed in full on every read; the expected volume is one
// campus's worth of reviews, so nothing incremental is needed.
package ratings

import (
	"math"

	"github.com/jiitreviews/backend/internal/app/models"
)

// SubjectSummary holds per-category averages for a subject's reviews,
// each rounded to one decimal place.
type SubjectSummary struct {
	Difficulty    float64 `json:"difficulty" example:"3.5"`
	Content       float64 `json:"content" example:"4.0"`
	ExamPattern   float64 `json:"examPattern" example:"2.5"`
	RelativeMarks float64 `json:"relativeMarks" example:"4.5"`
}

// TeacherSummary holds per-category averages for a teacher's reviews.
type TeacherSummary struct {
	LateEntry  float64 `json:"lateEntry" example:"3.0"`
	TAMarks    float64 `json:"taMarks" example:"3.0"`
	Clarity    float64 `json:"clarity" example:"5.0"`
	Attendance float64 `json:"attendance" example:"4.0"`
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// overall is the mean of the already-rounded category averages, itself
// rounded to one decimal place.
func overall(categories ...float64) float64 {
	sum := 0.0
	for _, c := range categories {
		sum += c
	}
	return Round1(sum / float64(len(categories)))
}

// SummarizeSubjectReviews computes category averages and the overall score
// for a subject's review set. A nil summary and nil overall mean "no data",
// which callers must keep distinct from an all-ones review set.
func SummarizeSubjectReviews(reviews []*models.SubjectReview) (*SubjectSummary, *float64) {
	if len(reviews) == 0 {
		return nil, nil
	}

	var difficulty, content, examPattern, relativeMarks int
	for _, r := range reviews {
		difficulty += r.Ratings.Difficulty
		content += r.Ratings.Content
		examPattern += r.Ratings.ExamPattern
		relativeMarks += r.Ratings.RelativeMarks
	}

	n := float64(len(reviews))
	summary := &SubjectSummary{
		Difficulty:    Round1(float64(difficulty) / n),
		Content:       Round1(float64(content) / n),
		ExamPattern:   Round1(float64(examPattern) / n),
		RelativeMarks: Round1(float64(relativeMarks) / n),
	}

	score := overall(summary.Difficulty, summary.Content, summary.ExamPattern, summary.RelativeMarks)
	return summary, &score
}

// SummarizeTeacherReviews computes category averages and the overall score
// for a teacher's review set. Nil results mean "no data".
func SummarizeTeacherReviews(reviews []*models.TeacherReview) (*TeacherSummary, *float64) {
	if len(reviews) == 0 {
		return nil, nil
	}

	var lateEntry, taMarks, clarity, attendance int
	for _, r := range reviews {
		lateEntry += r.Ratings.LateEntry
		taMarks += r.Ratings.TAMarks
		clarity += r.Ratings.Clarity
		attendance += r.Ratings.Attendance
	}

	n := float64(len(reviews))
	summary := &TeacherSummary{
		LateEntry:  Round1(float64(lateEntry) / n),
		TAMarks:    Round1(float64(taMarks) / n),
		Clarity:    Round1(float64(clarity) / n),
		Attendance: Round1(float64(attendance) / n),
	}

	score := overall(summary.LateEntry, summary.TAMarks, summary.Clarity, summary.Attendance)
	return summary, &score
}
