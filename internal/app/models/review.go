package models

import "time"

// SubjectRatings is the fixed category set for subject reviews.
// Every value is an integer in [1,5].
type SubjectRatings struct {
	Difficulty    int `json:"difficulty" db:"difficulty" example:"3"`
	Content       int `json:"content" db:"content" example:"4"`
	ExamPattern   int `json:"examPattern" db:"exam_pattern" example:"2"`
	RelativeMarks int `json:"relativeMarks" db:"relative_marks" example:"5"`
}

// Values returns the ratings in declaration order, for bounds checking.
func (r SubjectRatings) Values() []int {
	return []int{r.Difficulty, r.Content, r.ExamPattern, r.RelativeMarks}
}

// TeacherRatings is the fixed category set for teacher reviews.
type TeacherRatings struct {
	LateEntry  int `json:"lateEntry" db:"late_entry" example:"4"`
	TAMarks    int `json:"taMarks" db:"ta_marks" example:"2"`
	Clarity    int `json:"clarity" db:"clarity" example:"5"`
	Attendance int `json:"attendance" db:"attendance" example:"3"`
}

// Values returns the ratings in declaration order, for bounds checking.
func (r TeacherRatings) Values() []int {
	return []int{r.LateEntry, r.TAMarks, r.Clarity, r.Attendance}
}

// SubjectReview is one user's review of a subject, based on the
// 'subject_reviews' table. Immutable once created; uniqueness is on
// (subject_id, user_id).
type SubjectReview struct {
	ID         int64          `json:"id" db:"id"`
	SubjectID  int64          `json:"subjectId" db:"subject_id"`
	UserID     int64          `json:"userId" db:"user_id"`
	UserCampus Campus         `json:"userCampus" db:"campus"` // campus of the author at submission time
	Ratings    SubjectRatings `json:"ratings"`
	TextReview *string        `json:"textReview,omitempty" db:"text_review"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}

// TeacherReview is one user's review of a teacher, based on the
// 'teacher_reviews' table. Uniqueness is on (teacher_id, user_id).
type TeacherReview struct {
	ID         int64          `json:"id" db:"id"`
	TeacherID  int64          `json:"teacherId" db:"teacher_id"`
	UserID     int64          `json:"userId" db:"user_id"`
	Ratings    TeacherRatings `json:"ratings"`
	TextReview *string        `json:"textReview,omitempty" db:"text_review"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}
