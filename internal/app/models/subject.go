package models

import "time"

// Subject defines an elective subject based on the 'subjects' table.
// Subjects are seeded once and immutable in normal operation;
// uniqueness is on (name, type, semester).
type Subject struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Cloud Computing"`
	Type      string    `json:"type" db:"type" example:"Elective"` // category tag
	Semester  int       `json:"semester" db:"semester" example:"5"`
	Campus    Campus    `json:"campus" db:"campus" example:"both"` // "62", "128" or "both"
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// VisibleTo reports whether a user on the given campus may read and write
// reviews for this subject.
func (s *Subject) VisibleTo(campus Campus) bool {
	return s.Campus == CampusBoth || s.Campus == campus
}
