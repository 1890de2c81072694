package models

import "time"

// Teacher defines a faculty member based on the 'teachers' table.
// Uniqueness is on (name, department).
type Teacher struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	Name          string    `json:"name" db:"name" example:"R. Sharma"`
	Department    string    `json:"department" db:"department" example:"CSE"`
	Designation   string    `json:"designation" db:"designation" example:"Assistant Professor"`
	Qualification string    `json:"qualification" db:"qualification" example:"PhD"` // highest qualification
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
