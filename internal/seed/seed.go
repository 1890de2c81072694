// Package seed populates the catalog tables with an initial set of
// subjects and teachers. Seeding is idempotent: rows that already exist
// are left untouched.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/app/repositories"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
)

var defaultSubjects = []models.Subject{
	{Name: "Mathematics 1", Type: "core", Semester: 1, Campus: models.CampusBoth},
	{Name: "Physics 1", Type: "core", Semester: 1, Campus: models.CampusBoth},
	{Name: "Software Development Fundamentals 1", Type: "core", Semester: 1, Campus: models.CampusBoth},
	{Name: "Mathematics 2", Type: "core", Semester: 2, Campus: models.CampusBoth},
	{Name: "Data Structures", Type: "core", Semester: 3, Campus: models.CampusBoth},
	{Name: "Database Systems", Type: "core", Semester: 4, Campus: models.CampusBoth},
	{Name: "Operating Systems", Type: "core", Semester: 5, Campus: models.CampusBoth},
	{Name: "Computer Networks", Type: "core", Semester: 6, Campus: models.CampusBoth},
	{Name: "Microprocessors", Type: "elective", Semester: 5, Campus: models.Campus62},
	{Name: "Embedded Systems", Type: "elective", Semester: 6, Campus: models.Campus128},
}

var defaultTeachers = []models.Teacher{
	{Name: "Dr. A. Sharma", Department: "CSE", Designation: "Professor", Qualification: "PhD"},
	{Name: "Dr. R. Gupta", Department: "CSE", Designation: "Associate Professor", Qualification: "PhD"},
	{Name: "Dr. S. Verma", Department: "ECE", Designation: "Assistant Professor", Qualification: "PhD"},
	{Name: "Dr. P. Singh", Department: "Mathematics", Designation: "Professor", Qualification: "PhD"},
	{Name: "Dr. N. Bhatia", Department: "Physics", Designation: "Associate Professor", Qualification: "PhD"},
}

// CreateDefaultData inserts the default subjects and teachers, skipping
// any that already exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	subjectRepo := repositories.NewSubjectRepository(dbPool)
	teacherRepo := repositories.NewTeacherRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default catalog data...")
	var finalErr error

	for i := range defaultSubjects {
		subject := defaultSubjects[i]
		if _, err := subjectRepo.Create(ctx, &subject); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("subject", subject.Name).Msg("Error seeding subject")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for i := range defaultTeachers {
		teacher := defaultTeachers[i]
		if _, err := teacherRepo.Create(ctx, &teacher); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("teacher", teacher.Name).Msg("Error seeding teacher")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default catalog data ready")
	}
	return finalErr
}
