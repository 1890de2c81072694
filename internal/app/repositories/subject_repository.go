package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jiitreviews/backend/internal/app/models"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
	"github.com/jiitreviews/backend/internal/pkg/dberrors"
)

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject. Duplicates on (name, type, semester) are
// reported as a conflict; the seeder relies on this to stay idempotent.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO subjects (name, type, semester, campus)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		subject.Name, subject.Type, subject.Semester, subject.Campus).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_type_semester_key") {
			return 0, apperrors.NewConflictError("Subject already exists")
		}
		return 0, fmt.Errorf("error creating subject: %w", err)
	}

	return id, nil
}

// GetAll retrieves all subjects ordered by semester
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, semester, campus, created_at, updated_at
		FROM subjects
		ORDER BY semester, name`)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Type, &subject.Semester,
			&subject.Campus, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subjects: %w", err)
	}

	return subjects, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject := &models.Subject{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, type, semester, campus, created_at, updated_at
		FROM subjects
		WHERE id = $1`, id).Scan(
		&subject.ID, &subject.Name, &subject.Type, &subject.Semester,
		&subject.Campus, &subject.CreatedAt, &subject.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error getting subject: %w", err)
	}

	return subject, nil
}
