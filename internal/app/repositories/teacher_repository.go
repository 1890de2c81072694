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

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts a new teacher. Duplicates on (name, department) are
// reported as a conflict.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO teachers (name, department, designation, qualification)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		teacher.Name, teacher.Department, teacher.Designation, teacher.Qualification).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_name_department_key") {
			return 0, apperrors.NewConflictError("Teacher already exists")
		}
		return 0, fmt.Errorf("error creating teacher: %w", err)
	}

	return id, nil
}

// GetAll retrieves all teachers ordered by name
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, department, designation, qualification, created_at, updated_at
		FROM teachers
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher := &models.Teacher{}
		if err := rows.Scan(&teacher.ID, &teacher.Name, &teacher.Department,
			&teacher.Designation, &teacher.Qualification, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teachers: %w", err)
	}

	return teachers, nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, department, designation, qualification, created_at, updated_at
		FROM teachers
		WHERE id = $1`, id).Scan(
		&teacher.ID, &teacher.Name, &teacher.Department, &teacher.Designation,
		&teacher.Qualification, &teacher.CreatedAt, &teacher.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error getting teacher: %w", err)
	}

	return teacher, nil
}
