package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// studentAssignmentRepository is the pgx-backed StudentAssignmentRepository
type studentAssignmentRepository struct {
	db *pgxpool.Pool
}

// NewStudentAssignmentRepository creates a new student assignment repository
func NewStudentAssignmentRepository(db *pgxpool.Pool) StudentAssignmentRepository {
	return &studentAssignmentRepository{
		db: db,
	}
}

// Create inserts a new submission
func (r *studentAssignmentRepository) Create(ctx context.Context, assignment *models.StudentAssignment) error {
	query := `
		INSERT INTO student_assignments (student_email, title, file_url, professor_email, status, feedback)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		assignment.StudentEmail,
		assignment.Title,
		assignment.FileURL,
		assignment.ProfessorEmail,
		assignment.Status,
		assignment.Feedback,
	).Scan(&assignment.ID, &assignment.UploadedAt)
	if err != nil {
		return fmt.Errorf("error creating student assignment: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID
func (r *studentAssignmentRepository) GetByID(ctx context.Context, id int64) (*models.StudentAssignment, error) {
	query := `
		SELECT id, student_email, title, file_url, professor_email, status, feedback, uploaded_at
		FROM student_assignments
		WHERE id = $1
	`

	var a models.StudentAssignment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.StudentEmail,
		&a.Title,
		&a.FileURL,
		&a.ProfessorEmail,
		&a.Status,
		&a.Feedback,
		&a.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving student assignment: %w", err)
	}

	return &a, nil
}

// GetByStudentEmail retrieves every submission uploaded by a student,
// insertion order
func (r *studentAssignmentRepository) GetByStudentEmail(ctx context.Context, email string) ([]*models.StudentAssignment, error) {
	return r.list(ctx, `
		SELECT id, student_email, title, file_url, professor_email, status, feedback, uploaded_at
		FROM student_assignments
		WHERE student_email = $1
		ORDER BY id
	`, email)
}

// GetByProfessorEmail retrieves every submission addressed to a professor,
// insertion order
func (r *studentAssignmentRepository) GetByProfessorEmail(ctx context.Context, email string) ([]*models.StudentAssignment, error) {
	return r.list(ctx, `
		SELECT id, student_email, title, file_url, professor_email, status, feedback, uploaded_at
		FROM student_assignments
		WHERE professor_email = $1
		ORDER BY id
	`, email)
}

func (r *studentAssignmentRepository) list(ctx context.Context, query, email string) ([]*models.StudentAssignment, error) {
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []*models.StudentAssignment{}
	for rows.Next() {
		var a models.StudentAssignment
		if err := rows.Scan(
			&a.ID,
			&a.StudentEmail,
			&a.Title,
			&a.FileURL,
			&a.ProfessorEmail,
			&a.Status,
			&a.Feedback,
			&a.UploadedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// UpdateDecision overwrites the review status and feedback. Repeat decisions
// overwrite the previous one (last write wins, no version check).
func (r *studentAssignmentRepository) UpdateDecision(ctx context.Context, id int64, status models.StudentAssignmentStatus, feedback *string) (*models.StudentAssignment, error) {
	query := `
		UPDATE student_assignments
		SET status = $1, feedback = $2
		WHERE id = $3
		RETURNING id, student_email, title, file_url, professor_email, status, feedback, uploaded_at
	`

	var a models.StudentAssignment
	err := r.db.QueryRow(ctx, query, status, feedback, id).Scan(
		&a.ID,
		&a.StudentEmail,
		&a.Title,
		&a.FileURL,
		&a.ProfessorEmail,
		&a.Status,
		&a.Feedback,
		&a.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error updating assignment decision: %w", err)
	}

	return &a, nil
}
