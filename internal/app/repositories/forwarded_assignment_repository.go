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

// forwardedAssignmentRepository is the pgx-backed ForwardedAssignmentRepository
type forwardedAssignmentRepository struct {
	db *pgxpool.Pool
}

// NewForwardedAssignmentRepository creates a new forwarded assignment repository
func NewForwardedAssignmentRepository(db *pgxpool.Pool) ForwardedAssignmentRepository {
	return &forwardedAssignmentRepository{
		db: db,
	}
}

// Create inserts a new forwarded assignment record
func (r *forwardedAssignmentRepository) Create(ctx context.Context, assignment *models.ForwardedAssignment) error {
	query := `
		INSERT INTO forwarded_assignments (student_email, title, file_url, professor_email, hod_email, department, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		assignment.StudentEmail,
		assignment.Title,
		assignment.FileURL,
		assignment.ProfessorEmail,
		assignment.HodEmail,
		assignment.Department,
		assignment.Status,
	).Scan(&assignment.ID, &assignment.UploadedAt)
	if err != nil {
		return fmt.Errorf("error creating forwarded assignment: %w", err)
	}

	return nil
}

// GetByID retrieves a forwarded assignment by ID
func (r *forwardedAssignmentRepository) GetByID(ctx context.Context, id int64) (*models.ForwardedAssignment, error) {
	query := `
		SELECT id, student_email, title, file_url, professor_email, hod_email, department, status, uploaded_at
		FROM forwarded_assignments
		WHERE id = $1
	`

	var a models.ForwardedAssignment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.StudentEmail,
		&a.Title,
		&a.FileURL,
		&a.ProfessorEmail,
		&a.HodEmail,
		&a.Department,
		&a.Status,
		&a.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving forwarded assignment: %w", err)
	}

	return &a, nil
}

// GetByHodEmail retrieves every forwarded assignment belonging to a HOD,
// insertion order. Department filtering happens in the service layer against
// the users table at read time.
func (r *forwardedAssignmentRepository) GetByHodEmail(ctx context.Context, hodEmail string) ([]*models.ForwardedAssignment, error) {
	query := `
		SELECT id, student_email, title, file_url, professor_email, hod_email, department, status, uploaded_at
		FROM forwarded_assignments
		WHERE hod_email = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, hodEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []*models.ForwardedAssignment{}
	for rows.Next() {
		var a models.ForwardedAssignment
		if err := rows.Scan(
			&a.ID,
			&a.StudentEmail,
			&a.Title,
			&a.FileURL,
			&a.ProfessorEmail,
			&a.HodEmail,
			&a.Department,
			&a.Status,
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

// UpdateStatus overwrites the forwarded assignment status
func (r *forwardedAssignmentRepository) UpdateStatus(ctx context.Context, id int64, status models.ForwardedAssignmentStatus) (*models.ForwardedAssignment, error) {
	query := `
		UPDATE forwarded_assignments
		SET status = $1
		WHERE id = $2
		RETURNING id, student_email, title, file_url, professor_email, hod_email, department, status, uploaded_at
	`

	var a models.ForwardedAssignment
	err := r.db.QueryRow(ctx, query, status, id).Scan(
		&a.ID,
		&a.StudentEmail,
		&a.Title,
		&a.FileURL,
		&a.ProfessorEmail,
		&a.HodEmail,
		&a.Department,
		&a.Status,
		&a.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error updating forwarded assignment status: %w", err)
	}

	return &a, nil
}
