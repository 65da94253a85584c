package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/app/repositories"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/eduflow/eduflow/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// EventAssignmentSubmitted is broadcast to admin sessions on student upload
const EventAssignmentSubmitted = "assignment_submitted"

// Notifier pushes named events to connected admin sessions
type Notifier interface {
	Notify(eventName string, payload interface{})
}

// AssignmentService handles the student upload and professor review workflow
type AssignmentService struct {
	assignmentRepo repositories.StudentAssignmentRepository
	userRepo       repositories.UserRepository
	fileStorage    filestorage.FileStorage
	notifier       Notifier
	logger         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo repositories.StudentAssignmentRepository,
	userRepo repositories.UserRepository,
	fileStorage filestorage.FileStorage,
	notifier Notifier,
	logger zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		fileStorage:    fileStorage,
		notifier:       notifier,
		logger:         logger,
	}
}

// Upload stores a student submission: the file goes to disk, the record to
// the database with status Submitted, and an event is broadcast to admin
// sessions. The target must resolve to an existing professor account.
func (s *AssignmentService) Upload(ctx context.Context, studentEmail, title, professorEmail string, file *multipart.FileHeader) (*models.StudentAssignment, error) {
	professor, err := s.userRepo.GetUserByEmail(ctx, professorEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, err
	}
	if professor.Role != models.RoleProfessor {
		return nil, apperrors.ErrProfessorNotFound
	}

	fileURL, err := s.fileStorage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to store assignment file: %w", err)
	}

	assignment := &models.StudentAssignment{
		StudentEmail:   studentEmail,
		Title:          title,
		FileURL:        fileURL,
		ProfessorEmail: professorEmail,
		Status:         models.StatusSubmitted,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		// The record is the source of truth; an orphaned file is just waste
		if delErr := s.fileStorage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned assignment file")
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignmentID", assignment.ID).
		Str("studentEmail", studentEmail).
		Str("professorEmail", professorEmail).
		Msg("Assignment uploaded")

	s.notifier.Notify(EventAssignmentSubmitted, assignment)

	return assignment, nil
}

// ListForStudent returns the student's own submissions, oldest first.
// The result is always a non-nil slice.
func (s *AssignmentService) ListForStudent(ctx context.Context, studentEmail string) ([]*models.StudentAssignment, error) {
	return s.assignmentRepo.GetByStudentEmail(ctx, studentEmail)
}

// ListForProfessor returns submissions addressed to the professor together
// with the professor's department.
func (s *AssignmentService) ListForProfessor(ctx context.Context, professorEmail string) ([]*models.StudentAssignment, string, error) {
	professor, err := s.userRepo.GetUserByEmail(ctx, professorEmail)
	if err != nil {
		return nil, "", err
	}

	assignments, err := s.assignmentRepo.GetByProfessorEmail(ctx, professorEmail)
	if err != nil {
		return nil, "", err
	}

	return assignments, professor.Department, nil
}

// Decide records a professor's accept/reject decision. Feedback is stored
// only on rejection. Repeat decisions overwrite the previous one; there is
// no version check.
func (s *AssignmentService) Decide(ctx context.Context, id int64, status, feedback string) (*models.StudentAssignment, error) {
	decision := models.StudentAssignmentStatus(status)
	if decision != models.StatusAccepted && decision != models.StatusRejected {
		return nil, apperrors.ErrInvalidDecision
	}

	var feedbackPtr *string
	if decision == models.StatusRejected && feedback != "" {
		feedbackPtr = &feedback
	}

	assignment, err := s.assignmentRepo.UpdateDecision(ctx, id, decision, feedbackPtr)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("assignmentID", id).
		Str("status", status).
		Msg("Assignment decision recorded")

	return assignment, nil
}
