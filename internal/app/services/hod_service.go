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

// HodService handles the department head review workflow
type HodService struct {
	forwardedRepo repositories.ForwardedAssignmentRepository
	userRepo      repositories.UserRepository
	fileStorage   filestorage.FileStorage
	logger        zerolog.Logger
}

// NewHodService creates a new HodService
func NewHodService(
	forwardedRepo repositories.ForwardedAssignmentRepository,
	userRepo repositories.UserRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *HodService {
	return &HodService{
		forwardedRepo: forwardedRepo,
		userRepo:      userRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

// Forward creates a forwarded assignment record owned by the calling HOD.
// Status defaults to Forwarded; Draft is accepted for records the HOD is
// still preparing.
func (s *HodService) Forward(ctx context.Context, hodEmail, studentEmail, title, professorEmail, status string, file *multipart.FileHeader) (*models.ForwardedAssignment, error) {
	hod, err := s.userRepo.GetUserByEmail(ctx, hodEmail)
	if err != nil {
		return nil, err
	}

	forwardedStatus := models.ForwardedStatusForwarded
	if status == string(models.ForwardedStatusDraft) {
		forwardedStatus = models.ForwardedStatusDraft
	}

	fileURL, err := s.fileStorage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to store assignment file: %w", err)
	}

	assignment := &models.ForwardedAssignment{
		StudentEmail:   studentEmail,
		Title:          title,
		FileURL:        fileURL,
		ProfessorEmail: professorEmail,
		HodEmail:       hodEmail,
		Department:     hod.Department,
		Status:         forwardedStatus,
	}

	if err := s.forwardedRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create forwarded assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignmentID", assignment.ID).
		Str("hodEmail", hodEmail).
		Str("status", string(forwardedStatus)).
		Msg("Assignment forwarded")

	return assignment, nil
}

// ListForHod returns the HOD's forwarded assignments, keeping only rows whose
// professor currently belongs to the HOD's own department. Membership is
// resolved against the users table on every call, so a professor who moved
// departments disappears from the list and one who moved in appears. Rows
// with a missing professor account are skipped.
func (s *HodService) ListForHod(ctx context.Context, hodEmail string) ([]*models.ForwardedAssignment, error) {
	hod, err := s.userRepo.GetUserByEmail(ctx, hodEmail)
	if err != nil {
		return nil, err
	}

	rows, err := s.forwardedRepo.GetByHodEmail(ctx, hodEmail)
	if err != nil {
		return nil, err
	}

	assignments := []*models.ForwardedAssignment{}
	for _, row := range rows {
		professor, err := s.userRepo.GetUserByEmail(ctx, row.ProfessorEmail)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				s.logger.Debug().
					Int64("assignmentID", row.ID).
					Str("professorEmail", row.ProfessorEmail).
					Msg("Skipping forwarded assignment with missing professor")
				continue
			}
			return nil, err
		}

		if professor.Department != hod.Department {
			continue
		}

		assignments = append(assignments, row)
	}

	return assignments, nil
}

// Decide records a HOD's approval decision on a forwarded assignment
func (s *HodService) Decide(ctx context.Context, id int64, status string) (*models.ForwardedAssignment, error) {
	decision := models.ForwardedAssignmentStatus(status)
	if decision != models.ForwardedStatusApproved && decision != models.ForwardedStatusRejected {
		return nil, apperrors.ErrInvalidDecision
	}

	assignment, err := s.forwardedRepo.UpdateStatus(ctx, id, decision)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("assignmentID", id).
		Str("status", status).
		Msg("Forwarded assignment decision recorded")

	return assignment, nil
}
