package services

import (
	"context"
	"fmt"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/app/models/dto"
	"github.com/eduflow/eduflow/internal/app/repositories"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/eduflow/eduflow/internal/pkg/auth"
	"github.com/eduflow/eduflow/internal/pkg/email"
	"github.com/rs/zerolog"
)

// tempPasswordLength is the length of generated passwords for admin-issued
// accounts
const tempPasswordLength = 12

// AdminService handles account administration and dashboard aggregates
type AdminService struct {
	userRepo     repositories.UserRepository
	emailService email.Service
	logger       zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.UserRepository,
	emailService email.Service,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// GetCounts aggregates the dashboard numbers: users per department and
// totals per role. DepartmentCounts is always a non-nil slice.
func (s *AdminService) GetCounts(ctx context.Context) (*dto.DashboardCounts, error) {
	departmentCounts, err := s.userRepo.CountByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by department: %w", err)
	}

	roleCounts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	counts := &dto.DashboardCounts{
		DepartmentCounts: []dto.DepartmentCount{},
		StudentCount:     roleCounts[models.RoleStudent],
		ProfessorCount:   roleCounts[models.RoleProfessor],
		HodCount:         roleCounts[models.RoleHod],
	}
	for _, dc := range departmentCounts {
		counts.DepartmentCounts = append(counts.DepartmentCounts, dto.DepartmentCount{
			Department: dc.Department,
			Count:      dc.Count,
		})
	}

	return counts, nil
}

// ListUsers returns every account, insertion order
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

// CreateUser issues a new account with a generated temporary password and
// emails the password to the account owner. Delivery failure is logged but
// does not roll back the account.
func (s *AdminService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown role")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	tempPassword, err := auth.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	passwordHash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   passwordHash,
		Role:       req.Role,
		Department: req.Department,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	msg := email.NewAccountCreatedMessage(user.Email, user.FullName, tempPassword)
	if err := s.emailService.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send account created email")
	}

	s.logger.Info().
		Int64("userID", id).
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("User created by admin")

	return user, nil
}

// UpdateUser edits an existing account's name, role and department
func (s *AdminService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown role")
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Role = req.Role
	user.Department = req.Department

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info().Int64("userID", id).Msg("User updated by admin")
	return user, nil
}

// DeleteUser removes an account
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("User deleted by admin")
	return nil
}
