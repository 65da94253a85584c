package services

import (
	"context"
	"fmt"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/app/repositories"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// DepartmentService handles department management
type DepartmentService struct {
	departmentRepo repositories.DepartmentRepository
	logger         zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo repositories.DepartmentRepository, logger zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// Create adds a new department. Department names are unique.
func (s *DepartmentService) Create(ctx context.Context, name string) (*models.Department, error) {
	exists, err := s.departmentRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check department existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDepartmentAlreadyExists
	}

	department := &models.Department{Name: name}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.logger.Info().Str("name", name).Msg("Department created")
	return department, nil
}

// GetAll returns every department, insertion order. The result is always a
// non-nil slice.
func (s *DepartmentService) GetAll(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}
