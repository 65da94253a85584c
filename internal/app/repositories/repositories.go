package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository                UserRepository
	DepartmentRepository          DepartmentRepository
	StudentAssignmentRepository   StudentAssignmentRepository
	ForwardedAssignmentRepository ForwardedAssignmentRepository
	PasswordResetCodeRepository   PasswordResetCodeRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:                NewUserRepository(db),
		DepartmentRepository:          NewDepartmentRepository(db),
		StudentAssignmentRepository:   NewStudentAssignmentRepository(db),
		ForwardedAssignmentRepository: NewForwardedAssignmentRepository(db),
		PasswordResetCodeRepository:   NewPasswordResetCodeRepository(db),
	}
}
