package repositories

import (
	"context"
	"time"

	"github.com/eduflow/eduflow/internal/app/models"
)

// DepartmentCount is a per-department user count aggregate row
type DepartmentCount struct {
	Department string
	Count      int64
}

// UserRepository handles database operations for accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
	CountByRole(ctx context.Context) (map[models.Role]int64, error)
}

// DepartmentRepository handles database operations for departments
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetAll(ctx context.Context) ([]*models.Department, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// StudentAssignmentRepository handles student-submitted assignment records
type StudentAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.StudentAssignment) error
	GetByID(ctx context.Context, id int64) (*models.StudentAssignment, error)
	GetByStudentEmail(ctx context.Context, email string) ([]*models.StudentAssignment, error)
	GetByProfessorEmail(ctx context.Context, email string) ([]*models.StudentAssignment, error)
	UpdateDecision(ctx context.Context, id int64, status models.StudentAssignmentStatus, feedback *string) (*models.StudentAssignment, error)
}

// ForwardedAssignmentRepository handles HOD-forwarded assignment records
type ForwardedAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.ForwardedAssignment) error
	GetByID(ctx context.Context, id int64) (*models.ForwardedAssignment, error)
	GetByHodEmail(ctx context.Context, hodEmail string) ([]*models.ForwardedAssignment, error)
	UpdateStatus(ctx context.Context, id int64, status models.ForwardedAssignmentStatus) (*models.ForwardedAssignment, error)
}

// PasswordResetCodeRepository manages one-time password reset codes.
// One active code per email; Upsert overwrites any previous record.
type PasswordResetCodeRepository interface {
	Upsert(ctx context.Context, email, code string, expiresAt time.Time) error
	Get(ctx context.Context, email string) (*models.PasswordResetCode, error)
	Delete(ctx context.Context, email string) error
	// ConsumeWithPasswordUpdate atomically sets the user's password hash and
	// deletes the reset code, so a consumed code can never be replayed.
	ConsumeWithPasswordUpdate(ctx context.Context, email, passwordHash string) error
}
