package services

import (
	"context"
	"testing"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/app/models/dto"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/eduflow/eduflow/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newAdminServiceForTest(t *testing.T) (*AdminService, *fakeUserRepo, *recordingEmailService) {
	t.Helper()

	userRepo := newFakeUserRepo()
	emailService := &recordingEmailService{}
	service := NewAdminService(userRepo, emailService, zerolog.Nop())
	return service, userRepo, emailService
}

func TestGetCounts(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database yields empty arrays and zero totals", func(t *testing.T) {
		service, _, _ := newAdminServiceForTest(t)

		counts, err := service.GetCounts(ctx)
		require.NoError(t, err)
		require.NotNil(t, counts.DepartmentCounts)
		require.Empty(t, counts.DepartmentCounts)
		require.Zero(t, counts.StudentCount)
		require.Zero(t, counts.ProfessorCount)
		require.Zero(t, counts.HodCount)
	})

	t.Run("aggregates by department and role", func(t *testing.T) {
		service, userRepo, _ := newAdminServiceForTest(t)
		userRepo.addUser("S1", "s1@uni.edu", models.RoleStudent, "Computer Science")
		userRepo.addUser("S2", "s2@uni.edu", models.RoleStudent, "Computer Science")
		userRepo.addUser("P1", "p1@uni.edu", models.RoleProfessor, "Mathematics")
		userRepo.addUser("H1", "h1@uni.edu", models.RoleHod, "Mathematics")
		userRepo.addUser("Admin", "admin@uni.edu", models.RoleAdmin, "")

		counts, err := service.GetCounts(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, counts.StudentCount)
		require.EqualValues(t, 1, counts.ProfessorCount)
		require.EqualValues(t, 1, counts.HodCount)

		byDept := map[string]int64{}
		for _, dc := range counts.DepartmentCounts {
			byDept[dc.Department] = dc.Count
		}
		require.EqualValues(t, 2, byDept["Computer Science"])
		require.EqualValues(t, 2, byDept["Mathematics"])
	})
}

func TestAdminCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("generates and emails a temporary password", func(t *testing.T) {
		service, userRepo, emailService := newAdminServiceForTest(t)

		user, err := service.CreateUser(ctx, &dto.CreateUserRequest{
			FullName:   "Prof Grace",
			Email:      "grace@uni.edu",
			Role:       models.RoleProfessor,
			Department: "Computer Science",
		})
		require.NoError(t, err)
		require.NotZero(t, user.ID)

		stored, err := userRepo.GetUserByEmail(ctx, "grace@uni.edu")
		require.NoError(t, err)
		require.NotEmpty(t, stored.Password)

		require.Len(t, emailService.sent, 1)
		msg := emailService.sent[0]
		require.Equal(t, "grace@uni.edu", msg.ToEmail)

		// The emailed password must match the stored hash and never be the
		// hash itself
		require.NotContains(t, msg.TextBody, stored.Password)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		service, userRepo, _ := newAdminServiceForTest(t)
		userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")

		_, err := service.CreateUser(ctx, &dto.CreateUserRequest{
			FullName:   "Other Grace",
			Email:      "grace@uni.edu",
			Role:       models.RoleProfessor,
			Department: "Computer Science",
		})
		require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("email delivery failure does not roll back the account", func(t *testing.T) {
		service, userRepo, emailService := newAdminServiceForTest(t)
		emailService.failure = context.DeadlineExceeded

		_, err := service.CreateUser(ctx, &dto.CreateUserRequest{
			FullName:   "Prof Grace",
			Email:      "grace@uni.edu",
			Role:       models.RoleProfessor,
			Department: "Computer Science",
		})
		require.NoError(t, err)

		_, err = userRepo.GetUserByEmail(ctx, "grace@uni.edu")
		require.NoError(t, err)
	})
}

func TestAdminUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("edits name, role and department", func(t *testing.T) {
		service, userRepo, _ := newAdminServiceForTest(t)
		user := userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")

		updated, err := service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{
			FullName:   "Head Grace",
			Role:       models.RoleHod,
			Department: "Mathematics",
		})
		require.NoError(t, err)
		require.Equal(t, models.RoleHod, updated.Role)
		require.Equal(t, "Mathematics", updated.Department)
	})

	t.Run("missing account yields user not found", func(t *testing.T) {
		service, _, _ := newAdminServiceForTest(t)

		_, err := service.UpdateUser(ctx, 42, &dto.UpdateUserRequest{
			FullName:   "Nobody",
			Role:       models.RoleStudent,
			Department: "Computer Science",
		})
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestAdminDeleteUser(t *testing.T) {
	ctx := context.Background()

	service, userRepo, _ := newAdminServiceForTest(t)
	user := userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")

	require.NoError(t, service.DeleteUser(ctx, user.ID))
	_, err := userRepo.GetUserByEmail(ctx, "grace@uni.edu")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	require.ErrorIs(t, service.DeleteUser(ctx, user.ID), apperrors.ErrUserNotFound)
}

func TestTempPasswordsAreHashed(t *testing.T) {
	ctx := context.Background()

	service, userRepo, emailService := newAdminServiceForTest(t)

	_, err := service.CreateUser(ctx, &dto.CreateUserRequest{
		FullName:   "Prof Grace",
		Email:      "grace@uni.edu",
		Role:       models.RoleProfessor,
		Department: "Computer Science",
	})
	require.NoError(t, err)

	stored, err := userRepo.GetUserByEmail(ctx, "grace@uni.edu")
	require.NoError(t, err)
	require.Len(t, emailService.sent, 1)

	// The stored value is a bcrypt hash of some password, not plaintext
	require.True(t, len(stored.Password) > tempPasswordLength)
	require.False(t, auth.CheckPassword(stored.Password, stored.Password))
}
