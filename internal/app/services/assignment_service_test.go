package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newAssignmentServiceForTest(t *testing.T) (*AssignmentService, *fakeUserRepo, *fakeAssignmentRepo, *recordingNotifier) {
	t.Helper()

	userRepo := newFakeUserRepo()
	assignmentRepo := newFakeAssignmentRepo()
	notifier := &recordingNotifier{}
	service := NewAssignmentService(assignmentRepo, userRepo, &fakeFileStorage{}, notifier, zerolog.Nop())
	return service, userRepo, assignmentRepo, notifier
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("creates submission and notifies admins", func(t *testing.T) {
		service, userRepo, _, notifier := newAssignmentServiceForTest(t)
		userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")

		assignment, err := service.Upload(ctx, "student@uni.edu", "Homework 1", "grace@uni.edu", nil)
		require.NoError(t, err)
		require.Equal(t, models.StatusSubmitted, assignment.Status)
		require.NotEmpty(t, assignment.FileURL)
		require.Nil(t, assignment.Feedback)

		require.Equal(t, []string{EventAssignmentSubmitted}, notifier.events)
	})

	t.Run("rejects unknown professor", func(t *testing.T) {
		service, _, _, notifier := newAssignmentServiceForTest(t)

		_, err := service.Upload(ctx, "student@uni.edu", "Homework 1", "ghost@uni.edu", nil)
		require.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
		require.Empty(t, notifier.events)
	})

	t.Run("rejects target that is not a professor", func(t *testing.T) {
		service, userRepo, _, _ := newAssignmentServiceForTest(t)
		userRepo.addUser("Student Sam", "sam@uni.edu", models.RoleStudent, "Computer Science")

		_, err := service.Upload(ctx, "student@uni.edu", "Homework 1", "sam@uni.edu", nil)
		require.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
	})

	t.Run("propagates professor lookup failures", func(t *testing.T) {
		service, userRepo, _, notifier := newAssignmentServiceForTest(t)
		userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")
		userRepo.getUserErr = errors.New("connection refused")

		_, err := service.Upload(ctx, "student@uni.edu", "Homework 1", "grace@uni.edu", nil)
		require.Error(t, err)
		require.NotErrorIs(t, err, apperrors.ErrProfessorNotFound)
		require.ErrorIs(t, err, userRepo.getUserErr)
		require.Empty(t, notifier.events)
	})

	t.Run("removes stored file when the record cannot be created", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		assignmentRepo := newFakeAssignmentRepo()
		assignmentRepo.createErr = errors.New("insert failed")
		storage := &fakeFileStorage{}
		service := NewAssignmentService(assignmentRepo, userRepo, storage, &recordingNotifier{}, zerolog.Nop())
		userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")

		_, err := service.Upload(ctx, "student@uni.edu", "Homework 1", "grace@uni.edu", nil)
		require.Error(t, err)
		require.Equal(t, []string{"uploads/test-file.pdf"}, storage.deleted)
	})
}

func TestListForStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice when nothing uploaded", func(t *testing.T) {
		service, _, _, _ := newAssignmentServiceForTest(t)

		assignments, err := service.ListForStudent(ctx, "student@uni.edu")
		require.NoError(t, err)
		require.NotNil(t, assignments)
		require.Empty(t, assignments)
	})

	t.Run("returns only the student's own submissions", func(t *testing.T) {
		service, userRepo, _, _ := newAssignmentServiceForTest(t)
		userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")

		_, err := service.Upload(ctx, "a@uni.edu", "A1", "grace@uni.edu", nil)
		require.NoError(t, err)
		_, err = service.Upload(ctx, "b@uni.edu", "B1", "grace@uni.edu", nil)
		require.NoError(t, err)

		assignments, err := service.ListForStudent(ctx, "a@uni.edu")
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		require.Equal(t, "A1", assignments[0].Title)
	})
}

func TestListForProfessor(t *testing.T) {
	ctx := context.Background()

	t.Run("returns inbox and department", func(t *testing.T) {
		service, userRepo, _, _ := newAssignmentServiceForTest(t)
		userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")

		_, err := service.Upload(ctx, "a@uni.edu", "A1", "grace@uni.edu", nil)
		require.NoError(t, err)

		assignments, department, err := service.ListForProfessor(ctx, "grace@uni.edu")
		require.NoError(t, err)
		require.Equal(t, "Computer Science", department)
		require.Len(t, assignments, 1)
	})

	t.Run("unknown professor yields user not found", func(t *testing.T) {
		service, _, _, _ := newAssignmentServiceForTest(t)

		_, _, err := service.ListForProfessor(ctx, "ghost@uni.edu")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AssignmentService, *models.StudentAssignment) {
		service, userRepo, _, _ := newAssignmentServiceForTest(t)
		userRepo.addUser("Prof Grace", "grace@uni.edu", models.RoleProfessor, "Computer Science")
		assignment, err := service.Upload(ctx, "a@uni.edu", "A1", "grace@uni.edu", nil)
		require.NoError(t, err)
		return service, assignment
	}

	t.Run("accept clears feedback", func(t *testing.T) {
		service, assignment := setup(t)

		updated, err := service.Decide(ctx, assignment.ID, "accepted", "irrelevant")
		require.NoError(t, err)
		require.Equal(t, models.StatusAccepted, updated.Status)
		require.Nil(t, updated.Feedback)
	})

	t.Run("reject stores feedback", func(t *testing.T) {
		service, assignment := setup(t)

		updated, err := service.Decide(ctx, assignment.ID, "rejected", "needs citations")
		require.NoError(t, err)
		require.Equal(t, models.StatusRejected, updated.Status)
		require.NotNil(t, updated.Feedback)
		require.Equal(t, "needs citations", *updated.Feedback)
	})

	t.Run("last write wins on repeat decisions", func(t *testing.T) {
		service, assignment := setup(t)

		_, err := service.Decide(ctx, assignment.ID, "accepted", "")
		require.NoError(t, err)

		updated, err := service.Decide(ctx, assignment.ID, "rejected", "changed my mind")
		require.NoError(t, err)
		require.Equal(t, models.StatusRejected, updated.Status)

		updated, err = service.Decide(ctx, assignment.ID, "accepted", "")
		require.NoError(t, err)
		require.Equal(t, models.StatusAccepted, updated.Status)
		require.Nil(t, updated.Feedback)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		service, assignment := setup(t)

		_, err := service.Decide(ctx, assignment.ID, "maybe", "")
		require.ErrorIs(t, err, apperrors.ErrInvalidDecision)
	})

	t.Run("missing assignment yields not found", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.Decide(ctx, 9999, "accepted", "")
		require.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	})
}
