package services

import (
	"context"
	"testing"

	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDepartmentService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and lists departments", func(t *testing.T) {
		service := NewDepartmentService(newFakeDepartmentRepo(), zerolog.Nop())

		created, err := service.Create(ctx, "Computer Science")
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		departments, err := service.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, departments, 1)
		require.Equal(t, "Computer Science", departments[0].Name)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		service := NewDepartmentService(newFakeDepartmentRepo(), zerolog.Nop())

		_, err := service.Create(ctx, "Computer Science")
		require.NoError(t, err)

		_, err = service.Create(ctx, "Computer Science")
		require.ErrorIs(t, err, apperrors.ErrDepartmentAlreadyExists)
	})

	t.Run("empty list is a non-nil slice", func(t *testing.T) {
		service := NewDepartmentService(newFakeDepartmentRepo(), zerolog.Nop())

		departments, err := service.GetAll(ctx)
		require.NoError(t, err)
		require.NotNil(t, departments)
		require.Empty(t, departments)
	})
}
