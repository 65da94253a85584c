package services

import (
	"context"
	"testing"
	"time"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/app/models/dto"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/eduflow/eduflow/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *fakeUserRepo, *fakeResetCodeRepo, *recordingEmailService) {
	t.Helper()

	userRepo := newFakeUserRepo()
	resetCodeRepo := newFakeResetCodeRepo(userRepo)
	emailService := &recordingEmailService{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})

	service := NewAuthService(userRepo, resetCodeRepo, jwtService, emailService, zerolog.Nop())
	return service, userRepo, resetCodeRepo, emailService
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and returns token", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceForTest(t)

		token, err := service.Register(ctx, &dto.RegisterRequest{
			FullName:   "Ada Lovelace",
			Email:      "ada@uni.edu",
			Password:   "secret-password",
			Role:       models.RoleStudent,
			Department: "Computer Science",
		})
		require.NoError(t, err)
		require.NotEmpty(t, token.AccessToken)
		require.Equal(t, "student", token.Role)

		user, err := userRepo.GetUserByEmail(ctx, "ada@uni.edu")
		require.NoError(t, err)
		require.NotEqual(t, "secret-password", user.Password, "password must be stored hashed")
		require.True(t, auth.CheckPassword(user.Password, "secret-password"))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceForTest(t)
		userRepo.addUser("Ada Lovelace", "ada@uni.edu", models.RoleStudent, "Computer Science")

		_, err := service.Register(ctx, &dto.RegisterRequest{
			FullName:   "Another Ada",
			Email:      "ada@uni.edu",
			Password:   "secret-password",
			Role:       models.RoleStudent,
			Department: "Computer Science",
		})
		require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("rejects admin self-registration", func(t *testing.T) {
		service, _, _, _ := newAuthServiceForTest(t)

		_, err := service.Register(ctx, &dto.RegisterRequest{
			FullName:   "Sneaky Admin",
			Email:      "admin@uni.edu",
			Password:   "secret-password",
			Role:       models.RoleAdmin,
			Department: "Computer Science",
		})
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token for valid credentials", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceForTest(t)
		hash, err := auth.HashPassword("correct-password")
		require.NoError(t, err)
		user := userRepo.addUser("Ada Lovelace", "ada@uni.edu", models.RoleProfessor, "Computer Science")
		user.Password = hash

		token, err := service.Login(ctx, &dto.LoginRequest{Email: "ada@uni.edu", Password: "correct-password"})
		require.NoError(t, err)
		require.Equal(t, "professor", token.Role)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceForTest(t)
		hash, err := auth.HashPassword("correct-password")
		require.NoError(t, err)
		user := userRepo.addUser("Ada Lovelace", "ada@uni.edu", models.RoleProfessor, "Computer Science")
		user.Password = hash

		_, err = service.Login(ctx, &dto.LoginRequest{Email: "ada@uni.edu", Password: "wrong-password"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email yields user not found", func(t *testing.T) {
		service, _, _, _ := newAuthServiceForTest(t)

		_, err := service.Login(ctx, &dto.LoginRequest{Email: "ghost@uni.edu", Password: "whatever"})
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("stores code and emails it", func(t *testing.T) {
		service, userRepo, resetCodeRepo, emailService := newAuthServiceForTest(t)
		userRepo.addUser("Ada Lovelace", "ada@uni.edu", models.RoleStudent, "Computer Science")

		require.NoError(t, service.ForgotPassword(ctx, "ada@uni.edu"))

		record, err := resetCodeRepo.Get(ctx, "ada@uni.edu")
		require.NoError(t, err)
		require.Len(t, record.Code, 6)
		require.True(t, record.ExpiresAt.After(time.Now()))

		require.Len(t, emailService.sent, 1)
		require.Contains(t, emailService.sent[0].TextBody, record.Code)
	})

	t.Run("repeat request overwrites previous code", func(t *testing.T) {
		service, userRepo, resetCodeRepo, _ := newAuthServiceForTest(t)
		userRepo.addUser("Ada Lovelace", "ada@uni.edu", models.RoleStudent, "Computer Science")

		require.NoError(t, service.ForgotPassword(ctx, "ada@uni.edu"))
		first, err := resetCodeRepo.Get(ctx, "ada@uni.edu")
		require.NoError(t, err)

		require.NoError(t, service.ForgotPassword(ctx, "ada@uni.edu"))
		second, err := resetCodeRepo.Get(ctx, "ada@uni.edu")
		require.NoError(t, err)

		// One active code per email; the second request replaced the record
		require.NotSame(t, first, second)
		require.False(t, second.ExpiresAt.Before(first.ExpiresAt))
	})

	t.Run("unknown email yields user not found", func(t *testing.T) {
		service, _, _, _ := newAuthServiceForTest(t)
		require.ErrorIs(t, service.ForgotPassword(ctx, "ghost@uni.edu"), apperrors.ErrUserNotFound)
	})

	t.Run("email delivery failure is swallowed", func(t *testing.T) {
		service, userRepo, resetCodeRepo, emailService := newAuthServiceForTest(t)
		userRepo.addUser("Ada Lovelace", "ada@uni.edu", models.RoleStudent, "Computer Science")
		emailService.failure = context.DeadlineExceeded

		require.NoError(t, service.ForgotPassword(ctx, "ada@uni.edu"))

		// The code is still stored for a retry
		_, err := resetCodeRepo.Get(ctx, "ada@uni.edu")
		require.NoError(t, err)
	})
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthService, *fakeUserRepo, *fakeResetCodeRepo) {
		service, userRepo, resetCodeRepo, _ := newAuthServiceForTest(t)
		userRepo.addUser("Ada Lovelace", "ada@uni.edu", models.RoleStudent, "Computer Science")
		require.NoError(t, resetCodeRepo.Upsert(ctx, "ada@uni.edu", "123456", time.Now().Add(10*time.Minute)))
		return service, userRepo, resetCodeRepo
	}

	t.Run("success sets password and consumes code", func(t *testing.T) {
		service, userRepo, resetCodeRepo := setup(t)

		err := service.VerifyOTP(ctx, &dto.VerifyOTPRequest{
			Email:           "ada@uni.edu",
			OTP:             "123456",
			Password:        "new-password",
			ConfirmPassword: "new-password",
		})
		require.NoError(t, err)

		user, err := userRepo.GetUserByEmail(ctx, "ada@uni.edu")
		require.NoError(t, err)
		require.True(t, auth.CheckPassword(user.Password, "new-password"))

		// Single use: the code is gone
		_, err = resetCodeRepo.Get(ctx, "ada@uni.edu")
		require.ErrorIs(t, err, apperrors.ErrResetCodeNotFound)
	})

	t.Run("mismatched code leaves record valid", func(t *testing.T) {
		service, _, resetCodeRepo := setup(t)

		err := service.VerifyOTP(ctx, &dto.VerifyOTPRequest{
			Email:           "ada@uni.edu",
			OTP:             "654321",
			Password:        "new-password",
			ConfirmPassword: "new-password",
		})
		require.ErrorIs(t, err, apperrors.ErrResetCodeMismatch)

		record, err := resetCodeRepo.Get(ctx, "ada@uni.edu")
		require.NoError(t, err)
		require.Equal(t, "123456", record.Code)
	})

	t.Run("expired code is deleted on detection", func(t *testing.T) {
		service, _, resetCodeRepo := setup(t)
		require.NoError(t, resetCodeRepo.Upsert(ctx, "ada@uni.edu", "123456", time.Now().Add(-time.Minute)))

		err := service.VerifyOTP(ctx, &dto.VerifyOTPRequest{
			Email:           "ada@uni.edu",
			OTP:             "123456",
			Password:        "new-password",
			ConfirmPassword: "new-password",
		})
		require.ErrorIs(t, err, apperrors.ErrResetCodeExpired)

		_, err = resetCodeRepo.Get(ctx, "ada@uni.edu")
		require.ErrorIs(t, err, apperrors.ErrResetCodeNotFound)
	})

	t.Run("no code on file yields not found", func(t *testing.T) {
		service, _, _, _ := newAuthServiceForTest(t)

		err := service.VerifyOTP(ctx, &dto.VerifyOTPRequest{
			Email:           "ada@uni.edu",
			OTP:             "123456",
			Password:        "new-password",
			ConfirmPassword: "new-password",
		})
		require.ErrorIs(t, err, apperrors.ErrResetCodeNotFound)
	})

	t.Run("password confirmation mismatch fails validation", func(t *testing.T) {
		service, _, _ := setup(t)

		err := service.VerifyOTP(ctx, &dto.VerifyOTPRequest{
			Email:           "ada@uni.edu",
			OTP:             "123456",
			Password:        "new-password",
			ConfirmPassword: "other-password",
		})
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
