package seed

import (
	"context"
	"errors"

	appModels "github.com/eduflow/eduflow/internal/app/models"
	appRepos "github.com/eduflow/eduflow/internal/app/repositories"
	"github.com/eduflow/eduflow/internal/config"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/eduflow/eduflow/internal/pkg/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Default admin credentials. The password is only used when the account does
// not exist yet.
const (
	defaultAdminEmail    = "admin@eduflow.app"
	defaultAdminName     = "EduFlow Admin"
	defaultAdminPassword = "admin12345"
)

// adminCredentials resolves the admin account email and password, preferring
// ADMIN_EMAIL and ADMIN_PASSWORD over the built-in defaults.
func adminCredentials() (email, password string) {
	return config.GetEnv("ADMIN_EMAIL", defaultAdminEmail),
		config.GetEnv("ADMIN_PASSWORD", defaultAdminPassword)
}

var defaultDepartments = []string{
	"Computer Science",
	"Electrical Engineering",
	"Mathematics",
}

// CreateDefaultData seeds the default admin account and a starter set of
// departments. Existing records are left untouched; individual failures are
// collected and returned without stopping the rest of the seeding.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	for _, name := range defaultDepartments {
		department := &appModels.Department{Name: name}
		if err := departmentRepo.Create(ctx, department); err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	adminEmail, adminPassword := adminCredentials()

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return errors.Join(finalErr, err)
	}

	if !exists {
		passwordHash, err := auth.HashPassword(adminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			return errors.Join(finalErr, err)
		}

		admin := &appModels.User{
			FullName: defaultAdminName,
			Email:    adminEmail,
			Password: passwordHash,
			Role:     appModels.RoleAdmin,
		}

		if _, err := userRepo.CreateUser(ctx, admin); err != nil {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
		}
	}

	return finalErr
}
