package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/eduflow/eduflow/internal/app/controllers"
	appMigrations "github.com/eduflow/eduflow/internal/app/migrations"
	appRepos "github.com/eduflow/eduflow/internal/app/repositories"
	appRoutes "github.com/eduflow/eduflow/internal/app/routes"
	appServices "github.com/eduflow/eduflow/internal/app/services"
	"github.com/eduflow/eduflow/internal/config"
	"github.com/eduflow/eduflow/internal/db"
	appMiddleware "github.com/eduflow/eduflow/internal/middleware"
	pkgAuth "github.com/eduflow/eduflow/internal/pkg/auth"
	"github.com/eduflow/eduflow/internal/pkg/email"
	"github.com/eduflow/eduflow/internal/pkg/filestorage"
	"github.com/eduflow/eduflow/internal/pkg/logger"
	"github.com/eduflow/eduflow/internal/pkg/websocket"
	"github.com/eduflow/eduflow/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	AssignmentService      *appServices.AssignmentService
	HodService             *appServices.HodService
	AdminService           *appServices.AdminService
	DepartmentService      *appServices.DepartmentService
	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	ProfessorController    *appControllers.ProfessorController
	HodController          *appControllers.HodController
	AdminController        *appControllers.AdminController
	DepartmentController   *appControllers.DepartmentController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	EmailService           email.Service
	FileStorage            *filestorage.LocalStorage
	Hub                    *websocket.Hub
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed default data after migrations. A partial seed is logged but does
	// not block startup.
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage serves saved files under the /uploads static route
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	fileStorageBaseURL := strings.TrimRight(baseURL, "/") + "/uploads"

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExpiry(24 * time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewSendGridService(email.SendGridConfig{
		APIKey:    cfg.Mail.APIKey,
		FromName:  cfg.Mail.FromName,
		FromEmail: cfg.Mail.FromEmail,
	}, lgr)

	// The notification hub runs for the lifetime of the process
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.PasswordResetCodeRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.StudentAssignmentRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		deps.Hub,
		lgr,
	)
	deps.HodService = appServices.NewHodService(
		deps.Repos.ForwardedAssignmentRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		lgr,
	)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.UserRepository,
		deps.EmailService,
		lgr,
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.AssignmentService, lgr)
	deps.ProfessorController = appControllers.NewProfessorController(deps.AssignmentService, lgr)
	deps.HodController = appControllers.NewHodController(deps.HodService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.Hub, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.RequestID())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.ProfessorController,
		deps.HodController,
		deps.AdminController,
		deps.DepartmentController,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	return router
}
