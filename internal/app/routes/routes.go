package routes

import (
	"net/http"

	"github.com/eduflow/eduflow/internal/app/controllers"
	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	professorController *controllers.ProfessorController,
	hodController *controllers.HodController,
	adminController *controllers.AdminController,
	departmentController *controllers.DepartmentController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/verify-otp", authController.VerifyOTP)
	}

	// Department listing is public so the signup form can populate its
	// dropdown before the user has an account
	v1.GET("/departments", departmentController.List)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	student := authenticated.Group("/student")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.POST("/assignments", studentController.Upload)
		student.GET("/assignments", studentController.List)
	}

	professor := authenticated.Group("/professor")
	professor.Use(authMiddleware.RoleRequired(models.RoleProfessor))
	{
		professor.GET("/assignments", professorController.List)
		professor.POST("/assignments/:id/decision", professorController.Decide)
	}

	hod := authenticated.Group("/hod")
	hod.Use(authMiddleware.RoleRequired(models.RoleHod))
	{
		hod.POST("/assignments", hodController.Forward)
		hod.GET("/assignments", hodController.List)
		hod.POST("/assignments/:id/decision", hodController.Decide)
	}

	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/counts", adminController.Counts)
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users", adminController.CreateUser)
		admin.PUT("/users/:id", adminController.UpdateUser)
		admin.DELETE("/users/:id", adminController.DeleteUser)
		admin.POST("/departments", departmentController.Create)
		admin.GET("/notifications/ws", notificationController.Connect)
	}
}
