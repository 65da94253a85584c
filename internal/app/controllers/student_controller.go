package controllers

import (
	"net/http"

	"github.com/eduflow/eduflow/internal/app/models/dto"
	"github.com/eduflow/eduflow/internal/app/services"
	"github.com/eduflow/eduflow/internal/middleware"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StudentController handles student assignment uploads and listings
type StudentController struct {
	assignmentService *services.AssignmentService
	logger            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(assignmentService *services.AssignmentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// Upload accepts a multipart assignment submission
func (c *StudentController) Upload(ctx *gin.Context) {
	title := ctx.PostForm("title")
	professorEmail := ctx.PostForm("professor")
	if title == "" || professorEmail == "" {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "title and professor are required"))
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "assignment file is required"))
		return
	}

	studentEmail := middleware.GetEmail(ctx)

	assignment, err := c.assignmentService.Upload(ctx.Request.Context(), studentEmail, title, professorEmail, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment, "Assignment uploaded"))
}

// List returns the calling student's own submissions
func (c *StudentController) List(ctx *gin.Context) {
	studentEmail := ctx.Query("email")
	if studentEmail == "" {
		studentEmail = middleware.GetEmail(ctx)
	}

	assignments, err := c.assignmentService.ListForStudent(ctx.Request.Context(), studentEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AssignmentListResponse{
		Success:     true,
		Assignments: assignments,
	})
}
