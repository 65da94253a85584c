package controllers

import (
	"net/http"
	"strconv"

	"github.com/eduflow/eduflow/internal/app/models/dto"
	"github.com/eduflow/eduflow/internal/app/services"
	"github.com/eduflow/eduflow/internal/middleware"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProfessorController handles the professor review inbox
type ProfessorController struct {
	assignmentService *services.AssignmentService
	logger            zerolog.Logger
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(assignmentService *services.AssignmentService, logger zerolog.Logger) *ProfessorController {
	return &ProfessorController{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// List returns submissions addressed to the calling professor together with
// the professor's department
func (c *ProfessorController) List(ctx *gin.Context) {
	professorEmail := middleware.GetEmail(ctx)

	assignments, department, err := c.assignmentService.ListForProfessor(ctx.Request.Context(), professorEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfessorAssignmentsResponse{
		Success:     true,
		Assignments: assignments,
		Department:  department,
	})
}

// Decide records an accept/reject decision on a submission
func (c *ProfessorController) Decide(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid assignment id"))
		return
	}

	var req dto.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	assignment, err := c.assignmentService.Decide(ctx.Request.Context(), id, req.Status, req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Decision recorded"))
}
