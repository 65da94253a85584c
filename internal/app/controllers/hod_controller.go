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

// HodController handles the department head review workflow
type HodController struct {
	hodService *services.HodService
	logger     zerolog.Logger
}

// NewHodController creates a new HodController
func NewHodController(hodService *services.HodService, logger zerolog.Logger) *HodController {
	return &HodController{
		hodService: hodService,
		logger:     logger,
	}
}

// Forward accepts a multipart forwarded assignment owned by the calling HOD
func (c *HodController) Forward(ctx *gin.Context) {
	title := ctx.PostForm("title")
	studentEmail := ctx.PostForm("studentEmail")
	professorEmail := ctx.PostForm("professor")
	status := ctx.PostForm("status")
	if title == "" || studentEmail == "" || professorEmail == "" {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "title, studentEmail and professor are required"))
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "assignment file is required"))
		return
	}

	hodEmail := middleware.GetEmail(ctx)

	assignment, err := c.hodService.Forward(ctx.Request.Context(), hodEmail, studentEmail, title, professorEmail, status, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment, "Assignment forwarded"))
}

// List returns the calling HOD's forwarded assignments, filtered to
// professors currently in the HOD's department
func (c *HodController) List(ctx *gin.Context) {
	hodEmail := middleware.GetEmail(ctx)

	assignments, err := c.hodService.ListForHod(ctx.Request.Context(), hodEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments, ""))
}

// Decide records an approval decision on a forwarded assignment
func (c *HodController) Decide(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid assignment id"))
		return
	}

	var req dto.HodDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	assignment, err := c.hodService.Decide(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Decision recorded"))
}
