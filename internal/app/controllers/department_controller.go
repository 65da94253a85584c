package controllers

import (
	"net/http"

	"github.com/eduflow/eduflow/internal/app/models/dto"
	"github.com/eduflow/eduflow/internal/app/services"
	"github.com/eduflow/eduflow/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DepartmentController handles department management
type DepartmentController struct {
	departmentService *services.DepartmentService
	logger            zerolog.Logger
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService, logger zerolog.Logger) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
		logger:            logger,
	}
}

// Create adds a new department
func (c *DepartmentController) Create(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	department, err := c.departmentService.Create(ctx.Request.Context(), req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(department, "Department created"))
}

// List returns every department. Public so the signup form can populate its
// dropdown.
func (c *DepartmentController) List(ctx *gin.Context) {
	departments, err := c.departmentService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(departments, ""))
}
