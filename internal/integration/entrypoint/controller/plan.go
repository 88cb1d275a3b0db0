// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/planner/internal/application/usecase/plan"
	"github.com/finance-tracker/planner/internal/domain/calendar"
	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/dto"
)

// PlanController handles financial plan endpoints.
type PlanController struct {
	listUseCase   *plan.ListPlansUseCase
	createUseCase *plan.CreatePlanUseCase
	getUseCase    *plan.GetPlanUseCase
	updateUseCase *plan.UpdatePlanUseCase
	toggleUseCase *plan.ToggleCompletedUseCase
	deleteUseCase *plan.DeletePlanUseCase
}

// NewPlanController creates a new plan controller instance.
func NewPlanController(
	listUseCase *plan.ListPlansUseCase,
	createUseCase *plan.CreatePlanUseCase,
	getUseCase *plan.GetPlanUseCase,
	updateUseCase *plan.UpdatePlanUseCase,
	toggleUseCase *plan.ToggleCompletedUseCase,
	deleteUseCase *plan.DeletePlanUseCase,
) *PlanController {
	return &PlanController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		toggleUseCase: toggleUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /plans requests. start_date and end_date narrow the list
// to plans matching the window; both or neither must be given.
func (c *PlanController) List(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	input := plan.ListPlansInput{Scope: scope}

	startDate, endDate := ctx.Query("start_date"), ctx.Query("end_date")
	if startDate != "" || endDate != "" {
		w, err := calendar.ParseWindow(startDate, endDate)
		if err != nil {
			handlePlanError(ctx, err)
			return
		}
		input.Window = &w
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanListResponse(output.Plans))
}

// Create handles POST /plans requests.
func (c *PlanController) Create(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	var req dto.CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMalformedPlan),
		})
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), plan.CreatePlanInput{
		Scope: scope,
		Draft: draft,
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPlanResponse(output.Plan))
}

// Get handles GET /plans/:id requests.
func (c *PlanController) Get(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), plan.GetPlanInput{
		Scope:  scope,
		PlanID: ctx.Param("id"),
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanResponse(output.Plan))
}

// Update handles PATCH /plans/:id requests.
func (c *PlanController) Update(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMalformedPlan),
		})
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), plan.UpdatePlanInput{
		Scope:  scope,
		PlanID: ctx.Param("id"),
		Patch:  patch,
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanResponse(output.Plan))
}

// ToggleComplete handles POST /plans/:id/toggle-complete requests.
func (c *PlanController) ToggleComplete(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), plan.ToggleCompletedInput{
		Scope:  scope,
		PlanID: ctx.Param("id"),
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanResponse(output.Plan))
}

// Delete handles DELETE /plans/:id requests. Deleting an unknown plan is not
// an error; the response reports whether anything was removed.
func (c *PlanController) Delete(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), plan.DeletePlanInput{
		Scope:  scope,
		PlanID: ctx.Param("id"),
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeletePlanResponse{Deleted: output.Deleted})
}
