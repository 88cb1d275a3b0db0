package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/application/usecase/plan"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/dto"
)

// CalendarController handles calendar and projection endpoints.
type CalendarController struct {
	queryUseCase      *plan.QueryCalendarUseCase
	summaryUseCase    *plan.SummarizePlansUseCase
	upcomingUseCase   *plan.UpcomingPlansUseCase
	projectionUseCase *plan.DailyProjectionUseCase
	categoryUseCase   *plan.CategoryBreakdownUseCase
	totalsUseCase     *plan.DateTotalsUseCase
	upcomingDays      int
}

// NewCalendarController creates a new calendar controller instance.
// upcomingDays is used when a request does not name a horizon.
func NewCalendarController(
	queryUseCase *plan.QueryCalendarUseCase,
	summaryUseCase *plan.SummarizePlansUseCase,
	upcomingUseCase *plan.UpcomingPlansUseCase,
	projectionUseCase *plan.DailyProjectionUseCase,
	categoryUseCase *plan.CategoryBreakdownUseCase,
	totalsUseCase *plan.DateTotalsUseCase,
	upcomingDays int,
) *CalendarController {
	return &CalendarController{
		queryUseCase:      queryUseCase,
		summaryUseCase:    summaryUseCase,
		upcomingUseCase:   upcomingUseCase,
		projectionUseCase: projectionUseCase,
		categoryUseCase:   categoryUseCase,
		totalsUseCase:     totalsUseCase,
		upcomingDays:      upcomingDays,
	}
}

// Query handles GET /calendar requests.
func (c *CalendarController) Query(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	output, err := c.queryUseCase.Execute(ctx.Request.Context(), plan.QueryCalendarInput{
		Scope:     scope,
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalendarResponse(output))
}

// Summary handles GET /calendar/summary requests.
func (c *CalendarController) Summary(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	balance, ok := currentBalance(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), plan.SummarizePlansInput{
		Scope:          scope,
		StartDate:      ctx.Query("start_date"),
		EndDate:        ctx.Query("end_date"),
		CurrentBalance: balance,
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output.Window, output.Summary))
}

// Upcoming handles GET /calendar/upcoming requests.
func (c *CalendarController) Upcoming(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	days := c.upcomingDays
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "days must be a positive integer",
				Details: "days",
			})
			return
		}
		days = parsed
	}

	output, err := c.upcomingUseCase.Execute(ctx.Request.Context(), plan.UpcomingPlansInput{
		Scope: scope,
		Days:  days,
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpcomingResponse(output))
}

// Projection handles GET /calendar/projection requests.
func (c *CalendarController) Projection(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	balance, ok := currentBalance(ctx)
	if !ok {
		return
	}

	output, err := c.projectionUseCase.Execute(ctx.Request.Context(), plan.DailyProjectionInput{
		Scope:          scope,
		StartDate:      ctx.Query("start_date"),
		EndDate:        ctx.Query("end_date"),
		CurrentBalance: balance,
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectionResponse(output))
}

// Categories handles GET /calendar/categories requests. type defaults to expense.
func (c *CalendarController) Categories(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	balance, ok := currentBalance(ctx)
	if !ok {
		return
	}

	planType := entity.PlanType(ctx.DefaultQuery("type", string(entity.PlanTypeExpense)))

	output, err := c.categoryUseCase.Execute(ctx.Request.Context(), plan.CategoryBreakdownInput{
		Scope:          scope,
		StartDate:      ctx.Query("start_date"),
		EndDate:        ctx.Query("end_date"),
		Type:           planType,
		CurrentBalance: balance,
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(planType, output))
}

// Totals handles GET /calendar/totals requests.
func (c *CalendarController) Totals(ctx *gin.Context) {
	scope, ok := requireScope(ctx)
	if !ok {
		return
	}

	output, err := c.totalsUseCase.Execute(ctx.Request.Context(), plan.DateTotalsInput{
		Scope: scope,
		Date:  ctx.Query("date"),
		Month: ctx.Query("month"),
	})
	if err != nil {
		handlePlanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTotalsResponse(output))
}

// currentBalance reads the optional current_balance query parameter. It
// answers 400 itself when the value is not a number.
func currentBalance(ctx *gin.Context) (decimal.Decimal, bool) {
	raw := ctx.Query("current_balance")
	if raw == "" {
		return decimal.Zero, true
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "current_balance must be a number",
			Details: "current_balance",
		})
		return decimal.Zero, false
	}
	return balance, true
}
