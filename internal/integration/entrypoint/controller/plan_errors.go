package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/middleware"
)

// handlePlanError maps plan domain errors to HTTP responses.
func handlePlanError(ctx *gin.Context, err error) {
	var planErr *domainerror.PlanError
	if errors.As(err, &planErr) {
		status := getStatusCodeForPlanError(planErr.Code)
		if status == http.StatusServiceUnavailable {
			slog.Error("plan storage unavailable", "path", ctx.FullPath(), "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error:   planErr.Message,
			Code:    string(planErr.Code),
			Details: planErr.Field,
		})
		return
	}

	slog.Error("unexpected plan error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An unexpected error occurred",
	})
}

// getStatusCodeForPlanError returns the HTTP status code for a plan error code.
func getStatusCodeForPlanError(code domainerror.PlanErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTitle,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidPlanType,
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeInvalidStartDate,
		domainerror.ErrCodeEndBeforeStart,
		domainerror.ErrCodeInvalidRecurringType,
		domainerror.ErrCodeMissingRecurringType,
		domainerror.ErrCodeMalformedPlan,
		domainerror.ErrCodeInvalidDateRange:
		return http.StatusBadRequest
	case domainerror.ErrCodePlanNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requireScope reads the plan scope of the authenticated user or answers 401.
func requireScope(ctx *gin.Context) (string, bool) {
	scope, ok := middleware.GetScopeFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", false
	}
	return scope, true
}
