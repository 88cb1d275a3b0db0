// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/planner/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	planController      *controller.PlanController
	calendarController  *controller.CalendarController
	mutationRateLimiter *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	planController *controller.PlanController,
	calendarController *controller.CalendarController,
	mutationRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		planController:      planController,
		calendarController:  calendarController,
		mutationRateLimiter: mutationRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	// Plan routes; mutations are rate limited per user
	if r.planController != nil {
		mutate := []gin.HandlerFunc{}
		if r.mutationRateLimiter != nil {
			mutate = append(mutate, r.mutationRateLimiter.Middleware())
		}

		plans := v1.Group("/plans")
		{
			plans.GET("", r.planController.List)
			plans.GET("/:id", r.planController.Get)
			plans.POST("", append(mutate, r.planController.Create)...)
			plans.PATCH("/:id", append(mutate, r.planController.Update)...)
			plans.POST("/:id/toggle-complete", append(mutate, r.planController.ToggleComplete)...)
			plans.DELETE("/:id", append(mutate, r.planController.Delete)...)
		}
	}

	// Calendar routes
	if r.calendarController != nil {
		cal := v1.Group("/calendar")
		{
			cal.GET("", r.calendarController.Query)
			cal.GET("/summary", r.calendarController.Summary)
			cal.GET("/upcoming", r.calendarController.Upcoming)
			cal.GET("/projection", r.calendarController.Projection)
			cal.GET("/categories", r.calendarController.Categories)
			cal.GET("/totals", r.calendarController.Totals)
		}
	}
}
