// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"github.com/finance-tracker/planner/config"
	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/application/usecase/plan"
	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/infra/server/router"
	"github.com/finance-tracker/planner/internal/integration/adapters"
	"github.com/finance-tracker/planner/internal/integration/cache"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/planner/internal/integration/persistence"
)

// UseCases groups the plan use cases shared by the HTTP API and the CLI.
type UseCases struct {
	ListPlans         *plan.ListPlansUseCase
	CreatePlan        *plan.CreatePlanUseCase
	GetPlan           *plan.GetPlanUseCase
	UpdatePlan        *plan.UpdatePlanUseCase
	ToggleCompleted   *plan.ToggleCompletedUseCase
	DeletePlan        *plan.DeletePlanUseCase
	QueryCalendar     *plan.QueryCalendarUseCase
	SummarizePlans    *plan.SummarizePlansUseCase
	UpcomingPlans     *plan.UpcomingPlansUseCase
	DailyProjection   *plan.DailyProjectionUseCase
	CategoryBreakdown *plan.CategoryBreakdownUseCase
	DateTotals        *plan.DateTotalsUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	TokenService adapter.TokenService
	UseCases     UseCases
	Router       *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, backends *Backends) (*Injector, error) {
	if err := validateBackends(cfg, backends); err != nil {
		return nil, err
	}

	mode, err := calendar.ParseFilterMode(cfg.Planner.FilterMode)
	if err != nil {
		return nil, err
	}

	clock := backends.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	var records adapter.PlanRecordStore
	switch cfg.Planner.StoreBackend {
	case config.BackendDatabase:
		records = persistence.NewPlanRepository(backends.DB)
	case config.BackendRedis:
		records = persistence.NewRedisPlanRepository(backends.Redis, cfg.Planner.StoreTTL)
	default:
		records = persistence.NewMemoryPlanRepository()
	}

	var summaryCache adapter.SummaryCache
	if backends.Redis != nil {
		summaryCache = cache.NewRedisSummaryCache(backends.Redis, cfg.Planner.SummaryCacheTTL)
	} else {
		summaryCache = cache.NewMemorySummaryCache(cfg.Planner.SummaryCacheMax, cfg.Planner.SummaryCacheTTL)
	}

	stores := plan.NewStoreFactory(records,
		plan.WithTimeout(cfg.Planner.StoreTimeout),
		plan.WithNotifier(plan.Notifiers(plan.NewCacheInvalidator(summaryCache), backends.Events)),
		plan.WithClock(clock),
		plan.WithLogger(slog.Default()),
	)
	opts := plan.QueryOptions{
		Mode:          mode,
		Titler:        calendar.AmountTitler{Symbol: cfg.Planner.CurrencySymbol},
		MaxWindowDays: cfg.Planner.MaxWindowDays,
	}

	// Create use cases
	uc := UseCases{
		ListPlans:         plan.NewListPlansUseCase(stores, opts),
		CreatePlan:        plan.NewCreatePlanUseCase(stores),
		GetPlan:           plan.NewGetPlanUseCase(stores),
		UpdatePlan:        plan.NewUpdatePlanUseCase(stores),
		ToggleCompleted:   plan.NewToggleCompletedUseCase(stores),
		DeletePlan:        plan.NewDeletePlanUseCase(stores),
		QueryCalendar:     plan.NewQueryCalendarUseCase(stores, opts),
		SummarizePlans:    plan.NewSummarizePlansUseCase(stores, opts, summaryCache),
		UpcomingPlans:     plan.NewUpcomingPlansUseCase(stores, opts, clock),
		DailyProjection:   plan.NewDailyProjectionUseCase(stores, opts),
		CategoryBreakdown: plan.NewCategoryBreakdownUseCase(stores, opts),
		DateTotals:        plan.NewDateTotalsUseCase(stores, opts),
	}

	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Create controllers
	healthController := controller.NewHealthController(backends.DBHealth, backends.RedisHealth)

	planController := controller.NewPlanController(
		uc.ListPlans,
		uc.CreatePlan,
		uc.GetPlan,
		uc.UpdatePlan,
		uc.ToggleCompleted,
		uc.DeletePlan,
	)

	calendarController := controller.NewCalendarController(
		uc.QueryCalendar,
		uc.SummarizePlans,
		uc.UpcomingPlans,
		uc.DailyProjection,
		uc.CategoryBreakdown,
		uc.DateTotals,
		cfg.Planner.UpcomingDays,
	)

	// Create middleware
	mutationRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.Server.MutationRateLimit,
		cfg.Server.MutationRateWindow,
		middleware.ByUser,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(healthController, planController, calendarController, mutationRateLimiter, authMiddleware)

	return &Injector{
		Config:       cfg,
		TokenService: tokenService,
		UseCases:     uc,
		Router:       r,
	}, nil
}
