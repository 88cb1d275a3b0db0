package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/application/usecase/plan"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/planner/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/planner/internal/integration/persistence"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type failingRecords struct{}

func (failingRecords) List(context.Context, string) ([]*entity.FinancialPlan, error) {
	return nil, errors.New("connection refused")
}

func (failingRecords) Put(context.Context, string, []*entity.FinancialPlan) error {
	return errors.New("connection refused")
}

type testAPI struct {
	router *gin.Engine
	userID uuid.UUID
}

func newTestAPI(t *testing.T, records adapter.PlanRecordStore) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := plan.NewStoreFactory(records)
	opts := plan.DefaultQueryOptions()
	clock := fixedClock{t: time.Date(2024, time.June, 20, 9, 0, 0, 0, time.UTC)}

	plans := NewPlanController(
		plan.NewListPlansUseCase(stores, opts),
		plan.NewCreatePlanUseCase(stores),
		plan.NewGetPlanUseCase(stores),
		plan.NewUpdatePlanUseCase(stores),
		plan.NewToggleCompletedUseCase(stores),
		plan.NewDeletePlanUseCase(stores),
	)
	cal := NewCalendarController(
		plan.NewQueryCalendarUseCase(stores, opts),
		plan.NewSummarizePlansUseCase(stores, opts, nil),
		plan.NewUpcomingPlansUseCase(stores, opts, clock),
		plan.NewDailyProjectionUseCase(stores, opts),
		plan.NewCategoryBreakdownUseCase(stores, opts),
		plan.NewDateTotalsUseCase(stores, opts),
		7,
	)

	api := &testAPI{router: gin.New(), userID: uuid.New()}
	authed := api.router.Group("/api/v1", func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			c.Set(string(middleware.UserIDKey), api.userID)
		}
		c.Next()
	})
	authed.GET("/plans", plans.List)
	authed.POST("/plans", plans.Create)
	authed.GET("/plans/:id", plans.Get)
	authed.PATCH("/plans/:id", plans.Update)
	authed.POST("/plans/:id/toggle-complete", plans.ToggleComplete)
	authed.DELETE("/plans/:id", plans.Delete)
	authed.GET("/calendar", cal.Query)
	authed.GET("/calendar/summary", cal.Summary)
	authed.GET("/calendar/upcoming", cal.Upcoming)
	authed.GET("/calendar/projection", cal.Projection)
	authed.GET("/calendar/categories", cal.Categories)
	authed.GET("/calendar/totals", cal.Totals)
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testAPI) create(t *testing.T, body map[string]any) dto.PlanResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/plans", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.PlanResponse](t, w)
}

func rent() map[string]any {
	return map[string]any{
		"title":          "Rent",
		"amount":         "400",
		"type":           "expense",
		"category":       "住居費",
		"start_date":     "2024-06-27",
		"is_recurring":   true,
		"recurring_type": "monthly",
	}
}

func salary() map[string]any {
	return map[string]any{
		"title":      "Salary",
		"amount":     1000,
		"type":       "income",
		"category":   "給与",
		"start_date": "2024-06-25",
	}
}

func TestPlanController_CRUD(t *testing.T) {
	api := newTestAPI(t, persistence.NewMemoryPlanRepository())

	created := api.create(t, rent())
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Rent", created.Title)
	require.NotNil(t, created.RecurringType)
	assert.Equal(t, "monthly", *created.RecurringType)

	w := api.do(t, http.MethodGet, "/api/v1/plans/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[dto.PlanResponse](t, w).ID)

	w = api.do(t, http.MethodPatch, "/api/v1/plans/"+created.ID, map[string]any{
		"title":          "Rent (new flat)",
		"is_recurring":   false,
		"recurring_type": nil,
		"end_date":       "2024-06-30",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.PlanResponse](t, w)
	assert.Equal(t, "Rent (new flat)", updated.Title)
	assert.Nil(t, updated.RecurringType)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2024-06-30", *updated.EndDate)

	w = api.do(t, http.MethodPatch, "/api/v1/plans/"+created.ID, map[string]any{"end_date": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[dto.PlanResponse](t, w).EndDate)

	w = api.do(t, http.MethodPost, "/api/v1/plans/"+created.ID+"/toggle-complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.PlanResponse](t, w).Completed)

	w = api.do(t, http.MethodGet, "/api/v1/plans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[dto.PlanListResponse](t, w).Plans, 1)

	w = api.do(t, http.MethodDelete, "/api/v1/plans/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.DeletePlanResponse](t, w).Deleted)

	w = api.do(t, http.MethodDelete, "/api/v1/plans/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.DeletePlanResponse](t, w).Deleted)

	w = api.do(t, http.MethodGet, "/api/v1/plans/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlanController_Validation(t *testing.T) {
	api := newTestAPI(t, persistence.NewMemoryPlanRepository())

	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantCode  string
		wantField string
	}{
		{"blank title", func(b map[string]any) { b["title"] = "  " }, "PLN-010001", "title"},
		{"zero amount", func(b map[string]any) { b["amount"] = "0" }, "PLN-010002", "amount"},
		{"bad type", func(b map[string]any) { b["type"] = "transfer" }, "PLN-010003", "type"},
		{"bad start date", func(b map[string]any) { b["start_date"] = "27/06/2024" }, "PLN-010005", "start_date"},
		{"end before start", func(b map[string]any) { b["end_date"] = "2024-06-01" }, "PLN-010006", "end_date"},
		{"missing cadence", func(b map[string]any) { delete(b, "recurring_type") }, "PLN-010008", "recurring_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := rent()
			tt.mutate(body)

			w := api.do(t, http.MethodPost, "/api/v1/plans", body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			resp := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantField, resp.Details)
		})
	}

	w := api.do(t, http.MethodGet, "/api/v1/plans", nil)
	assert.Empty(t, decode[dto.PlanListResponse](t, w).Plans)
}

func TestPlanController_RequiresUser(t *testing.T) {
	api := newTestAPI(t, persistence.NewMemoryPlanRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	req.Header.Set("X-Anonymous", "1")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlanController_StorageUnavailable(t *testing.T) {
	api := newTestAPI(t, failingRecords{})

	w := api.do(t, http.MethodPost, "/api/v1/plans", salary())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "PLN-050001", decode[dto.ErrorResponse](t, w).Code)

	w = api.do(t, http.MethodGet, "/api/v1/calendar?start_date=2024-06-01&end_date=2024-06-30", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCalendarController_QueryAndSummary(t *testing.T) {
	api := newTestAPI(t, persistence.NewMemoryPlanRepository())
	r := api.create(t, rent())
	api.create(t, salary())

	w := api.do(t, http.MethodGet, "/api/v1/calendar?start_date=2024-06-01&end_date=2024-06-30", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cal := decode[dto.CalendarResponse](t, w)
	require.Len(t, cal.Entries, 2)
	assert.Equal(t, "2024-06-25", cal.Entries[0].Start)
	assert.Equal(t, "Salary (+¥1,000)", cal.Entries[0].Title)
	assert.Equal(t, r.ID+"@2024-06-27", cal.Entries[1].ID)
	assert.Equal(t, "Rent (-¥400)", cal.Entries[1].Title)
	assert.True(t, cal.Entries[1].AllDay)

	w = api.do(t, http.MethodGet, "/api/v1/calendar/summary?start_date=2024-06-01&end_date=2024-06-30&current_balance=5000", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sum := decode[dto.SummaryResponse](t, w)
	assert.Equal(t, "1000", sum.PlannedIncome.String())
	assert.Equal(t, "400", sum.PlannedExpense.String())
	assert.Equal(t, "5600", sum.ProjectedBalance.String())

	w = api.do(t, http.MethodGet, "/api/v1/calendar/summary?start_date=2024-06-01&end_date=2024-06-30&current_balance=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/calendar?start_date=2024-06-30&end_date=2024-06-01", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PLN-030001", decode[dto.ErrorResponse](t, w).Code)

	w = api.do(t, http.MethodGet, "/api/v1/calendar/projection?start_date=1900-01-01&end_date=2099-12-31", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PLN-030001", decode[dto.ErrorResponse](t, w).Code)
}

func TestCalendarController_Supplements(t *testing.T) {
	api := newTestAPI(t, persistence.NewMemoryPlanRepository())
	api.create(t, rent())
	api.create(t, salary())

	w := api.do(t, http.MethodGet, "/api/v1/calendar/upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	up := decode[dto.UpcomingResponse](t, w)
	assert.Equal(t, "2024-06-20", up.Window.StartDate)
	assert.Equal(t, "2024-06-27", up.Window.EndDate)
	assert.Len(t, up.Entries, 2)

	w = api.do(t, http.MethodGet, "/api/v1/calendar/upcoming?days=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/calendar/projection?start_date=2024-06-24&end_date=2024-06-28&current_balance=5000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	proj := decode[dto.ProjectionResponse](t, w)
	require.Len(t, proj.Points, 5)
	assert.Equal(t, "5600", proj.Points[4].Balance.String())

	w = api.do(t, http.MethodGet, "/api/v1/calendar/categories?start_date=2024-06-01&end_date=2024-06-30&current_balance=1600", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cats := decode[dto.CategoryBreakdownResponse](t, w)
	assert.Equal(t, "expense", cats.Type)
	require.Len(t, cats.Categories, 1)
	assert.Equal(t, 25.0, cats.Categories[0].Percentage)

	w = api.do(t, http.MethodGet, "/api/v1/calendar/categories?start_date=2024-06-01&end_date=2024-06-30&type=gift", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/calendar/totals?month=2024-06", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	totals := decode[dto.TotalsResponse](t, w)
	assert.Equal(t, "1000", totals.Income.String())
	assert.Equal(t, "400", totals.Expense.String())

	w = api.do(t, http.MethodGet, "/api/v1/calendar/totals", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
