package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/application/usecase/plan"
	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/projection"
)

// WindowResponse echoes the inclusive date window a query was answered for.
type WindowResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CalendarEntryResponse represents one occurrence of a plan on the calendar.
type CalendarEntryResponse struct {
	ID       string       `json:"id"`
	PlanID   string       `json:"plan_id"`
	Title    string       `json:"title"`
	Start    string       `json:"start"`
	End      string       `json:"end"`
	AllDay   bool         `json:"all_day"`
	Resource PlanResponse `json:"resource"`
}

// CalendarResponse represents the response of a calendar query.
type CalendarResponse struct {
	Window  WindowResponse          `json:"window"`
	Entries []CalendarEntryResponse `json:"entries"`
}

// SummaryResponse represents the planned totals of a window.
type SummaryResponse struct {
	Window           WindowResponse  `json:"window"`
	PlannedIncome    decimal.Decimal `json:"planned_income"`
	PlannedExpense   decimal.Decimal `json:"planned_expense"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
}

// UpcomingEntryResponse is a calendar entry flagged when it is past due.
type UpcomingEntryResponse struct {
	CalendarEntryResponse
	PastDue bool `json:"past_due"`
}

// UpcomingResponse represents the entries due soon.
type UpcomingResponse struct {
	Window  WindowResponse          `json:"window"`
	Entries []UpcomingEntryResponse `json:"entries"`
}

// DailyPointResponse represents one day of a balance projection.
type DailyPointResponse struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ProjectionResponse represents a daily balance projection.
type ProjectionResponse struct {
	Window WindowResponse       `json:"window"`
	Points []DailyPointResponse `json:"points"`
}

// CategoryShareResponse represents the total of one category.
type CategoryShareResponse struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// CategoryBreakdownResponse represents the per-category totals of a window.
type CategoryBreakdownResponse struct {
	Window     WindowResponse          `json:"window"`
	Type       string                  `json:"type"`
	Total      decimal.Decimal         `json:"total"`
	Categories []CategoryShareResponse `json:"categories"`
}

// TotalsResponse represents the income and expense totals of a date or month.
type TotalsResponse struct {
	Window  WindowResponse  `json:"window"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ToWindowResponse converts a calendar window to its DTO.
func ToWindowResponse(w calendar.Window) WindowResponse {
	return WindowResponse{StartDate: w.Start.String(), EndDate: w.End.String()}
}

// ToCalendarEntryResponse converts a calendar entry to its DTO.
func ToCalendarEntryResponse(e entity.CalendarEntry) CalendarEntryResponse {
	return CalendarEntryResponse{
		ID:       e.ID,
		PlanID:   e.PlanID,
		Title:    e.Title,
		Start:    e.Start.String(),
		End:      e.End.String(),
		AllDay:   e.AllDay,
		Resource: ToPlanResponse(e.Resource),
	}
}

// ToCalendarResponse converts a calendar query result to its DTO.
func ToCalendarResponse(output *plan.QueryCalendarOutput) CalendarResponse {
	response := CalendarResponse{
		Window:  ToWindowResponse(output.Window),
		Entries: make([]CalendarEntryResponse, 0, len(output.Entries)),
	}
	for _, e := range output.Entries {
		response.Entries = append(response.Entries, ToCalendarEntryResponse(e))
	}
	return response
}

// ToSummaryResponse converts a summary result to its DTO.
func ToSummaryResponse(w calendar.Window, s projection.Summary) SummaryResponse {
	return SummaryResponse{
		Window:           ToWindowResponse(w),
		PlannedIncome:    s.PlannedIncome,
		PlannedExpense:   s.PlannedExpense,
		ProjectedBalance: s.ProjectedBalance,
	}
}

// ToUpcomingResponse converts an upcoming plans result to its DTO.
func ToUpcomingResponse(output *plan.UpcomingPlansOutput) UpcomingResponse {
	response := UpcomingResponse{
		Window:  ToWindowResponse(output.Window),
		Entries: make([]UpcomingEntryResponse, 0, len(output.Entries)),
	}
	for _, e := range output.Entries {
		response.Entries = append(response.Entries, UpcomingEntryResponse{
			CalendarEntryResponse: ToCalendarEntryResponse(e.Entry),
			PastDue:               e.PastDue,
		})
	}
	return response
}

// ToProjectionResponse converts a daily projection result to its DTO.
func ToProjectionResponse(output *plan.DailyProjectionOutput) ProjectionResponse {
	response := ProjectionResponse{
		Window: ToWindowResponse(output.Window),
		Points: make([]DailyPointResponse, 0, len(output.Points)),
	}
	for _, p := range output.Points {
		response.Points = append(response.Points, DailyPointResponse{
			Date:    p.Date.String(),
			Income:  p.Income,
			Expense: p.Expense,
			Balance: p.Balance,
		})
	}
	return response
}

// ToCategoryBreakdownResponse converts a category breakdown result to its DTO.
func ToCategoryBreakdownResponse(planType entity.PlanType, output *plan.CategoryBreakdownOutput) CategoryBreakdownResponse {
	response := CategoryBreakdownResponse{
		Window:     ToWindowResponse(output.Window),
		Type:       string(planType),
		Total:      output.Total,
		Categories: make([]CategoryShareResponse, 0, len(output.Categories)),
	}
	for _, c := range output.Categories {
		response.Categories = append(response.Categories, CategoryShareResponse{
			Category:   c.Category,
			Amount:     c.Amount,
			Percentage: c.Percentage,
		})
	}
	return response
}

// ToTotalsResponse converts a date totals result to its DTO.
func ToTotalsResponse(output *plan.DateTotalsOutput) TotalsResponse {
	return TotalsResponse{
		Window:  ToWindowResponse(output.Window),
		Income:  output.Income,
		Expense: output.Expense,
	}
}
