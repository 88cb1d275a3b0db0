package plan

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/projection"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// DateTotalsInput selects either one day (Date, YYYY-MM-DD) or one month (Month, YYYY-MM).
type DateTotalsInput struct {
	Scope string
	Date  string
	Month string
}

// DateTotalsOutput holds the planned income and expense of the selected period,
// including completed entries.
type DateTotalsOutput struct {
	Window  calendar.Window
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DateTotalsUseCase totals the entries of a day or a month per type.
type DateTotalsUseCase struct {
	stores StoreFactory
	opts   QueryOptions
}

// NewDateTotalsUseCase creates a new DateTotalsUseCase instance.
func NewDateTotalsUseCase(stores StoreFactory, opts QueryOptions) *DateTotalsUseCase {
	return &DateTotalsUseCase{
		stores: stores,
		opts:   opts,
	}
}

// Execute performs the totals.
func (uc *DateTotalsUseCase) Execute(ctx context.Context, input DateTotalsInput) (*DateTotalsOutput, error) {
	w, err := totalsWindow(input)
	if err != nil {
		return nil, err
	}

	entries, err := expandScope(ctx, uc.stores(input.Scope), w, uc.opts)
	if err != nil {
		return nil, err
	}

	out := &DateTotalsOutput{Window: w}
	if w.Days() == 1 {
		out.Income = projection.DateTotal(entries, w.Start, entity.PlanTypeIncome)
		out.Expense = projection.DateTotal(entries, w.Start, entity.PlanTypeExpense)
		return out, nil
	}

	out.Income, out.Expense = decimal.Zero, decimal.Zero
	for _, m := range projection.MonthlyTotals(entries) {
		if m.Month == w.Start.MonthKey() {
			out.Income, out.Expense = m.Income, m.Expense
		}
	}
	return out, nil
}

func totalsWindow(input DateTotalsInput) (calendar.Window, error) {
	switch {
	case input.Date != "":
		d, err := valueobject.ParseDate(input.Date)
		if err != nil {
			return calendar.Window{}, domainerror.NewInvalidDateRangeError("date must be YYYY-MM-DD")
		}
		return calendar.NewWindow(d, d)
	case input.Month != "":
		d, err := valueobject.ParseDate(strings.TrimSpace(input.Month) + "-01")
		if err != nil {
			return calendar.Window{}, domainerror.NewInvalidDateRangeError("month must be YYYY-MM")
		}
		return calendar.MonthWindow(d), nil
	}
	return calendar.Window{}, domainerror.NewInvalidDateRangeError("date or month is required")
}
