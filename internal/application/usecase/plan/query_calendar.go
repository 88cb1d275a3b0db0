package plan

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
)

// QueryCalendarInput represents the input for a calendar query.
type QueryCalendarInput struct {
	Scope     string
	StartDate string
	EndDate   string
}

// QueryCalendarOutput represents the entries of a calendar query.
type QueryCalendarOutput struct {
	Window  calendar.Window
	Entries []entity.CalendarEntry
}

// QueryCalendarUseCase expands the plans of a scope over a date window.
type QueryCalendarUseCase struct {
	stores StoreFactory
	opts   QueryOptions
}

// NewQueryCalendarUseCase creates a new QueryCalendarUseCase instance.
func NewQueryCalendarUseCase(stores StoreFactory, opts QueryOptions) *QueryCalendarUseCase {
	return &QueryCalendarUseCase{
		stores: stores,
		opts:   opts,
	}
}

// Execute returns the calendar entries of the window sorted by start date.
func (uc *QueryCalendarUseCase) Execute(ctx context.Context, input QueryCalendarInput) (*QueryCalendarOutput, error) {
	w, err := uc.opts.parseWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := expandScope(ctx, uc.stores(input.Scope), w, uc.opts)
	if err != nil {
		return nil, err
	}
	calendar.SortByStart(entries)

	return &QueryCalendarOutput{
		Window:  w,
		Entries: entries,
	}, nil
}
