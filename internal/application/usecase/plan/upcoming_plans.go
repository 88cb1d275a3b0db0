package plan

import (
	"context"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// DefaultUpcomingDays is the look-ahead used when none is requested.
const DefaultUpcomingDays = 7

// UpcomingPlansInput represents the input for the upcoming plan list.
type UpcomingPlansInput struct {
	Scope string
	Days  int
}

// UpcomingEntry is a calendar entry flagged when it is overdue.
type UpcomingEntry struct {
	Entry   entity.CalendarEntry
	PastDue bool
}

// UpcomingPlansOutput represents the upcoming entries, soonest first.
type UpcomingPlansOutput struct {
	Window  calendar.Window
	Entries []UpcomingEntry
}

// UpcomingPlansUseCase lists the entries from today through the next Days days.
type UpcomingPlansUseCase struct {
	stores StoreFactory
	opts   QueryOptions
	clock  adapter.Clock
}

// NewUpcomingPlansUseCase creates a new UpcomingPlansUseCase instance.
func NewUpcomingPlansUseCase(stores StoreFactory, opts QueryOptions, clock adapter.Clock) *UpcomingPlansUseCase {
	return &UpcomingPlansUseCase{
		stores: stores,
		opts:   opts,
		clock:  clock,
	}
}

// Execute lists the upcoming entries. An entry is past due when it starts
// before today and its plan is not completed.
func (uc *UpcomingPlansUseCase) Execute(ctx context.Context, input UpcomingPlansInput) (*UpcomingPlansOutput, error) {
	days := input.Days
	if days <= 0 {
		days = DefaultUpcomingDays
	}

	today := valueobject.Today(uc.clock.Now())
	w, err := calendar.NewWindow(today, today.AddDays(days))
	if err != nil {
		return nil, err
	}
	if err := w.Limit(uc.opts.MaxWindowDays); err != nil {
		return nil, err
	}

	entries, err := expandScope(ctx, uc.stores(input.Scope), w, uc.opts)
	if err != nil {
		return nil, err
	}
	calendar.SortByStart(entries)

	upcoming := make([]UpcomingEntry, 0, len(entries))
	for _, e := range entries {
		upcoming = append(upcoming, UpcomingEntry{
			Entry:   e,
			PastDue: e.Start.Before(today) && !e.Resource.Completed,
		})
	}

	return &UpcomingPlansOutput{
		Window:  w,
		Entries: upcoming,
	}, nil
}
