package plan

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/projection"
)

// DailyProjectionInput represents the input for a day-by-day projection.
type DailyProjectionInput struct {
	Scope          string
	StartDate      string
	EndDate        string
	CurrentBalance decimal.Decimal
}

// DailyProjectionOutput holds one point per day of the window.
type DailyProjectionOutput struct {
	Window calendar.Window
	Points []projection.DailyPoint
}

// DailyProjectionUseCase computes the running balance across a window.
type DailyProjectionUseCase struct {
	stores StoreFactory
	opts   QueryOptions
}

// NewDailyProjectionUseCase creates a new DailyProjectionUseCase instance.
func NewDailyProjectionUseCase(stores StoreFactory, opts QueryOptions) *DailyProjectionUseCase {
	return &DailyProjectionUseCase{
		stores: stores,
		opts:   opts,
	}
}

// Execute performs the projection.
func (uc *DailyProjectionUseCase) Execute(ctx context.Context, input DailyProjectionInput) (*DailyProjectionOutput, error) {
	w, err := uc.opts.parseWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := expandScope(ctx, uc.stores(input.Scope), w, uc.opts)
	if err != nil {
		return nil, err
	}

	return &DailyProjectionOutput{
		Window: w,
		Points: projection.DailyProjection(entries, w, input.CurrentBalance),
	}, nil
}
