package plan

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/domain/projection"
)

// CategoryBreakdownInput represents the input for a category breakdown.
// The percentage of each category is taken against CurrentBalance.
type CategoryBreakdownInput struct {
	Scope          string
	StartDate      string
	EndDate        string
	Type           entity.PlanType
	CurrentBalance decimal.Decimal
}

// CategoryBreakdownOutput represents the per-category totals.
type CategoryBreakdownOutput struct {
	Window     calendar.Window
	Total      decimal.Decimal
	Categories []projection.CategoryShare
}

// CategoryBreakdownUseCase sums the plans active in a window per category.
type CategoryBreakdownUseCase struct {
	stores StoreFactory
	opts   QueryOptions
}

// NewCategoryBreakdownUseCase creates a new CategoryBreakdownUseCase instance.
func NewCategoryBreakdownUseCase(stores StoreFactory, opts QueryOptions) *CategoryBreakdownUseCase {
	return &CategoryBreakdownUseCase{
		stores: stores,
		opts:   opts,
	}
}

// Execute performs the breakdown.
func (uc *CategoryBreakdownUseCase) Execute(ctx context.Context, input CategoryBreakdownInput) (*CategoryBreakdownOutput, error) {
	if !input.Type.IsValid() {
		return nil, domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidPlanType, "type", "type must be 'income' or 'expense'")
	}

	w, err := uc.opts.parseWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	plans, err := uc.stores(input.Scope).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	plans = calendar.Filter(plans, w, uc.opts.Mode)

	shares := projection.CategoryBreakdown(plans, input.Type, input.CurrentBalance)
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}

	return &CategoryBreakdownOutput{
		Window:     w,
		Total:      total,
		Categories: shares,
	}, nil
}
