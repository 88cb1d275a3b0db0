package plan

import (
	"context"
	"slices"
	"strings"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
)

// ListPlansInput represents the input for listing plans.
type ListPlansInput struct {
	Scope  string
	Window *calendar.Window // Optional; nil lists every plan
}

// ListPlansOutput represents the output of listing plans.
type ListPlansOutput struct {
	Plans []*entity.FinancialPlan
}

// ListPlansUseCase handles listing the plans of a scope.
type ListPlansUseCase struct {
	stores StoreFactory
	opts   QueryOptions
}

// NewListPlansUseCase creates a new ListPlansUseCase instance.
func NewListPlansUseCase(stores StoreFactory, opts QueryOptions) *ListPlansUseCase {
	return &ListPlansUseCase{
		stores: stores,
		opts:   opts,
	}
}

// Execute lists the plans ordered by start date, then id.
func (uc *ListPlansUseCase) Execute(ctx context.Context, input ListPlansInput) (*ListPlansOutput, error) {
	if input.Window != nil {
		if err := input.Window.Limit(uc.opts.MaxWindowDays); err != nil {
			return nil, err
		}
	}

	plans, err := uc.stores(input.Scope).GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if input.Window != nil {
		plans = calendar.Filter(plans, *input.Window, uc.opts.Mode)
	}

	slices.SortFunc(plans, func(a, b *entity.FinancialPlan) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return &ListPlansOutput{
		Plans: plans,
	}, nil
}
