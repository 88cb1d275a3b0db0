package plan

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// GetPlanInput represents the input for fetching one plan.
type GetPlanInput struct {
	Scope  string
	PlanID string
}

// GetPlanOutput represents the output of fetching one plan.
type GetPlanOutput struct {
	Plan *entity.FinancialPlan
}

// GetPlanUseCase handles retrieving a single plan.
type GetPlanUseCase struct {
	stores StoreFactory
}

// NewGetPlanUseCase creates a new GetPlanUseCase instance.
func NewGetPlanUseCase(stores StoreFactory) *GetPlanUseCase {
	return &GetPlanUseCase{
		stores: stores,
	}
}

// Execute retrieves the plan.
func (uc *GetPlanUseCase) Execute(ctx context.Context, input GetPlanInput) (*GetPlanOutput, error) {
	plan, err := uc.stores(input.Scope).Get(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	return &GetPlanOutput{
		Plan: plan,
	}, nil
}
