package plan

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// UpdatePlanInput represents the input for plan update.
type UpdatePlanInput struct {
	Scope  string
	PlanID string
	Patch  entity.PlanPatch
}

// UpdatePlanOutput represents the output of plan update.
type UpdatePlanOutput struct {
	Plan *entity.FinancialPlan
}

// UpdatePlanUseCase handles plan update logic.
type UpdatePlanUseCase struct {
	stores StoreFactory
}

// NewUpdatePlanUseCase creates a new UpdatePlanUseCase instance.
func NewUpdatePlanUseCase(stores StoreFactory) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		stores: stores,
	}
}

// Execute performs the plan update.
func (uc *UpdatePlanUseCase) Execute(ctx context.Context, input UpdatePlanInput) (*UpdatePlanOutput, error) {
	plan, err := uc.stores(input.Scope).Update(ctx, input.PlanID, input.Patch)
	if err != nil {
		return nil, err
	}

	return &UpdatePlanOutput{
		Plan: plan,
	}, nil
}
