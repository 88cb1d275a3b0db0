package plan

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// CreatePlanInput represents the input for plan creation.
type CreatePlanInput struct {
	Scope string
	Draft entity.PlanDraft
}

// CreatePlanOutput represents the output of plan creation.
type CreatePlanOutput struct {
	Plan *entity.FinancialPlan
}

// CreatePlanUseCase handles plan creation logic.
type CreatePlanUseCase struct {
	stores StoreFactory
}

// NewCreatePlanUseCase creates a new CreatePlanUseCase instance.
func NewCreatePlanUseCase(stores StoreFactory) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		stores: stores,
	}
}

// Execute performs the plan creation.
func (uc *CreatePlanUseCase) Execute(ctx context.Context, input CreatePlanInput) (*CreatePlanOutput, error) {
	plan, err := uc.stores(input.Scope).Create(ctx, input.Draft)
	if err != nil {
		return nil, err
	}

	return &CreatePlanOutput{
		Plan: plan,
	}, nil
}
