package plan

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// ToggleCompletedInput represents the input for flipping a plan's completion.
type ToggleCompletedInput struct {
	Scope  string
	PlanID string
}

// ToggleCompletedOutput represents the output of a completion toggle.
type ToggleCompletedOutput struct {
	Plan *entity.FinancialPlan
}

// ToggleCompletedUseCase marks an open plan as realized, or reopens a completed one.
type ToggleCompletedUseCase struct {
	stores StoreFactory
}

// NewToggleCompletedUseCase creates a new ToggleCompletedUseCase instance.
func NewToggleCompletedUseCase(stores StoreFactory) *ToggleCompletedUseCase {
	return &ToggleCompletedUseCase{
		stores: stores,
	}
}

// Execute flips the completed flag through a regular update.
func (uc *ToggleCompletedUseCase) Execute(ctx context.Context, input ToggleCompletedInput) (*ToggleCompletedOutput, error) {
	store := uc.stores(input.Scope)

	current, err := store.Get(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	completed := !current.Completed
	plan, err := store.Update(ctx, input.PlanID, entity.PlanPatch{Completed: &completed})
	if err != nil {
		return nil, err
	}

	return &ToggleCompletedOutput{
		Plan: plan,
	}, nil
}
