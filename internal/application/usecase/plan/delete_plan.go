package plan

import (
	"context"
)

// DeletePlanInput represents the input for plan deletion.
type DeletePlanInput struct {
	Scope  string
	PlanID string
}

// DeletePlanOutput reports whether a plan was removed.
type DeletePlanOutput struct {
	Deleted bool
}

// DeletePlanUseCase handles plan deletion logic.
type DeletePlanUseCase struct {
	stores StoreFactory
}

// NewDeletePlanUseCase creates a new DeletePlanUseCase instance.
func NewDeletePlanUseCase(stores StoreFactory) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		stores: stores,
	}
}

// Execute performs the plan deletion. A missing plan is not an error.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, input DeletePlanInput) (*DeletePlanOutput, error) {
	deleted, err := uc.stores(input.Scope).Delete(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	return &DeletePlanOutput{
		Deleted: deleted,
	}, nil
}
