package persistence

import (
	"context"
	"sync"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/entity"
)

// memoryPlanRepository keeps plans in process memory. Records are copied on
// the way in and out.
type memoryPlanRepository struct {
	mu     sync.RWMutex
	scopes map[string][]*entity.FinancialPlan
}

// NewMemoryPlanRepository creates an empty in-memory plan store.
func NewMemoryPlanRepository() adapter.PlanRecordStore {
	return &memoryPlanRepository{
		scopes: make(map[string][]*entity.FinancialPlan),
	}
}

// List retrieves every plan of the scope.
func (r *memoryPlanRepository) List(ctx context.Context, scope string) ([]*entity.FinancialPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return entity.ClonePlans(r.scopes[scope]), nil
}

// Put replaces the plans of the scope.
func (r *memoryPlanRepository) Put(ctx context.Context, scope string, plans []*entity.FinancialPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(plans) == 0 {
		delete(r.scopes, scope)
		return nil
	}
	r.scopes[scope] = entity.ClonePlans(plans)
	return nil
}
