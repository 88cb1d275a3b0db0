// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// PlanRecordStore defines the backing persistence for the plans of a scope.
// The scope is an opaque key, typically the authenticated user id.
type PlanRecordStore interface {
	// List returns every plan stored for the scope. An unknown scope yields an empty slice.
	List(ctx context.Context, scope string) ([]*entity.FinancialPlan, error)

	// Put replaces the plans of the scope with the given set and returns once
	// the write is acknowledged.
	Put(ctx context.Context, scope string, plans []*entity.FinancialPlan) error
}
