package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// PlanChangeKind identifies the mutation behind a PlanChange.
type PlanChangeKind string

const (
	PlanCreated PlanChangeKind = "plan.created"
	PlanUpdated PlanChangeKind = "plan.updated"
	PlanDeleted PlanChangeKind = "plan.deleted"
)

// PlanChange describes a committed mutation of a scope's plans.
type PlanChange struct {
	Kind       PlanChangeKind
	Scope      string
	PlanID     string
	Plan       *entity.FinancialPlan // nil for deletions
	OccurredAt time.Time
}

// PlanChangeNotifier is told about every committed plan mutation so derived
// views (cached summaries, subscribers) can refresh.
type PlanChangeNotifier interface {
	PlanChanged(ctx context.Context, change PlanChange) error
}

// PlanChangeNotifierFunc adapts a function to PlanChangeNotifier.
type PlanChangeNotifierFunc func(ctx context.Context, change PlanChange) error

// PlanChanged calls f.
func (f PlanChangeNotifierFunc) PlanChanged(ctx context.Context, change PlanChange) error {
	return f(ctx, change)
}
