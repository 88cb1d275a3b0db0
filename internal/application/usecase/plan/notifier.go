package plan

import (
	"context"
	"errors"

	"github.com/finance-tracker/planner/internal/application/adapter"
)

// NewCacheInvalidator returns a notifier that drops the cached summaries of a
// scope whenever its plans change.
func NewCacheInvalidator(cache adapter.SummaryCache) adapter.PlanChangeNotifier {
	return adapter.PlanChangeNotifierFunc(func(ctx context.Context, change adapter.PlanChange) error {
		return cache.Invalidate(ctx, change.Scope)
	})
}

// Notifiers fans a change out to every notifier. All notifiers are called;
// their errors are joined.
func Notifiers(notifiers ...adapter.PlanChangeNotifier) adapter.PlanChangeNotifier {
	return adapter.PlanChangeNotifierFunc(func(ctx context.Context, change adapter.PlanChange) error {
		var errs []error
		for _, n := range notifiers {
			if n == nil {
				continue
			}
			if err := n.PlanChanged(ctx, change); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
