package adapter

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/projection"
)

// SummaryCache caches window summaries per scope. Every Invalidate starts a
// new generation of the scope; summaries are only served from the current one.
type SummaryCache interface {
	// Generation returns the current generation of the scope. Callers read it
	// before loading plans and hand it back to Set.
	Generation(ctx context.Context, scope string) (int64, error)

	// Get returns the cached summary for key, or ok=false on a miss.
	Get(ctx context.Context, scope, key string) (summary projection.Summary, ok bool, err error)

	// Set stores a summary computed in generation. A summary of an older
	// generation is never served.
	Set(ctx context.Context, scope, key string, generation int64, summary projection.Summary) error

	// Invalidate drops all cached summaries of the scope.
	Invalidate(ctx context.Context, scope string) error
}
