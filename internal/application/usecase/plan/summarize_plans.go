package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/projection"
)

// SummarizePlansInput represents the input for a window summary.
type SummarizePlansInput struct {
	Scope          string
	StartDate      string
	EndDate        string
	CurrentBalance decimal.Decimal
}

// SummarizePlansOutput represents the planned totals of a window.
type SummarizePlansOutput struct {
	Window  calendar.Window
	Summary projection.Summary
}

// SummarizePlansUseCase computes planned income, planned expense and the
// projected balance of a window. Only incomplete entries count.
type SummarizePlansUseCase struct {
	stores StoreFactory
	opts   QueryOptions
	cache  adapter.SummaryCache
	group  singleflight.Group
	logger *slog.Logger
}

// NewSummarizePlansUseCase creates a new SummarizePlansUseCase instance.
// cache may be nil.
func NewSummarizePlansUseCase(stores StoreFactory, opts QueryOptions, cache adapter.SummaryCache) *SummarizePlansUseCase {
	return &SummarizePlansUseCase{
		stores: stores,
		opts:   opts,
		cache:  cache,
		logger: slog.Default(),
	}
}

// Execute performs the summary.
func (uc *SummarizePlansUseCase) Execute(ctx context.Context, input SummarizePlansInput) (*SummarizePlansOutput, error) {
	w, err := uc.opts.parseWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	key := string(uc.opts.Mode) + "|" + w.String() + "|" + input.CurrentBalance.String()

	// The generation is read before the plans so that a summary computed
	// across a mutation is stored under the generation it was read in.
	cacheable := false
	var generation int64
	if uc.cache != nil {
		generation, err = uc.cache.Generation(ctx, input.Scope)
		if err != nil {
			uc.logger.Warn("summary cache read failed", "scope", input.Scope, "error", err)
		} else {
			cacheable = true
			cached, ok, err := uc.cache.Get(ctx, input.Scope, key)
			if err != nil {
				uc.logger.Warn("summary cache read failed", "scope", input.Scope, "error", err)
			} else if ok {
				return &SummarizePlansOutput{Window: w, Summary: cached}, nil
			}
		}
	}

	flight := fmt.Sprintf("%s|%d|%s", input.Scope, generation, key)
	v, err, _ := uc.group.Do(flight, func() (any, error) {
		entries, err := expandScope(ctx, uc.stores(input.Scope), w, uc.opts)
		if err != nil {
			return nil, err
		}
		return projection.Summarize(entries, input.CurrentBalance), nil
	})
	if err != nil {
		return nil, err
	}
	summary := v.(projection.Summary)

	if cacheable {
		if err := uc.cache.Set(ctx, input.Scope, key, generation, summary); err != nil {
			uc.logger.Warn("summary cache write failed", "scope", input.Scope, "error", err)
		}
	}

	return &SummarizePlansOutput{
		Window:  w,
		Summary: summary,
	}, nil
}
