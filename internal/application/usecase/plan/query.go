package plan

import (
	"context"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
)

// QueryOptions configures how plans are matched and titled in calendar queries.
type QueryOptions struct {
	Mode   calendar.FilterMode
	Titler calendar.EntryTitler
	// MaxWindowDays caps the span of a query window. Zero applies
	// calendar.DefaultMaxWindowDays.
	MaxWindowDays int
}

// DefaultQueryOptions uses the legacy filter and yen-annotated titles.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Mode:          calendar.FilterLegacy,
		Titler:        calendar.AmountTitler{Symbol: calendar.DefaultCurrencySymbol},
		MaxWindowDays: calendar.DefaultMaxWindowDays,
	}
}

func (o QueryOptions) titler() calendar.EntryTitler {
	if o.Titler == nil {
		return calendar.AmountTitler{}
	}
	return o.Titler
}

func (o QueryOptions) parseWindow(start, end string) (calendar.Window, error) {
	return calendar.ParseBoundedWindow(start, end, o.MaxWindowDays)
}

// expandScope loads the plans of the scope and expands them over w.
func expandScope(ctx context.Context, store *Store, w calendar.Window, opts QueryOptions) ([]entity.CalendarEntry, error) {
	plans, err := store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.Expand(plans, w, opts.Mode, opts.titler()), nil
}
