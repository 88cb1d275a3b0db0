package calendar

import (
	"fmt"
	"strings"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// FilterMode selects how a plan's interval is tested against a window.
type FilterMode string

const (
	// FilterLegacy keeps the historical rule: a plan without an end date only
	// matches when it starts inside the window.
	FilterLegacy FilterMode = "legacy"

	// FilterOverlap treats a recurring plan without an end date as running
	// from its start date onward.
	FilterOverlap FilterMode = "overlap"
)

// ParseFilterMode parses a mode name; the empty string selects FilterLegacy.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterLegacy:
		return FilterLegacy, nil
	case FilterOverlap:
		return FilterOverlap, nil
	}
	return "", fmt.Errorf("unknown filter mode %q", s)
}

// Matches reports whether plan is active in w.
//
// Legacy rule: start <= w.End and (end >= w.Start if an end date is set,
// otherwise start >= w.Start).
func Matches(plan *entity.FinancialPlan, w Window, mode FilterMode) bool {
	if plan.StartDate.After(w.End) {
		return false
	}
	if plan.EndDate != nil {
		return !plan.EndDate.Before(w.Start)
	}
	if mode == FilterOverlap && plan.IsRecurring {
		return true
	}
	return !plan.StartDate.Before(w.Start)
}

// Filter returns the plans active in w, preserving input order.
func Filter(plans []*entity.FinancialPlan, w Window, mode FilterMode) []*entity.FinancialPlan {
	out := make([]*entity.FinancialPlan, 0, len(plans))
	for _, p := range plans {
		if Matches(p, w, mode) {
			out = append(out, p)
		}
	}
	return out
}
