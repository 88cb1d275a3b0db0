// Package projection reduces calendar entries and plans into planned totals
// and projected balances. Every function is pure and leaves its inputs untouched.
package projection

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// SumOptions restricts which entries are summed.
type SumOptions struct {
	OnlyIncomplete bool
}

// SumByType sums the amounts of entries whose plan has the given type.
func SumByType(entries []entity.CalendarEntry, planType entity.PlanType, opts SumOptions) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Resource == nil || e.Resource.Type != planType {
			continue
		}
		if opts.OnlyIncomplete && e.Resource.Completed {
			continue
		}
		total = total.Add(e.Resource.Amount)
	}
	return total
}

// ProjectBalance returns current + income - expense. The result may be negative.
func ProjectBalance(current, income, expense decimal.Decimal) decimal.Decimal {
	return current.Add(income).Sub(expense)
}

// GroupByDate buckets entries by the YYYY-MM-DD form of their start date.
func GroupByDate(entries []entity.CalendarEntry) map[string][]entity.CalendarEntry {
	groups := make(map[string][]entity.CalendarEntry)
	for _, e := range entries {
		key := e.Start.String()
		groups[key] = append(groups[key], e)
	}
	return groups
}

// SumByCategory sums the amounts of plans matching both category and type.
func SumByCategory(plans []*entity.FinancialPlan, category string, planType entity.PlanType) decimal.Decimal {
	total := decimal.Zero
	for _, p := range plans {
		if p.Category == category && p.Type == planType {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Percentage returns part/total*100 rounded to two places and clamped to
// [0, 100]. A non-positive total or a non-finite result yields 0.
func Percentage(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	pct, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return math.Min(100, math.Max(0, pct))
}

// Summary holds the planned totals of a window.
type Summary struct {
	PlannedIncome    decimal.Decimal
	PlannedExpense   decimal.Decimal
	ProjectedBalance decimal.Decimal
}

// Summarize sums the incomplete entries by type and projects the balance.
func Summarize(entries []entity.CalendarEntry, current decimal.Decimal) Summary {
	opts := SumOptions{OnlyIncomplete: true}
	income := SumByType(entries, entity.PlanTypeIncome, opts)
	expense := SumByType(entries, entity.PlanTypeExpense, opts)
	return Summary{
		PlannedIncome:    income,
		PlannedExpense:   expense,
		ProjectedBalance: ProjectBalance(current, income, expense),
	}
}
