package projection

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// DailyPoint is the planned movement of one day and the balance after it.
type DailyPoint struct {
	Date    valueobject.Date
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// DailyProjection walks every day of w and accumulates the incomplete entries
// starting that day into a running balance seeded with current. Entries that
// began before w count on its first day, so the final balance matches
// Summarize over the same entries.
func DailyProjection(entries []entity.CalendarEntry, w calendar.Window, current decimal.Decimal) []DailyPoint {
	byDate := make(map[string][]entity.CalendarEntry)
	for _, e := range entries {
		day := e.Start
		if day.Before(w.Start) {
			day = w.Start
		}
		byDate[day.String()] = append(byDate[day.String()], e)
	}
	opts := SumOptions{OnlyIncomplete: true}

	points := make([]DailyPoint, 0, w.Days())
	balance := current
	for d := w.Start; !d.After(w.End); d = d.AddDays(1) {
		day := byDate[d.String()]
		income := SumByType(day, entity.PlanTypeIncome, opts)
		expense := SumByType(day, entity.PlanTypeExpense, opts)
		balance = ProjectBalance(balance, income, expense)
		points = append(points, DailyPoint{Date: d, Income: income, Expense: expense, Balance: balance})
	}
	return points
}

// MonthTotal is the planned income and expense of one month.
type MonthTotal struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlyTotals sums entries per YYYY-MM of their start date, ascending by month.
// Completed entries are included.
func MonthlyTotals(entries []entity.CalendarEntry) []MonthTotal {
	index := make(map[string]int)
	var totals []MonthTotal
	for _, e := range entries {
		if e.Resource == nil {
			continue
		}
		key := e.Start.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, MonthTotal{Month: key, Income: decimal.Zero, Expense: decimal.Zero})
		}
		switch e.Resource.Type {
		case entity.PlanTypeIncome:
			totals[i].Income = totals[i].Income.Add(e.Resource.Amount)
		case entity.PlanTypeExpense:
			totals[i].Expense = totals[i].Expense.Add(e.Resource.Amount)
		}
	}
	slices.SortFunc(totals, func(a, b MonthTotal) int {
		return strings.Compare(a.Month, b.Month)
	})
	return totals
}

// DateTotal sums the entries of one type starting on date. Completed entries are included.
func DateTotal(entries []entity.CalendarEntry, date valueobject.Date, planType entity.PlanType) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Start.Equal(date) && e.Resource != nil && e.Resource.Type == planType {
			total = total.Add(e.Resource.Amount)
		}
	}
	return total
}

// CategoryShare is the total of one category and its share of a denominator.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage float64
}

// CategoryBreakdown sums plans of planType per category and expresses each
// sum as a percentage of denominator. Categories are ordered by amount
// descending, then by name.
func CategoryBreakdown(plans []*entity.FinancialPlan, planType entity.PlanType, denominator decimal.Decimal) []CategoryShare {
	var categories []string
	seen := make(map[string]bool)
	for _, p := range plans {
		if p.Type == planType && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	shares := make([]CategoryShare, 0, len(categories))
	for _, c := range categories {
		amount := SumByCategory(plans, c, planType)
		shares = append(shares, CategoryShare{
			Category:   c,
			Amount:     amount,
			Percentage: Percentage(amount, denominator),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return shares
}
