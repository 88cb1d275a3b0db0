package calendar

import (
	"fmt"

	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// RecurrenceRule computes the occurrence dates of one cadence.
// Occurrence n is always derived from the start date, never from occurrence
// n-1, so month-end clamping does not drift (Jan 31, Feb 29, Mar 31, ...).
type RecurrenceRule interface {
	// Nth returns occurrence n (n >= 0) of a series starting at start.
	Nth(start valueobject.Date, n int) valueobject.Date

	// IndexAtOrAfter returns the smallest n whose occurrence is on or after d.
	IndexAtOrAfter(start, d valueobject.Date) int
}

// DailyRule repeats every day.
type DailyRule struct{}

func (DailyRule) Nth(start valueobject.Date, n int) valueobject.Date {
	return start.AddDays(n)
}

func (DailyRule) IndexAtOrAfter(start, d valueobject.Date) int {
	return max(0, start.DaysUntil(d))
}

// WeeklyRule repeats every seven days.
type WeeklyRule struct{}

func (WeeklyRule) Nth(start valueobject.Date, n int) valueobject.Date {
	return start.AddDays(7 * n)
}

func (WeeklyRule) IndexAtOrAfter(start, d valueobject.Date) int {
	days := start.DaysUntil(d)
	if days <= 0 {
		return 0
	}
	return (days + 6) / 7
}

// MonthlyRule repeats on the start's day of month, clamped to the month end.
type MonthlyRule struct{}

func (MonthlyRule) Nth(start valueobject.Date, n int) valueobject.Date {
	return start.AddMonthsClamped(n)
}

func (r MonthlyRule) IndexAtOrAfter(start, d valueobject.Date) int {
	n := start.MonthsUntil(d)
	if n <= 0 {
		return 0
	}
	if r.Nth(start, n).Before(d) {
		n++
	}
	return n
}

// YearlyRule repeats on the start's month and day; Feb 29 falls back to Feb 28.
type YearlyRule struct{}

func (YearlyRule) Nth(start valueobject.Date, n int) valueobject.Date {
	return start.AddYearsClamped(n)
}

func (r YearlyRule) IndexAtOrAfter(start, d valueobject.Date) int {
	n := d.Year() - start.Year()
	if n <= 0 {
		return 0
	}
	if r.Nth(start, n).Before(d) {
		n++
	}
	return n
}

var recurrenceRules = map[entity.RecurringType]RecurrenceRule{
	entity.RecurringDaily:   DailyRule{},
	entity.RecurringWeekly:  WeeklyRule{},
	entity.RecurringMonthly: MonthlyRule{},
	entity.RecurringYearly:  YearlyRule{},
}

// RuleFor returns the rule registered for a cadence.
func RuleFor(cadence entity.RecurringType) (RecurrenceRule, error) {
	rule, ok := recurrenceRules[cadence]
	if !ok {
		return nil, fmt.Errorf("unknown recurring type: %s", cadence)
	}
	return rule, nil
}

// Occurrences returns the dates on which plan occurs inside w, ascending.
// A non-recurring plan yields its start date. A recurring plan yields every
// cadence step from its start date through min(end date, w.End) that falls
// inside w.
func Occurrences(plan *entity.FinancialPlan, w Window) []valueobject.Date {
	if !plan.IsRecurring || plan.RecurringType == nil {
		return []valueobject.Date{plan.StartDate}
	}

	rule, err := RuleFor(*plan.RecurringType)
	if err != nil {
		return []valueobject.Date{plan.StartDate}
	}

	last := w.End
	if plan.EndDate != nil {
		last = valueobject.MinDate(last, *plan.EndDate)
	}
	from := valueobject.MaxDate(w.Start, plan.StartDate)
	if from.After(last) {
		return nil
	}

	var dates []valueobject.Date
	for n := rule.IndexAtOrAfter(plan.StartDate, from); ; n++ {
		d := rule.Nth(plan.StartDate, n)
		if d.After(last) {
			break
		}
		if !d.Before(w.Start) {
			dates = append(dates, d)
		}
	}
	return dates
}
