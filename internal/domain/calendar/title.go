package calendar

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// DefaultCurrencySymbol is the symbol used when none is configured.
const DefaultCurrencySymbol = "¥"

// EntryTitler renders the display title of a plan's calendar entries.
type EntryTitler interface {
	Title(plan *entity.FinancialPlan) string
}

// AmountTitler appends the signed amount to the plan title,
// e.g. "Salary (+¥250,000)".
type AmountTitler struct {
	Symbol string
}

// Title implements EntryTitler.
func (t AmountTitler) Title(plan *entity.FinancialPlan) string {
	sign := "-"
	if plan.Type == entity.PlanTypeIncome {
		sign = "+"
	}
	symbol := t.Symbol
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return plan.Title + " (" + sign + symbol + FormatAmount(plan.Amount) + ")"
}

// FormatAmount groups the integer digits of amount and keeps up to three
// fraction digits, dropping trailing zeros.
func FormatAmount(amount decimal.Decimal) string {
	a := amount.Abs().Round(3)
	whole := a.Truncate(0)
	out := humanize.BigComma(whole.BigInt())
	if frac := a.Sub(whole); !frac.IsZero() {
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}
