package entity

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

func ptr[T any](v T) *T { return &v }

func validPlan() *FinancialPlan {
	return &FinancialPlan{
		ID:        "plan-1",
		Title:     "家賃",
		Amount:    decimal.NewFromInt(80000),
		Type:      PlanTypeExpense,
		Category:  "住居費",
		StartDate: valueobject.MustParseDate("2024-06-10"),
	}
}

func TestFinancialPlan_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *FinancialPlan)
		wantField string
	}{
		{name: "valid", mutate: func(p *FinancialPlan) {}},
		{name: "blank title", mutate: func(p *FinancialPlan) { p.Title = "   " }, wantField: "title"},
		{name: "zero amount", mutate: func(p *FinancialPlan) { p.Amount = decimal.Zero }, wantField: "amount"},
		{name: "negative amount", mutate: func(p *FinancialPlan) { p.Amount = decimal.NewFromInt(-5) }, wantField: "amount"},
		{name: "unknown type", mutate: func(p *FinancialPlan) { p.Type = "transfer" }, wantField: "type"},
		{name: "blank category", mutate: func(p *FinancialPlan) { p.Category = "" }, wantField: "category"},
		{name: "missing start", mutate: func(p *FinancialPlan) { p.StartDate = valueobject.Date{} }, wantField: "start_date"},
		{
			name:      "end before start",
			mutate:    func(p *FinancialPlan) { p.EndDate = ptr(valueobject.MustParseDate("2024-06-09")) },
			wantField: "end_date",
		},
		{
			name:   "end equals start",
			mutate: func(p *FinancialPlan) { p.EndDate = ptr(valueobject.MustParseDate("2024-06-10")) },
		},
		{
			name:      "recurring without cadence",
			mutate:    func(p *FinancialPlan) { p.IsRecurring = true },
			wantField: "recurring_type",
		},
		{
			name: "recurring with unknown cadence",
			mutate: func(p *FinancialPlan) {
				p.IsRecurring = true
				p.RecurringType = ptr(RecurringType("hourly"))
			},
			wantField: "recurring_type",
		},
		{name: "title at limit", mutate: func(p *FinancialPlan) { p.Title = strings.Repeat("家", 255) }},
		{name: "title too long", mutate: func(p *FinancialPlan) { p.Title = strings.Repeat("a", 256) }, wantField: "title"},
		{name: "amount with four decimals", mutate: func(p *FinancialPlan) { p.Amount = decimal.RequireFromString("12.3456") }},
		{name: "amount trailing zeros", mutate: func(p *FinancialPlan) { p.Amount = decimal.RequireFromString("1.500000") }},
		{name: "amount with five decimals", mutate: func(p *FinancialPlan) { p.Amount = decimal.RequireFromString("0.00001") }, wantField: "amount"},
		{name: "amount too large", mutate: func(p *FinancialPlan) { p.Amount = decimal.New(1, 15) }, wantField: "amount"},
		{name: "category too long", mutate: func(p *FinancialPlan) { p.Category = strings.Repeat("c", 101) }, wantField: "category"},
		{name: "color too long", mutate: func(p *FinancialPlan) { p.Color = ptr(strings.Repeat("f", 33)) }, wantField: "color"},
		{name: "account id too long", mutate: func(p *FinancialPlan) { p.AccountID = ptr(strings.Repeat("x", 65)) }, wantField: "account_id"},
		{
			name: "cadence ignored when not recurring",
			mutate: func(p *FinancialPlan) {
				p.RecurringType = ptr(RecurringType("hourly"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(p)
			err := p.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, domainerror.ErrPlanValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var planErr *domainerror.PlanError
			if !errors.As(err, &planErr) {
				t.Fatalf("expected *PlanError, got %T", err)
			}
			if planErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", planErr.Field, tt.wantField)
			}
		})
	}
}

func TestFinancialPlan_CloneIsDeep(t *testing.T) {
	p := validPlan()
	p.Description = ptr("monthly rent")
	p.EndDate = ptr(valueobject.MustParseDate("2024-12-31"))
	p.IsRecurring = true
	p.RecurringType = ptr(RecurringMonthly)

	c := p.Clone()
	if !reflect.DeepEqual(p, c) {
		t.Fatal("clone differs from original")
	}

	*c.Description = "changed"
	*c.EndDate = valueobject.MustParseDate("2025-01-01")
	*c.RecurringType = RecurringDaily

	if *p.Description != "monthly rent" || p.EndDate.String() != "2024-12-31" || *p.RecurringType != RecurringMonthly {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestPlanPatch_Apply(t *testing.T) {
	t.Run("empty patch keeps the plan", func(t *testing.T) {
		p := validPlan()
		want := p.Clone()
		PlanPatch{}.Apply(p)
		if !reflect.DeepEqual(p, want) {
			t.Errorf("empty patch changed plan: %+v", p)
		}
	})

	t.Run("sets and clears optional fields", func(t *testing.T) {
		p := validPlan()
		p.Color = ptr("#ff0000")

		PlanPatch{
			Amount:     ptr(decimal.NewFromInt(90000)),
			EndDate:    ptr(valueobject.MustParseDate("2024-07-01")),
			Completed:  ptr(true),
			ClearColor: true,
		}.Apply(p)

		if !p.Amount.Equal(decimal.NewFromInt(90000)) {
			t.Errorf("amount = %s", p.Amount)
		}
		if p.EndDate == nil || p.EndDate.String() != "2024-07-01" {
			t.Errorf("end date = %v", p.EndDate)
		}
		if !p.Completed {
			t.Error("expected completed")
		}
		if p.Color != nil {
			t.Errorf("expected color cleared, got %q", *p.Color)
		}
		if p.ID != "plan-1" {
			t.Errorf("id changed to %q", p.ID)
		}
	})

	t.Run("turning recurrence off drops the cadence", func(t *testing.T) {
		p := validPlan()
		p.IsRecurring = true
		p.RecurringType = ptr(RecurringWeekly)

		PlanPatch{IsRecurring: ptr(false)}.Apply(p)

		if p.RecurringType != nil {
			t.Errorf("expected cadence cleared, got %v", *p.RecurringType)
		}
	})
}

func TestCalendarEntryID(t *testing.T) {
	got := CalendarEntryID("abc", valueobject.MustParseDate("2024-02-05"))
	if got != "abc@2024-02-05" {
		t.Errorf("CalendarEntryID = %q", got)
	}
}
