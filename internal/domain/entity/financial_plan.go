// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// PlanType represents the direction of a planned money movement.
type PlanType string

const (
	PlanTypeIncome  PlanType = "income"
	PlanTypeExpense PlanType = "expense"
)

// IsValid reports whether the plan type is a known value.
func (t PlanType) IsValid() bool {
	return t == PlanTypeIncome || t == PlanTypeExpense
}

// RecurringType represents the cadence of a recurring plan.
type RecurringType string

const (
	RecurringDaily   RecurringType = "daily"
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
	RecurringYearly  RecurringType = "yearly"
)

// IsValid reports whether the recurring type is a known cadence.
func (r RecurringType) IsValid() bool {
	switch r {
	case RecurringDaily, RecurringWeekly, RecurringMonthly, RecurringYearly:
		return true
	}
	return false
}

// PlanCategories is the category vocabulary offered by the plan form.
// Categories outside this list are accepted.
var PlanCategories = []string{
	"住居費",
	"食費",
	"交通費",
	"光熱費",
	"通信費",
	"医療費",
	"教育費",
	"娯楽費",
	"給与",
	"賞与",
	"投資収入",
	"その他収入",
	"その他支出",
}

// FinancialPlan represents a planned income or expense, optionally recurring.
type FinancialPlan struct {
	ID            string
	Title         string
	Description   *string
	Amount        decimal.Decimal
	Type          PlanType
	Category      string
	StartDate     valueobject.Date
	EndDate       *valueobject.Date
	IsRecurring   bool
	RecurringType *RecurringType
	AccountID     *string // Not resolved by the planner
	Completed     bool
	Color         *string
}

// PlanDraft holds the fields of a plan that has not been stored yet.
type PlanDraft struct {
	Title         string
	Description   *string
	Amount        decimal.Decimal
	Type          PlanType
	Category      string
	StartDate     valueobject.Date
	EndDate       *valueobject.Date
	IsRecurring   bool
	RecurringType *RecurringType
	AccountID     *string
	Completed     bool
	Color         *string
}

// NewFinancialPlan builds a plan from a draft and an id. The result is not validated.
func NewFinancialPlan(id string, draft PlanDraft) *FinancialPlan {
	plan := &FinancialPlan{
		ID:            id,
		Title:         draft.Title,
		Description:   cloneString(draft.Description),
		Amount:        draft.Amount,
		Type:          draft.Type,
		Category:      draft.Category,
		StartDate:     draft.StartDate,
		EndDate:       cloneDate(draft.EndDate),
		IsRecurring:   draft.IsRecurring,
		RecurringType: cloneRecurringType(draft.RecurringType),
		AccountID:     cloneString(draft.AccountID),
		Completed:     draft.Completed,
		Color:         cloneString(draft.Color),
	}
	plan.Normalize()
	return plan
}

// Normalize trims the title and category and drops the cadence of a
// non-recurring plan.
func (p *FinancialPlan) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	if !p.IsRecurring {
		p.RecurringType = nil
	}
}

// Storage limits for plan fields.
const (
	MaxTitleLength     = 255
	MaxCategoryLength  = 100
	MaxColorLength     = 32
	MaxAccountIDLength = 64
	AmountScale        = 4
)

// maxAmount is the first value that no longer fits 15 integer digits.
var maxAmount = decimal.New(1, 15)

// Validate checks every plan invariant and returns the first violation.
func (p *FinancialPlan) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidTitle, "title", "title is required")
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLength {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidTitle, "title", fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if !p.Amount.IsPositive() {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidAmount, "amount", "amount must be greater than zero")
	}
	if !p.Amount.Equal(p.Amount.Truncate(AmountScale)) {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidAmount, "amount", fmt.Sprintf("amount must have at most %d decimal places", AmountScale))
	}
	if p.Amount.GreaterThanOrEqual(maxAmount) {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidAmount, "amount", "amount is too large")
	}
	if !p.Type.IsValid() {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidPlanType, "type", "type must be 'income' or 'expense'")
	}
	if strings.TrimSpace(p.Category) == "" {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidCategory, "category", "category is required")
	}
	if utf8.RuneCountInString(p.Category) > MaxCategoryLength {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidCategory, "category", fmt.Sprintf("category must be at most %d characters", MaxCategoryLength))
	}
	if p.Color != nil && utf8.RuneCountInString(*p.Color) > MaxColorLength {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeMalformedPlan, "color", fmt.Sprintf("color must be at most %d characters", MaxColorLength))
	}
	if p.AccountID != nil && utf8.RuneCountInString(*p.AccountID) > MaxAccountIDLength {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeMalformedPlan, "account_id", fmt.Sprintf("account_id must be at most %d characters", MaxAccountIDLength))
	}
	if p.StartDate.IsZero() {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidStartDate, "start_date", "start_date is required")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return domainerror.NewPlanValidationError(domainerror.ErrCodeEndBeforeStart, "end_date", "end_date must not precede start_date")
	}
	if p.IsRecurring {
		if p.RecurringType == nil {
			return domainerror.NewPlanValidationError(domainerror.ErrCodeMissingRecurringType, "recurring_type", "recurring_type is required for recurring plans")
		}
		if !p.RecurringType.IsValid() {
			return domainerror.NewPlanValidationError(domainerror.ErrCodeInvalidRecurringType, "recurring_type", "recurring_type must be 'daily', 'weekly', 'monthly', or 'yearly'")
		}
	}
	return nil
}

// Clone returns a deep copy of the plan.
func (p *FinancialPlan) Clone() *FinancialPlan {
	if p == nil {
		return nil
	}
	c := *p
	c.Description = cloneString(p.Description)
	c.EndDate = cloneDate(p.EndDate)
	c.RecurringType = cloneRecurringType(p.RecurringType)
	c.AccountID = cloneString(p.AccountID)
	c.Color = cloneString(p.Color)
	return &c
}

// LastDate returns the last day the plan is effective on, or the start date
// when no end date is set.
func (p *FinancialPlan) LastDate() valueobject.Date {
	if p.EndDate != nil {
		return *p.EndDate
	}
	return p.StartDate
}

// ClonePlans deep-copies a slice of plans.
func ClonePlans(plans []*FinancialPlan) []*FinancialPlan {
	out := make([]*FinancialPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.Clone())
	}
	return out
}

// PlanPatch carries the fields of a partial update. Nil pointers leave the
// field unchanged; the Clear flags remove optional values.
type PlanPatch struct {
	Title         *string
	Description   *string
	Amount        *decimal.Decimal
	Type          *PlanType
	Category      *string
	StartDate     *valueobject.Date
	EndDate       *valueobject.Date
	IsRecurring   *bool
	RecurringType *RecurringType
	AccountID     *string
	Completed     *bool
	Color         *string

	ClearDescription   bool
	ClearEndDate       bool
	ClearRecurringType bool
	ClearAccountID     bool
	ClearColor         bool
}

// IsEmpty reports whether the patch changes nothing.
func (pp PlanPatch) IsEmpty() bool {
	return pp == PlanPatch{}
}

// Apply merges the patch onto plan in place. The id is never touched.
func (pp PlanPatch) Apply(plan *FinancialPlan) {
	if pp.Title != nil {
		plan.Title = *pp.Title
	}
	if pp.ClearDescription {
		plan.Description = nil
	} else if pp.Description != nil {
		plan.Description = cloneString(pp.Description)
	}
	if pp.Amount != nil {
		plan.Amount = *pp.Amount
	}
	if pp.Type != nil {
		plan.Type = *pp.Type
	}
	if pp.Category != nil {
		plan.Category = *pp.Category
	}
	if pp.StartDate != nil {
		plan.StartDate = *pp.StartDate
	}
	if pp.ClearEndDate {
		plan.EndDate = nil
	} else if pp.EndDate != nil {
		plan.EndDate = cloneDate(pp.EndDate)
	}
	if pp.IsRecurring != nil {
		plan.IsRecurring = *pp.IsRecurring
	}
	if pp.ClearRecurringType {
		plan.RecurringType = nil
	} else if pp.RecurringType != nil {
		plan.RecurringType = cloneRecurringType(pp.RecurringType)
	}
	if pp.ClearAccountID {
		plan.AccountID = nil
	} else if pp.AccountID != nil {
		plan.AccountID = cloneString(pp.AccountID)
	}
	if pp.Completed != nil {
		plan.Completed = *pp.Completed
	}
	if pp.ClearColor {
		plan.Color = nil
	} else if pp.Color != nil {
		plan.Color = cloneString(pp.Color)
	}
	plan.Normalize()
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneDate(d *valueobject.Date) *valueobject.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneRecurringType(r *RecurringType) *RecurringType {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
