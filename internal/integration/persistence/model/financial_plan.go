// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// FinancialPlanModel represents the financial_plans table in the database.
// Rows are keyed by scope and plan id.
type FinancialPlanModel struct {
	Scope         string          `gorm:"type:varchar(64);primaryKey"`
	ID            string          `gorm:"type:varchar(64);primaryKey"`
	Title         string          `gorm:"type:varchar(255);not null"`
	Description   *string         `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Type          string          `gorm:"type:varchar(10);not null"`
	Category      string          `gorm:"type:varchar(100);not null"`
	StartDate     time.Time       `gorm:"type:date;not null;index"`
	EndDate       *time.Time      `gorm:"type:date"`
	IsRecurring   bool            `gorm:"not null;default:false"`
	RecurringType *string         `gorm:"type:varchar(10)"`
	AccountID     *string         `gorm:"type:varchar(64)"`
	Completed     bool            `gorm:"not null;default:false"`
	Color         *string         `gorm:"type:varchar(32)"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the FinancialPlanModel.
func (FinancialPlanModel) TableName() string {
	return "financial_plans"
}

// ToEntity converts a FinancialPlanModel to a domain FinancialPlan entity.
func (m *FinancialPlanModel) ToEntity() *entity.FinancialPlan {
	var endDate *valueobject.Date
	if m.EndDate != nil {
		d := valueobject.DateOf(m.EndDate.UTC())
		endDate = &d
	}

	var recurringType *entity.RecurringType
	if m.RecurringType != nil {
		r := entity.RecurringType(*m.RecurringType)
		recurringType = &r
	}

	return &entity.FinancialPlan{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Amount:        m.Amount,
		Type:          entity.PlanType(m.Type),
		Category:      m.Category,
		StartDate:     valueobject.DateOf(m.StartDate.UTC()),
		EndDate:       endDate,
		IsRecurring:   m.IsRecurring,
		RecurringType: recurringType,
		AccountID:     m.AccountID,
		Completed:     m.Completed,
		Color:         m.Color,
	}
}

// FinancialPlanFromEntity creates a FinancialPlanModel from a domain FinancialPlan entity.
func FinancialPlanFromEntity(scope string, plan *entity.FinancialPlan) *FinancialPlanModel {
	var endDate *time.Time
	if plan.EndDate != nil {
		t := plan.EndDate.Time()
		endDate = &t
	}

	var recurringType *string
	if plan.RecurringType != nil {
		r := string(*plan.RecurringType)
		recurringType = &r
	}

	return &FinancialPlanModel{
		Scope:         scope,
		ID:            plan.ID,
		Title:         plan.Title,
		Description:   plan.Description,
		Amount:        plan.Amount,
		Type:          string(plan.Type),
		Category:      plan.Category,
		StartDate:     plan.StartDate.Time(),
		EndDate:       endDate,
		IsRecurring:   plan.IsRecurring,
		RecurringType: recurringType,
		AccountID:     plan.AccountID,
		Completed:     plan.Completed,
		Color:         plan.Color,
	}
}

// PlanDocument is the JSON form of a plan kept in key-value backends.
type PlanDocument struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description,omitempty"`
	Amount        decimal.Decimal   `json:"amount"`
	Type          string            `json:"type"`
	Category      string            `json:"category"`
	StartDate     valueobject.Date  `json:"startDate"`
	EndDate       *valueobject.Date `json:"endDate,omitempty"`
	IsRecurring   bool              `json:"isRecurring"`
	RecurringType *string           `json:"recurringType,omitempty"`
	AccountID     *string           `json:"accountId,omitempty"`
	Completed     bool              `json:"completed"`
	Color         *string           `json:"color,omitempty"`
}

// ToEntity converts a PlanDocument to a domain FinancialPlan entity.
func (d *PlanDocument) ToEntity() *entity.FinancialPlan {
	var recurringType *entity.RecurringType
	if d.RecurringType != nil {
		r := entity.RecurringType(*d.RecurringType)
		recurringType = &r
	}

	plan := &entity.FinancialPlan{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Amount:        d.Amount,
		Type:          entity.PlanType(d.Type),
		Category:      d.Category,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		IsRecurring:   d.IsRecurring,
		RecurringType: recurringType,
		AccountID:     d.AccountID,
		Completed:     d.Completed,
		Color:         d.Color,
	}
	return plan.Clone()
}

// PlanDocumentFromEntity creates a PlanDocument from a domain FinancialPlan entity.
func PlanDocumentFromEntity(plan *entity.FinancialPlan) *PlanDocument {
	c := plan.Clone()

	var recurringType *string
	if c.RecurringType != nil {
		r := string(*c.RecurringType)
		recurringType = &r
	}

	return &PlanDocument{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Amount:        c.Amount,
		Type:          string(c.Type),
		Category:      c.Category,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		IsRecurring:   c.IsRecurring,
		RecurringType: recurringType,
		AccountID:     c.AccountID,
		Completed:     c.Completed,
		Color:         c.Color,
	}
}
