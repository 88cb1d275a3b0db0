package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/entity"
	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// CreatePlanRequest represents the request body for plan creation.
type CreatePlanRequest struct {
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	StartDate     string          `json:"start_date"`
	EndDate       *string         `json:"end_date,omitempty"`
	IsRecurring   bool            `json:"is_recurring"`
	RecurringType *string         `json:"recurring_type,omitempty"`
	AccountID     *string         `json:"account_id,omitempty"`
	Completed     bool            `json:"completed"`
	Color         *string         `json:"color,omitempty"`
}

// ToDraft converts the request into a plan draft. Only date parsing is
// checked here; every other rule is enforced by the plan store.
func (r CreatePlanRequest) ToDraft() (entity.PlanDraft, error) {
	start, err := parseRequiredDate(r.StartDate, "start_date", domainerror.ErrCodeInvalidStartDate)
	if err != nil {
		return entity.PlanDraft{}, err
	}
	end, err := parseOptionalDate(r.EndDate, "end_date")
	if err != nil {
		return entity.PlanDraft{}, err
	}

	draft := entity.PlanDraft{
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		Type:        entity.PlanType(r.Type),
		Category:    r.Category,
		StartDate:   start,
		EndDate:     end,
		IsRecurring: r.IsRecurring,
		AccountID:   r.AccountID,
		Completed:   r.Completed,
		Color:       r.Color,
	}
	if r.RecurringType != nil {
		cadence := entity.RecurringType(*r.RecurringType)
		draft.RecurringType = &cadence
	}
	return draft, nil
}

// UpdatePlanRequest represents the request body for a partial plan update.
// Sending null for description, end_date, recurring_type, account_id or color
// removes the value.
type UpdatePlanRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   Nullable[string] `json:"description"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Type          *string          `json:"type,omitempty"`
	Category      *string          `json:"category,omitempty"`
	StartDate     *string          `json:"start_date,omitempty"`
	EndDate       Nullable[string] `json:"end_date"`
	IsRecurring   *bool            `json:"is_recurring,omitempty"`
	RecurringType Nullable[string] `json:"recurring_type"`
	AccountID     Nullable[string] `json:"account_id"`
	Completed     *bool            `json:"completed,omitempty"`
	Color         Nullable[string] `json:"color"`
}

// ToPatch converts the request into a plan patch.
func (r UpdatePlanRequest) ToPatch() (entity.PlanPatch, error) {
	patch := entity.PlanPatch{
		Title:            r.Title,
		Amount:           r.Amount,
		Category:         r.Category,
		IsRecurring:      r.IsRecurring,
		Completed:        r.Completed,
		Description:      r.Description.Ptr(),
		ClearDescription: r.Description.Null,
		AccountID:        r.AccountID.Ptr(),
		ClearAccountID:   r.AccountID.Null,
		Color:            r.Color.Ptr(),
		ClearColor:       r.Color.Null,
		ClearEndDate:     r.EndDate.Null,
	}

	if r.Type != nil {
		planType := entity.PlanType(*r.Type)
		patch.Type = &planType
	}

	if r.StartDate != nil {
		start, err := parseRequiredDate(*r.StartDate, "start_date", domainerror.ErrCodeInvalidStartDate)
		if err != nil {
			return entity.PlanPatch{}, err
		}
		patch.StartDate = &start
	}

	end, err := parseOptionalDate(r.EndDate.Ptr(), "end_date")
	if err != nil {
		return entity.PlanPatch{}, err
	}
	patch.EndDate = end

	if cadence := r.RecurringType.Ptr(); cadence != nil {
		rt := entity.RecurringType(*cadence)
		patch.RecurringType = &rt
	}
	patch.ClearRecurringType = r.RecurringType.Null

	return patch, nil
}

func parseRequiredDate(s, field string, code domainerror.PlanErrorCode) (valueobject.Date, error) {
	d, err := valueobject.ParseDate(s)
	if err != nil {
		return valueobject.Date{}, domainerror.NewPlanValidationError(code, field, "must be a date in YYYY-MM-DD form")
	}
	return d, nil
}

func parseOptionalDate(s *string, field string) (*valueobject.Date, error) {
	if s == nil {
		return nil, nil
	}
	d, err := valueobject.ParseDate(*s)
	if err != nil {
		return nil, domainerror.NewPlanValidationError(domainerror.ErrCodeMalformedPlan, field, "must be a date in YYYY-MM-DD form")
	}
	return &d, nil
}

// PlanResponse represents a single plan in API responses.
type PlanResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	StartDate     string          `json:"start_date"`
	EndDate       *string         `json:"end_date,omitempty"`
	IsRecurring   bool            `json:"is_recurring"`
	RecurringType *string         `json:"recurring_type,omitempty"`
	AccountID     *string         `json:"account_id,omitempty"`
	Completed     bool            `json:"completed"`
	Color         *string         `json:"color,omitempty"`
}

// PlanListResponse represents the response for listing plans.
type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// DeletePlanResponse reports whether a plan was removed.
type DeletePlanResponse struct {
	Deleted bool `json:"deleted"`
}

// ToPlanResponse converts a domain FinancialPlan entity to a PlanResponse DTO.
func ToPlanResponse(p *entity.FinancialPlan) PlanResponse {
	response := PlanResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Amount:      p.Amount,
		Type:        string(p.Type),
		Category:    p.Category,
		StartDate:   p.StartDate.String(),
		IsRecurring: p.IsRecurring,
		AccountID:   p.AccountID,
		Completed:   p.Completed,
		Color:       p.Color,
	}

	if p.EndDate != nil {
		end := p.EndDate.String()
		response.EndDate = &end
	}

	if p.RecurringType != nil {
		cadence := string(*p.RecurringType)
		response.RecurringType = &cadence
	}

	return response
}

// ToPlanListResponse converts a list of plans to a PlanListResponse DTO.
func ToPlanListResponse(plans []*entity.FinancialPlan) PlanListResponse {
	response := PlanListResponse{Plans: make([]PlanResponse, 0, len(plans))}
	for _, p := range plans {
		response.Plans = append(response.Plans, ToPlanResponse(p))
	}
	return response
}
