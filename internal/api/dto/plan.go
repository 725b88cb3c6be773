package dto

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/types"
	"github.com/flexprice/billingsim/internal/validator"
)

// CreatePlanRequest represents the request payload for creating a plan.
type CreatePlanRequest struct {
	// id optionally fixes the plan id; generated when absent
	ID string `json:"id,omitempty"`

	// name is the plan's display name
	Name string `json:"name,omitempty"`

	// amount is the per-unit price in the currency's smallest unit
	Amount decimal.Decimal `json:"amount"`

	// currency is the plan currency
	Currency string `json:"currency,omitempty"`

	// interval is the billing interval: day, week, month or year
	Interval types.BillingInterval `json:"interval" validate:"required"`

	// interval_count is the number of intervals per billing cycle
	IntervalCount int `json:"interval_count,omitempty" validate:"omitempty,min=1"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Interval.Validate()
}

// ToPlan converts the request to a domain plan.
func (r *CreatePlanRequest) ToPlan(accountID, defaultCurrency string) *plan.Plan {
	id := r.ID
	if id == "" {
		id = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN)
	}
	currency := r.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	intervalCount := r.IntervalCount
	if intervalCount == 0 {
		intervalCount = 1
	}
	return &plan.Plan{
		ID:            id,
		Name:          r.Name,
		Amount:        r.Amount,
		Currency:      currency,
		Interval:      r.Interval,
		IntervalCount: intervalCount,
		BaseModel:     types.GetDefaultBaseModel(accountID),
	}
}

// PlanResponse is the API shape of a plan.
type PlanResponse struct {
	Object string `json:"object"`
	*plan.Plan
}

// NewPlanResponse converts a domain plan to its API shape.
func NewPlanResponse(p *plan.Plan) *PlanResponse {
	if p == nil {
		return nil
	}
	return &PlanResponse{Object: "plan", Plan: p}
}

// ListPlansResponse is the paginated list envelope.
type ListPlansResponse struct {
	Items      []*PlanResponse          `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
