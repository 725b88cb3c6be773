package dto

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/subscription"
	"github.com/flexprice/billingsim/internal/types"
	"github.com/flexprice/billingsim/internal/validator"
)

// CreateSubscriptionRequest represents the request payload for creating
// a subscription directly.
type CreateSubscriptionRequest struct {
	// customer is the id of the subscribing customer
	CustomerID string `json:"customer" validate:"required"`

	// plan is the id of the plan to bill on
	PlanID string `json:"plan" validate:"required"`

	// quantity is the number of plan units; defaults to 1
	Quantity *decimal.Decimal `json:"quantity,omitempty"`

	// trial_end puts the subscription in trial until this unix timestamp
	TrialEnd *int64 `json:"trial_end,omitempty"`

	// current_period_start anchors the first billing period; defaults to now
	CurrentPeriodStart *int64 `json:"current_period_start,omitempty"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpdateSubscriptionRequest carries a plan or quantity change applied to
// an existing subscription.
type UpdateSubscriptionRequest struct {
	PlanID   *string          `json:"plan,omitempty"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	TrialEnd *int64           `json:"trial_end,omitempty"`
}

// SubscriptionResponse is the API shape of a subscription.
type SubscriptionResponse struct {
	Object string `json:"object"`
	*subscription.Subscription
}

// NewSubscriptionResponse converts a domain subscription to its API shape.
func NewSubscriptionResponse(s *subscription.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{Object: "subscription", Subscription: s}
}

// ListSubscriptionsResponse is the paginated list envelope.
type ListSubscriptionsResponse struct {
	Items      []*SubscriptionResponse  `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
