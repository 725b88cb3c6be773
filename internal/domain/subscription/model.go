package subscription

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/types"
)

// Subscription represents a simulated subscription. Period bounds are
// unix seconds, the shape the provider puts on the wire.
type Subscription struct {
	// ID is the unique identifier for the subscription, prefixed sub_
	ID string `json:"id"`

	// CustomerID is the identifier of the owning customer
	CustomerID string `json:"customer_id"`

	// PlanID is the id of the plan the subscription bills on
	PlanID string `json:"plan_id"`

	// Plan is the snapshot of the plan at subscription time
	Plan *plan.Plan `json:"plan,omitempty"`

	// Quantity is the number of plan units subscribed
	Quantity decimal.Decimal `json:"quantity"`

	// Items lists the price/quantity pairs the subscription bills; the
	// first item anchors the plan snapshot
	Items []*SubscriptionItem `json:"items,omitempty"`

	// SubscriptionStatus is the status of the subscription; a trialing
	// subscription bills zero until the trial ends
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status"`

	// CurrentPeriodStart is the start of the period the subscription has
	// been invoiced for, unix seconds
	CurrentPeriodStart int64 `json:"current_period_start"`

	// CurrentPeriodEnd is the end of the period the subscription has been
	// invoiced for, unix seconds; the next invoice is dated here
	CurrentPeriodEnd int64 `json:"current_period_end"`

	// TrialEnd is the unix timestamp the trial ends at, if any
	TrialEnd *int64 `json:"trial_end,omitempty"`

	types.BaseModel
}

// SubscriptionItem records one recurring price the subscription bills.
type SubscriptionItem struct {
	// PriceID references the recurring price
	PriceID string `json:"price_id"`

	// Quantity is the number of units billed for this price
	Quantity decimal.Decimal `json:"quantity"`
}

// IsTrialing reports whether the subscription is in its trial period.
func (s *Subscription) IsTrialing() bool {
	return s.SubscriptionStatus == types.SubscriptionStatusTrialing
}

// Copy returns a deep copy including the plan snapshot.
func (s *Subscription) Copy() *Subscription {
	if s == nil {
		return nil
	}
	out := *s
	out.Plan = s.Plan.Copy()
	if s.Items != nil {
		out.Items = make([]*SubscriptionItem, len(s.Items))
		for i, item := range s.Items {
			v := *item
			out.Items[i] = &v
		}
	}
	if s.TrialEnd != nil {
		v := *s.TrialEnd
		out.TrialEnd = &v
	}
	return &out
}
