package proration

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/plan"
)

// Params holds all necessary input for calculating proration when a
// subscription's plan or quantity changes mid-cycle. Timestamps are
// unix seconds. Range-checking the proration date is the caller's
// concern; a date outside the period yields a coefficient outside
// [0, 1] and the math proceeds.
type Params struct {
	// OldPlan is the plan currently billed by the subscription
	OldPlan *plan.Plan
	// NewPlan is the candidate plan being changed to
	NewPlan *plan.Plan
	// OldQuantity is the quantity currently billed
	OldQuantity decimal.Decimal
	// NewQuantity is the candidate quantity
	NewQuantity decimal.Decimal
	// CurrentPeriodStart is the start of the billing period being prorated
	CurrentPeriodStart int64
	// CurrentPeriodEnd is the end of the billing period being prorated
	CurrentPeriodEnd int64
	// ProrationDate is the effective time of the change
	ProrationDate int64
	// TrialEndRequested suppresses the remaining-time charge, matching
	// the provider: a trial override defers the new plan's billing
	TrialEndRequested bool
	// Currency stamps the emitted line items
	Currency string
}

// Result carries the zero, one or two synthetic line items a mid-cycle
// change produces.
type Result struct {
	// CreditItem is the negative unused-time line, if any
	CreditItem *invoice.LineItem
	// ChargeItem is the positive remaining-time line; nil when the new
	// plan bills on a different cycle or a trial override was requested
	ChargeItem *invoice.LineItem
}

// LineItems returns the emitted items in display order: credit first,
// then charge.
func (r *Result) LineItems() []*invoice.LineItem {
	var items []*invoice.LineItem
	if r.CreditItem != nil {
		items = append(items, r.CreditItem)
	}
	if r.ChargeItem != nil {
		items = append(items, r.ChargeItem)
	}
	return items
}
