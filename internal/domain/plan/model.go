package plan

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/types"
)

// Plan is a recurring pricing plan. Invoice line items and subscriptions
// carry snapshots of it, never references, so later plan edits cannot
// retroactively alter historical invoices.
type Plan struct {
	// ID is the unique identifier for the plan
	ID string `json:"id"`

	// Name is the display name of the plan
	Name string `json:"name"`

	// Amount is the per-interval charge in the currency's smallest unit
	Amount decimal.Decimal `json:"amount"`

	// Currency is the plan's currency in lowercase 3 letter ISO code
	Currency string `json:"currency"`

	// Interval is the unit of the billing cycle
	Interval types.BillingInterval `json:"interval"`

	// IntervalCount is the number of intervals per billing cycle
	IntervalCount int `json:"interval_count"`

	types.BaseModel
}

// Copy returns a detached snapshot of the plan.
func (p *Plan) Copy() *Plan {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// SameBillingCycle reports whether two plans bill on the same interval
// and interval count. Remaining-time proration charges only apply across
// plans with matching cycles.
func (p *Plan) SameBillingCycle(other *Plan) bool {
	if p == nil || other == nil {
		return false
	}
	return p.Interval == other.Interval && p.IntervalCount == other.IntervalCount
}
