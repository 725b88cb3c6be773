package price

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/types"
)

// Price is the newer-generation pricing object. Invoice lines reference
// prices by id; paying an invoice whose lines resolve to recurring
// prices materializes a subscription.
type Price struct {
	// ID is the unique identifier for the price
	ID string `json:"id"`

	// Currency is the price's currency in lowercase 3 letter ISO code
	Currency string `json:"currency"`

	// UnitAmount is the per-unit charge in the currency's smallest unit
	UnitAmount decimal.Decimal `json:"unit_amount"`

	// Recurring carries the billing cycle when the price is recurring;
	// nil means one-off
	Recurring *Recurring `json:"recurring,omitempty"`

	types.BaseModel
}

// Recurring describes the billing cycle of a recurring price.
type Recurring struct {
	Interval      types.BillingInterval `json:"interval"`
	IntervalCount int                   `json:"interval_count"`
}

// IsRecurring reports whether the price bills on a cycle.
func (p *Price) IsRecurring() bool {
	return p != nil && p.Recurring != nil
}

// Copy returns a detached snapshot of the price.
func (p *Price) Copy() *Price {
	if p == nil {
		return nil
	}
	out := *p
	if p.Recurring != nil {
		r := *p.Recurring
		out.Recurring = &r
	}
	return &out
}
