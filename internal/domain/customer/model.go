package customer

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/types"
)

// Customer represents a simulated customer. The invoice engine reads it
// for discount, balance and default source; it never mutates it directly.
type Customer struct {
	// ID is the unique identifier for the customer, prefixed cus_
	ID string `json:"id"`

	// Name is the name of the customer
	Name string `json:"name"`

	// Email is the email of the customer
	Email string `json:"email"`

	// Currency is the customer's currency in lowercase 3 letter ISO code
	Currency string `json:"currency"`

	// AccountBalance is the customer's running balance, in the currency's
	// smallest unit; it seeds starting_balance on new invoices
	AccountBalance decimal.Decimal `json:"account_balance"`

	// Discount is the discount currently applied to the customer, copied
	// onto invoices at creation time
	Discount *Discount `json:"discount,omitempty"`

	// DefaultSource is the id of the customer's default payment source,
	// if any
	DefaultSource *string `json:"default_source,omitempty"`

	// Metadata contains caller-supplied key-value pairs
	Metadata types.Metadata `json:"metadata,omitempty"`

	types.BaseModel
}

// Discount is the snapshot of a discount as applied to a customer or
// copied onto an invoice.
type Discount struct {
	CouponID   string           `json:"coupon_id"`
	PercentOff *decimal.Decimal `json:"percent_off,omitempty"`
	AmountOff  *decimal.Decimal `json:"amount_off,omitempty"`
}

// Copy returns a deep copy so invoices never alias the customer's
// discount record.
func (d *Discount) Copy() *Discount {
	if d == nil {
		return nil
	}
	out := &Discount{CouponID: d.CouponID}
	if d.PercentOff != nil {
		v := *d.PercentOff
		out.PercentOff = &v
	}
	if d.AmountOff != nil {
		v := *d.AmountOff
		out.AmountOff = &v
	}
	return out
}
