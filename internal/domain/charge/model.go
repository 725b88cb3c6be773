package charge

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/types"
)

// ChargeStatus is the settlement status of a charge. The simulator
// settles every accepted charge immediately.
type ChargeStatus string

const (
	ChargeStatusSucceeded ChargeStatus = "succeeded"
)

// Charge records a simulated payment. Exactly one of CustomerID or
// Source is set: charges against a stored customer use their default
// source, anonymous charges carry the raw token.
type Charge struct {
	// ID is the unique identifier for the charge, prefixed ch_
	ID string `json:"id"`

	// CustomerID is the charged customer, when charging a stored customer
	CustomerID *string `json:"customer_id,omitempty"`

	// Source is the raw payment source token, when charging anonymously
	Source *string `json:"source,omitempty"`

	// Amount is the charged amount in the currency's smallest unit
	Amount decimal.Decimal `json:"amount"`

	// Currency is the charge currency in lowercase 3 letter ISO code
	Currency string `json:"currency"`

	// Paid reports whether the charge settled
	Paid bool `json:"paid"`

	// ChargeStatus is the settlement status
	ChargeStatus ChargeStatus `json:"charge_status"`

	types.BaseModel
}
