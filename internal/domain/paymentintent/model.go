package paymentintent

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/types"
)

// IntentStatus is the lifecycle status of a payment intent.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusSucceeded             IntentStatus = "succeeded"
)

// PaymentIntent is created as a side effect of finalizing an invoice,
// scoped to the invoice's amount due.
type PaymentIntent struct {
	// ID is the unique identifier for the payment intent, prefixed pi_
	ID string `json:"id"`

	// Amount is the amount the intent collects, in the currency's
	// smallest unit
	Amount decimal.Decimal `json:"amount"`

	// Currency is the intent currency in lowercase 3 letter ISO code
	Currency string `json:"currency"`

	// CustomerID is the customer the intent collects from
	CustomerID string `json:"customer_id"`

	// InvoiceID is the invoice the intent was created for, if any
	InvoiceID *string `json:"invoice_id,omitempty"`

	// IntentStatus is the lifecycle status
	IntentStatus IntentStatus `json:"intent_status"`

	types.BaseModel
}
