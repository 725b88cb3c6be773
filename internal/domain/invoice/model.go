package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/types"
)

// Invoice represents a simulated invoice. Amounts are in the currency's
// smallest unit; period bounds are unix seconds. Invoices are never
// deleted; the lifecycle is draft -> open -> paid.
type Invoice struct {
	// ID is the unique identifier for the invoice, prefixed in_
	ID string `json:"id"`

	// CustomerID is the customer this invoice bills
	CustomerID string `json:"customer_id"`

	// InvoiceStatus is the lifecycle state
	InvoiceStatus types.InvoiceStatus `json:"invoice_status"`

	// Currency is the invoice currency in lowercase 3 letter ISO code
	Currency string `json:"currency"`

	// LineItems is the ordered sequence of line items. Order matters for
	// display; the total is order-independent.
	LineItems []*LineItem `json:"line_items"`

	// AmountDue is derived: the signed sum of line item amounts
	AmountDue decimal.Decimal `json:"amount_due"`

	// StartingBalance is the customer's account balance at creation
	StartingBalance decimal.Decimal `json:"starting_balance"`

	// PeriodStart is the start of the period the invoice covers, unix seconds
	PeriodStart int64 `json:"period_start"`

	// PeriodEnd is the end of the period the invoice covers, unix seconds
	PeriodEnd int64 `json:"period_end"`

	// SubscriptionID references the subscription that produced or was
	// materialized by this invoice, if any
	SubscriptionID *string `json:"subscription_id,omitempty"`

	// ChargeID is set only after payment
	ChargeID *string `json:"charge_id,omitempty"`

	// PaymentIntentID is set only after finalize
	PaymentIntentID *string `json:"payment_intent_id,omitempty"`

	// Paid reports whether the invoice has been paid
	Paid bool `json:"paid"`

	// Attempted reports whether payment has been attempted
	Attempted bool `json:"attempted"`

	// Discount is copied from the customer at creation time
	Discount *customer.Discount `json:"discount,omitempty"`

	// Number is the human-readable invoice number, if assigned
	Number *string `json:"number,omitempty"`

	// ReceiptNumber is the receipt number, if assigned
	ReceiptNumber *string `json:"receipt_number,omitempty"`

	// NextPaymentAttempt is when the provider would retry collection,
	// unix seconds; set on upcoming-invoice previews
	NextPaymentAttempt *int64 `json:"next_payment_attempt,omitempty"`

	// Description is an optional caller-supplied description
	Description string `json:"description,omitempty"`

	// Metadata contains caller-supplied key-value pairs
	Metadata types.Metadata `json:"metadata,omitempty"`

	types.BaseModel
}

// Total recomputes the invoice total as the signed sum of line item
// amounts. It must always equal AmountDue on a stored invoice.
func (i *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.LineItems {
		total = total.Add(item.Amount)
	}
	return total
}

// RecalculateAmountDue re-derives AmountDue from the line items. Called
// after any line mutation so the stored invoice stays consistent.
func (i *Invoice) RecalculateAmountDue() {
	i.AmountDue = i.Total()
}

// IsDraft reports whether lines may still be added.
func (i *Invoice) IsDraft() bool {
	return i.InvoiceStatus == types.InvoiceStatusDraft
}

// Copy returns a deep copy of the invoice, including line items and the
// discount snapshot. Stores hand out copies so no caller can mutate
// stored state in place.
func (i *Invoice) Copy() *Invoice {
	if i == nil {
		return nil
	}
	out := *i
	out.Discount = i.Discount.Copy()
	out.SubscriptionID = copyStringPtr(i.SubscriptionID)
	out.ChargeID = copyStringPtr(i.ChargeID)
	out.PaymentIntentID = copyStringPtr(i.PaymentIntentID)
	out.Number = copyStringPtr(i.Number)
	out.ReceiptNumber = copyStringPtr(i.ReceiptNumber)
	if i.NextPaymentAttempt != nil {
		v := *i.NextPaymentAttempt
		out.NextPaymentAttempt = &v
	}
	if i.Metadata != nil {
		out.Metadata = i.Metadata.Merge(nil)
	}
	if i.LineItems != nil {
		out.LineItems = make([]*LineItem, len(i.LineItems))
		for idx, item := range i.LineItems {
			out.LineItems[idx] = item.Copy()
		}
	}
	return &out
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
