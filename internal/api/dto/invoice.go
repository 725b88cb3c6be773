package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/charge"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/paymentintent"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	"github.com/flexprice/billingsim/internal/types"
	"github.com/flexprice/billingsim/internal/validator"
)

// CreateInvoiceRequest represents the request payload for creating a new
// invoice. The engine builds one default line item and merges these
// fields over the invoice defaults.
type CreateInvoiceRequest struct {
	// customer is the id of the customer this invoice bills
	CustomerID string `json:"customer" validate:"required"`

	// currency is the three-letter ISO currency code for the invoice
	Currency string `json:"currency,omitempty"`

	// description is an optional text description of the invoice
	Description string `json:"description,omitempty"`

	// subscription optionally ties the invoice to a subscription
	SubscriptionID *string `json:"subscription,omitempty"`

	// period_start is the start of the period the invoice covers, unix seconds
	PeriodStart *int64 `json:"period_start,omitempty"`

	// period_end is the end of the period the invoice covers, unix seconds
	PeriodEnd *int64 `json:"period_end,omitempty"`

	// metadata contains additional custom key-value pairs
	Metadata types.Metadata `json:"metadata,omitempty"`

	// expand lists reference fields to resolve in the response
	Expand []string `json:"expand,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpdateInvoiceRequest carries the fields an update may merge into a
// stored invoice. The line item collection is deliberately absent; line
// mutation goes through add_lines.
type UpdateInvoiceRequest struct {
	Description   *string        `json:"description,omitempty"`
	Number        *string        `json:"number,omitempty"`
	ReceiptNumber *string        `json:"receipt_number,omitempty"`
	PeriodStart   *int64         `json:"period_start,omitempty"`
	PeriodEnd     *int64         `json:"period_end,omitempty"`
	Metadata      types.Metadata `json:"metadata,omitempty"`
	Expand        []string       `json:"expand,omitempty"`
}

// CreateLineItemRequest is a partial line item specification; nil fields
// take the builder defaults.
type CreateLineItemRequest struct {
	// amount is the signed charge in the currency's smallest unit
	Amount *decimal.Decimal `json:"amount,omitempty"`

	// currency is the line currency
	Currency string `json:"currency,omitempty"`

	// description is the display description
	Description *string `json:"description,omitempty"`

	// price references a price object the line bills
	PriceID *string `json:"price,omitempty"`

	// plan references a plan whose snapshot the line carries
	PlanID *string `json:"plan,omitempty"`

	// quantity is the number of units billed
	Quantity *decimal.Decimal `json:"quantity,omitempty"`

	// period bounds the line covers, unix seconds
	PeriodStart *int64 `json:"period_start,omitempty"`
	PeriodEnd   *int64 `json:"period_end,omitempty"`

	// proration marks lines produced by mid-cycle plan changes
	Proration bool `json:"proration,omitempty"`

	// discountable reports whether discounts apply to this line
	Discountable *bool `json:"discountable,omitempty"`
}

// AddInvoiceLinesRequest appends line items to a draft invoice.
type AddInvoiceLinesRequest struct {
	Lines  []CreateLineItemRequest `json:"lines" validate:"required,min=1"`
	Expand []string                `json:"expand,omitempty"`
}

func (r *AddInvoiceLinesRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// PayInvoiceRequest carries the optional expansion list for the pay
// response.
type PayInvoiceRequest struct {
	Expand []string `json:"expand,omitempty"`
}

// FinalizeInvoiceRequest carries the optional expansion list for the
// finalize response.
type FinalizeInvoiceRequest struct {
	Expand []string `json:"expand,omitempty"`
}

// UpcomingInvoiceRequest describes an upcoming-invoice preview. Exactly
// one of customer or subscription is required; the remaining fields
// describe a candidate plan/quantity change to prorate.
type UpcomingInvoiceRequest struct {
	CustomerID                string           `json:"customer,omitempty" form:"customer"`
	SubscriptionID            string           `json:"subscription,omitempty" form:"subscription"`
	SubscriptionPlan          string           `json:"subscription_plan,omitempty" form:"subscription_plan"`
	SubscriptionQuantity      *decimal.Decimal `json:"subscription_quantity,omitempty" form:"subscription_quantity"`
	SubscriptionProrationDate *int64           `json:"subscription_proration_date,omitempty" form:"subscription_proration_date"`
	SubscriptionTrialEnd      *int64           `json:"subscription_trial_end,omitempty" form:"subscription_trial_end"`
	Expand                    []string         `json:"expand,omitempty" form:"expand"`
}

// SearchInvoicesRequest carries the search query.
type SearchInvoicesRequest struct {
	Query  string `json:"query,omitempty" form:"query"`
	Limit  *int   `json:"limit,omitempty" form:"limit"`
	Offset *int   `json:"offset,omitempty" form:"offset"`
}

// InvoiceResponse is the provider-shaped representation of an invoice.
// The four reference fields marshal as ids unless expansion resolved
// them.
type InvoiceResponse struct {
	ID                 string                               `json:"id"`
	Object             string                               `json:"object"`
	Status             types.InvoiceStatus                  `json:"status"`
	Currency           string                               `json:"currency"`
	Customer           Expandable[customer.Customer]        `json:"customer"`
	Subscription       Expandable[subscription.Subscription] `json:"subscription"`
	Charge             Expandable[charge.Charge]            `json:"charge"`
	PaymentIntent      Expandable[paymentintent.PaymentIntent] `json:"payment_intent"`
	Lines              *InvoiceLinesResponse                `json:"lines"`
	AmountDue          decimal.Decimal                      `json:"amount_due"`
	Total              decimal.Decimal                      `json:"total"`
	StartingBalance    decimal.Decimal                      `json:"starting_balance"`
	PeriodStart        int64                                `json:"period_start"`
	PeriodEnd          int64                                `json:"period_end"`
	Paid               bool                                 `json:"paid"`
	Attempted          bool                                 `json:"attempted"`
	Discount           *customer.Discount                   `json:"discount,omitempty"`
	Number             *string                              `json:"number,omitempty"`
	ReceiptNumber      *string                              `json:"receipt_number,omitempty"`
	NextPaymentAttempt *int64                               `json:"next_payment_attempt,omitempty"`
	Description        string                               `json:"description,omitempty"`
	Metadata           types.Metadata                       `json:"metadata,omitempty"`
	CreatedAt          time.Time                            `json:"created_at"`
}

// InvoiceLinesResponse is the provider's list envelope for line items.
type InvoiceLinesResponse struct {
	Object     string              `json:"object"`
	Data       []*invoice.LineItem `json:"data"`
	TotalCount int                 `json:"total_count"`
}

// NewInvoiceResponse converts a domain invoice to its API shape.
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:                 inv.ID,
		Object:             "invoice",
		Status:             inv.InvoiceStatus,
		Currency:           inv.Currency,
		Customer:           NewExpandable[customer.Customer](inv.CustomerID),
		Subscription:       NewExpandablePtr[subscription.Subscription](inv.SubscriptionID),
		Charge:             NewExpandablePtr[charge.Charge](inv.ChargeID),
		PaymentIntent:      NewExpandablePtr[paymentintent.PaymentIntent](inv.PaymentIntentID),
		Lines:              NewInvoiceLinesResponse(inv.LineItems),
		AmountDue:          inv.AmountDue,
		Total:              inv.Total(),
		StartingBalance:    inv.StartingBalance,
		PeriodStart:        inv.PeriodStart,
		PeriodEnd:          inv.PeriodEnd,
		Paid:               inv.Paid,
		Attempted:          inv.Attempted,
		Discount:           inv.Discount,
		Number:             inv.Number,
		ReceiptNumber:      inv.ReceiptNumber,
		NextPaymentAttempt: inv.NextPaymentAttempt,
		Description:        inv.Description,
		Metadata:           inv.Metadata,
		CreatedAt:          inv.CreatedAt,
	}
}

// NewInvoiceLinesResponse wraps line items in the list envelope.
func NewInvoiceLinesResponse(items []*invoice.LineItem) *InvoiceLinesResponse {
	if items == nil {
		items = []*invoice.LineItem{}
	}
	return &InvoiceLinesResponse{
		Object:     "list",
		Data:       items,
		TotalCount: len(items),
	}
}

// ListInvoicesResponse is the paginated list envelope.
type ListInvoicesResponse struct {
	Items      []*InvoiceResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
