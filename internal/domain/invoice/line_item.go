package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/types"
)

// LineItem is a single priced entry on an invoice. A negative amount is
// a credit. The plan field is a snapshot copy, never a reference.
type LineItem struct {
	// ID is the unique identifier for the line item, prefixed ii_
	ID string `json:"id"`

	// InvoiceID is the owning invoice, empty on preview lines
	InvoiceID string `json:"invoice_id,omitempty"`

	// Amount is the signed charge in the currency's smallest unit
	Amount decimal.Decimal `json:"amount"`

	// Currency is the line currency in lowercase 3 letter ISO code
	Currency string `json:"currency"`

	// Description is the display description
	Description string `json:"description"`

	// Plan is the plan snapshot the line bills, if any
	Plan *plan.Plan `json:"plan,omitempty"`

	// PriceID references a price object, if the line bills one
	PriceID *string `json:"price_id,omitempty"`

	// Quantity is the number of units billed
	Quantity decimal.Decimal `json:"quantity"`

	// PeriodStart is the start of the period the line covers, unix seconds
	PeriodStart int64 `json:"period_start"`

	// PeriodEnd is the end of the period the line covers, unix seconds
	PeriodEnd int64 `json:"period_end"`

	// Proration marks lines produced by mid-cycle plan changes
	Proration bool `json:"proration"`

	// Discountable reports whether discounts apply to this line
	Discountable bool `json:"discountable"`

	// Type tags the origin of the line
	Type types.LineItemType `json:"type"`
}

// Copy returns a deep copy including the plan snapshot.
func (li *LineItem) Copy() *LineItem {
	if li == nil {
		return nil
	}
	out := *li
	out.Plan = li.Plan.Copy()
	out.PriceID = copyStringPtr(li.PriceID)
	return &out
}

// LineItemParams is a partial line item specification. Nil fields take
// the builder defaults.
type LineItemParams struct {
	ID           string
	Amount       *decimal.Decimal
	Currency     string
	Description  *string
	Plan         *plan.Plan
	PriceID      *string
	Quantity     *decimal.Decimal
	PeriodStart  *int64
	PeriodEnd    *int64
	Proration    bool
	Discountable *bool
	Type         types.LineItemType
}

// LineItemDefaults carries the configured defaults the builder fills
// unspecified fields with.
type LineItemDefaults struct {
	Amount   decimal.Decimal
	Currency string
}

// NewLineItem builds a full line item from a partial specification plus
// defaults. This is the single construction path for invoice lines so
// defaulting stays uniform across create, add_lines and proration.
func NewLineItem(params LineItemParams, defaults LineItemDefaults) *LineItem {
	item := &LineItem{
		ID:           params.ID,
		Amount:       defaults.Amount,
		Currency:     defaults.Currency,
		Description:  "Invoice item",
		Plan:         params.Plan.Copy(),
		PriceID:      copyStringPtr(params.PriceID),
		Quantity:     decimal.NewFromInt(1),
		Proration:    params.Proration,
		Discountable: true,
		Type:         types.LineItemTypeInvoiceItem,
	}
	if item.ID == "" {
		item.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM)
	}
	if params.Amount != nil {
		item.Amount = *params.Amount
	}
	if params.Currency != "" {
		item.Currency = params.Currency
	}
	if params.Description != nil {
		item.Description = *params.Description
	}
	if params.Quantity != nil {
		item.Quantity = *params.Quantity
	}
	if params.PeriodStart != nil {
		item.PeriodStart = *params.PeriodStart
	}
	if params.PeriodEnd != nil {
		item.PeriodEnd = *params.PeriodEnd
	}
	if params.Discountable != nil {
		item.Discountable = *params.Discountable
	}
	if params.Type != "" {
		item.Type = params.Type
	}
	return item
}
