package types

import (
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// InvoiceStatus is the lifecycle state of an invoice. The lifecycle is
// strictly linear: draft -> open -> paid. Drafts are the only mutable
// state; finalizing is a one-way gate.
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice is mutable and lines may be added
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusOpen indicates the invoice is finalized and awaiting payment
	InvoiceStatusOpen InvoiceStatus = "open"
	// InvoiceStatusPaid is the terminal state for this subsystem
	InvoiceStatusPaid InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusOpen,
		InvoiceStatusPaid,
	}
	for _, status := range allowed {
		if s == status {
			return nil
		}
	}
	return ierr.NewError("invalid invoice status").
		WithHintf("invoice status must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}

// LineItemType tags the origin of an invoice line item.
type LineItemType string

const (
	LineItemTypeInvoiceItem  LineItemType = "invoiceitem"
	LineItemTypeSubscription LineItemType = "subscription"
)

// InvoiceFilter is the filter for listing invoices. CustomerID is an
// exact-match filter on the invoice's customer reference.
type InvoiceFilter struct {
	*QueryFilter
	CustomerID string `json:"customer_id,omitempty" form:"customer"`
}

func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f *InvoiceFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *InvoiceFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

func (f *InvoiceFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

func (f *InvoiceFilter) Validate() error {
	if f.QueryFilter != nil {
		return f.QueryFilter.Validate()
	}
	return nil
}

// InvoiceSearchFields is the allow-listed field set /invoices/search
// matches against.
var InvoiceSearchFields = []string{
	"currency",
	"customer",
	"number",
	"receipt_number",
	"subscription",
	"total",
}
