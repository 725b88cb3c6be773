package types

import (
	"strings"

	ierr "github.com/flexprice/billingsim/internal/errors"
)

// ExpandableField represents a reference field that can be expanded into
// the fully resolved resource in API responses.
type ExpandableField string

const (
	ExpandCustomer      ExpandableField = "customer"
	ExpandCharge        ExpandableField = "charge"
	ExpandSubscription  ExpandableField = "subscription"
	ExpandPaymentIntent ExpandableField = "payment_intent"
)

// ExpandConfig defines which fields can be expanded on a resource
type ExpandConfig struct {
	AllowedFields []ExpandableField
}

// InvoiceExpandConfig defines what can be expanded on an invoice
var InvoiceExpandConfig = ExpandConfig{
	AllowedFields: []ExpandableField{
		ExpandCustomer,
		ExpandCharge,
		ExpandSubscription,
		ExpandPaymentIntent,
	},
}

// Expand represents the expand parameter in API requests
type Expand struct {
	Fields map[ExpandableField]bool
}

// NewExpand creates a new Expand from a comma-separated string of fields
func NewExpand(expand string) Expand {
	result := Expand{Fields: make(map[ExpandableField]bool)}
	if expand == "" {
		return result
	}
	for _, field := range strings.Split(expand, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		result.Fields[ExpandableField(field)] = true
	}
	return result
}

// NewExpandFromFields creates an Expand from an explicit field list, the
// shape body parameters arrive in.
func NewExpandFromFields(fields []string) Expand {
	return NewExpand(strings.Join(fields, ","))
}

// Has checks if a field should be expanded
func (e Expand) Has(field ExpandableField) bool {
	return e.Fields[field]
}

// IsEmpty checks if no fields are to be expanded
func (e Expand) IsEmpty() bool {
	return len(e.Fields) == 0
}

// Validate checks if the expand request is valid according to the config
func (e Expand) Validate(config ExpandConfig) error {
	for field := range e.Fields {
		allowed := false
		for _, allowedField := range config.AllowedFields {
			if field == allowedField {
				allowed = true
				break
			}
		}
		if !allowed {
			return ierr.NewError("field not allowed to be expanded").
				WithHintf("field %q is not allowed to be expanded", field).
				WithReportableDetails(map[string]any{
					"field": field,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
