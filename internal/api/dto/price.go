package dto

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/price"
	"github.com/flexprice/billingsim/internal/types"
	"github.com/flexprice/billingsim/internal/validator"
)

// CreatePriceRequest represents the request payload for creating a price.
type CreatePriceRequest struct {
	// id optionally fixes the price id; generated when absent
	ID string `json:"id,omitempty"`

	// currency is the price currency
	Currency string `json:"currency,omitempty"`

	// unit_amount is the per-unit charge in the currency's smallest unit
	UnitAmount decimal.Decimal `json:"unit_amount"`

	// recurring carries the billing cycle when the price is recurring
	Recurring *RecurringRequest `json:"recurring,omitempty"`
}

// RecurringRequest is the billing cycle of a recurring price.
type RecurringRequest struct {
	Interval      types.BillingInterval `json:"interval" validate:"required"`
	IntervalCount int                   `json:"interval_count,omitempty" validate:"omitempty,min=1"`
}

func (r *CreatePriceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Recurring != nil {
		return r.Recurring.Interval.Validate()
	}
	return nil
}

// ToPrice converts the request to a domain price.
func (r *CreatePriceRequest) ToPrice(accountID, defaultCurrency string) *price.Price {
	id := r.ID
	if id == "" {
		id = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICE)
	}
	currency := r.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	p := &price.Price{
		ID:         id,
		Currency:   currency,
		UnitAmount: r.UnitAmount,
		BaseModel:  types.GetDefaultBaseModel(accountID),
	}
	if r.Recurring != nil {
		count := r.Recurring.IntervalCount
		if count == 0 {
			count = 1
		}
		p.Recurring = &price.Recurring{
			Interval:      r.Recurring.Interval,
			IntervalCount: count,
		}
	}
	return p
}

// PriceResponse is the API shape of a price.
type PriceResponse struct {
	Object string `json:"object"`
	*price.Price
}

// NewPriceResponse converts a domain price to its API shape.
func NewPriceResponse(p *price.Price) *PriceResponse {
	if p == nil {
		return nil
	}
	return &PriceResponse{Object: "price", Price: p}
}
