package dto

import (
	"github.com/flexprice/billingsim/internal/domain/charge"
	"github.com/flexprice/billingsim/internal/domain/paymentintent"
)

// ChargeResponse is the API shape of a charge.
type ChargeResponse struct {
	Object string `json:"object"`
	*charge.Charge
}

// NewChargeResponse converts a domain charge to its API shape.
func NewChargeResponse(c *charge.Charge) *ChargeResponse {
	if c == nil {
		return nil
	}
	return &ChargeResponse{Object: "charge", Charge: c}
}

// PaymentIntentResponse is the API shape of a payment intent.
type PaymentIntentResponse struct {
	Object string `json:"object"`
	*paymentintent.PaymentIntent
}

// NewPaymentIntentResponse converts a domain payment intent to its API
// shape.
func NewPaymentIntentResponse(pi *paymentintent.PaymentIntent) *PaymentIntentResponse {
	if pi == nil {
		return nil
	}
	return &PaymentIntentResponse{Object: "payment_intent", PaymentIntent: pi}
}
