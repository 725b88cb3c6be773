package service

import (
	"context"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/paymentintent"
	"github.com/flexprice/billingsim/internal/types"
)

// PaymentIntentService manages payment intents. The simulator only
// creates them as a side effect of finalizing an invoice.
type PaymentIntentService interface {
	// CreateForInvoice creates an intent scoped to the invoice's amount due.
	CreateForInvoice(ctx context.Context, inv *invoice.Invoice) (*paymentintent.PaymentIntent, error)

	GetPaymentIntent(ctx context.Context, id string) (*dto.PaymentIntentResponse, error)
}

type paymentIntentService struct {
	ServiceParams
}

func NewPaymentIntentService(params ServiceParams) PaymentIntentService {
	return &paymentIntentService{ServiceParams: params}
}

func (s *paymentIntentService) CreateForInvoice(ctx context.Context, inv *invoice.Invoice) (*paymentintent.PaymentIntent, error) {
	pi := &paymentintent.PaymentIntent{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_INTENT),
		Amount:       inv.AmountDue,
		Currency:     inv.Currency,
		CustomerID:   inv.CustomerID,
		InvoiceID:    &inv.ID,
		IntentStatus: paymentintent.IntentStatusRequiresPaymentMethod,
		BaseModel:    types.GetDefaultBaseModel(types.GetAccountID(ctx)),
	}
	if err := s.PaymentIntentRepo.Create(ctx, pi); err != nil {
		return nil, err
	}

	s.Logger.Infow("created payment intent",
		"payment_intent_id", pi.ID,
		"invoice_id", inv.ID)
	return pi, nil
}

func (s *paymentIntentService) GetPaymentIntent(ctx context.Context, id string) (*dto.PaymentIntentResponse, error) {
	pi, err := s.PaymentIntentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentIntentResponse(pi), nil
}
