package store

import (
	"context"

	"github.com/flexprice/billingsim/internal/domain/paymentintent"
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// InMemoryPaymentIntentStore implements paymentintent.Repository
type InMemoryPaymentIntentStore struct {
	*InMemoryStore[*paymentintent.PaymentIntent]
}

// NewInMemoryPaymentIntentStore creates a new in-memory payment intent store
func NewInMemoryPaymentIntentStore() *InMemoryPaymentIntentStore {
	return &InMemoryPaymentIntentStore{
		InMemoryStore: NewInMemoryStore[*paymentintent.PaymentIntent](),
	}
}

func copyPaymentIntent(pi *paymentintent.PaymentIntent) *paymentintent.PaymentIntent {
	if pi == nil {
		return nil
	}
	out := *pi
	if pi.InvoiceID != nil {
		v := *pi.InvoiceID
		out.InvoiceID = &v
	}
	return &out
}

func (s *InMemoryPaymentIntentStore) Create(ctx context.Context, pi *paymentintent.PaymentIntent) error {
	if pi == nil {
		return ierr.NewError("payment intent cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, pi.ID, copyPaymentIntent(pi))
}

func (s *InMemoryPaymentIntentStore) Get(ctx context.Context, id string) (*paymentintent.PaymentIntent, error) {
	pi, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFoundPaymentIntent(id)
	}
	if !CheckAccountFilter(ctx, pi.AccountID) {
		return nil, notFoundPaymentIntent(id)
	}
	return copyPaymentIntent(pi), nil
}

func notFoundPaymentIntent(id string) error {
	return ierr.NewError("payment intent not found").
		WithHintf("payment intent %s does not exist", id).
		Mark(ierr.ErrNotFound)
}
