package paymentintent

import (
	"context"
)

// Repository defines the persistence operations for payment intents.
type Repository interface {
	Create(ctx context.Context, pi *PaymentIntent) error
	Get(ctx context.Context, id string) (*PaymentIntent, error)
}
