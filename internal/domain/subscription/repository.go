package subscription

import (
	"context"
)

// Repository defines the persistence operations for subscriptions.
type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	// ListByCustomer returns the customer's subscriptions in insertion
	// order; the previewer relies on the order being stable.
	ListByCustomer(ctx context.Context, customerID string) ([]*Subscription, error)
}
