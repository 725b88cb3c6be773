package store

import (
	"context"

	"github.com/flexprice/billingsim/internal/domain/subscription"
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

// NewInMemorySubscriptionStore creates a new in-memory subscription store
func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sub.ID, sub.Copy())
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFoundSubscription(id)
	}
	if !CheckAccountFilter(ctx, sub.AccountID) {
		return nil, notFoundSubscription(id)
	}
	return sub.Copy(), nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, sub.ID, sub.Copy())
}

func (s *InMemorySubscriptionStore) ListByCustomer(ctx context.Context, customerID string) ([]*subscription.Subscription, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, sub *subscription.Subscription, _ interface{}) bool {
		return sub != nil && sub.CustomerID == customerID && CheckAccountFilter(ctx, sub.AccountID)
	}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*subscription.Subscription, len(items))
	for i, sub := range items {
		out[i] = sub.Copy()
	}
	return out, nil
}

func notFoundSubscription(id string) error {
	return ierr.NewError("subscription not found").
		WithHintf("subscription %s does not exist", id).
		Mark(ierr.ErrNotFound)
}
