package store

import (
	"context"

	"github.com/flexprice/billingsim/internal/domain/customer"
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	out := *c
	out.Discount = c.Discount.Copy()
	if c.DefaultSource != nil {
		v := *c.DefaultSource
		out.DefaultSource = &v
	}
	if c.Metadata != nil {
		out.Metadata = c.Metadata.Merge(nil)
	}
	return &out
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ierr.NewError("customer cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFoundCustomer(id)
	}
	if !CheckAccountFilter(ctx, c.AccountID) {
		return nil, notFoundCustomer(id)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ierr.NewError("customer cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) List(ctx context.Context) ([]*customer.Customer, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, c *customer.Customer, _ interface{}) bool {
		return c != nil && CheckAccountFilter(ctx, c.AccountID)
	}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*customer.Customer, len(items))
	for i, c := range items {
		out[i] = copyCustomer(c)
	}
	return out, nil
}

func notFoundCustomer(id string) error {
	return ierr.NewError("customer not found").
		WithHintf("customer %s does not exist", id).
		Mark(ierr.ErrNotFound)
}
