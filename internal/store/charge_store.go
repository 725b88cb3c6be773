package store

import (
	"context"

	"github.com/flexprice/billingsim/internal/domain/charge"
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// InMemoryChargeStore implements charge.Repository
type InMemoryChargeStore struct {
	*InMemoryStore[*charge.Charge]
}

// NewInMemoryChargeStore creates a new in-memory charge store
func NewInMemoryChargeStore() *InMemoryChargeStore {
	return &InMemoryChargeStore{
		InMemoryStore: NewInMemoryStore[*charge.Charge](),
	}
}

func copyCharge(c *charge.Charge) *charge.Charge {
	if c == nil {
		return nil
	}
	out := *c
	if c.CustomerID != nil {
		v := *c.CustomerID
		out.CustomerID = &v
	}
	if c.Source != nil {
		v := *c.Source
		out.Source = &v
	}
	return &out
}

func (s *InMemoryChargeStore) Create(ctx context.Context, c *charge.Charge) error {
	if c == nil {
		return ierr.NewError("charge cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCharge(c))
}

func (s *InMemoryChargeStore) Get(ctx context.Context, id string) (*charge.Charge, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFoundCharge(id)
	}
	if !CheckAccountFilter(ctx, c.AccountID) {
		return nil, notFoundCharge(id)
	}
	return copyCharge(c), nil
}

func notFoundCharge(id string) error {
	return ierr.NewError("charge not found").
		WithHintf("charge %s does not exist", id).
		Mark(ierr.ErrNotFound)
}
