package store

import (
	"context"

	"github.com/flexprice/billingsim/internal/domain/price"
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// InMemoryPriceStore implements price.Repository
type InMemoryPriceStore struct {
	*InMemoryStore[*price.Price]
}

// NewInMemoryPriceStore creates a new in-memory price store
func NewInMemoryPriceStore() *InMemoryPriceStore {
	return &InMemoryPriceStore{
		InMemoryStore: NewInMemoryStore[*price.Price](),
	}
}

func (s *InMemoryPriceStore) Create(ctx context.Context, p *price.Price) error {
	if p == nil {
		return ierr.NewError("price cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, p.Copy())
}

func (s *InMemoryPriceStore) Get(ctx context.Context, id string) (*price.Price, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFoundPrice(id)
	}
	if !CheckAccountFilter(ctx, p.AccountID) {
		return nil, notFoundPrice(id)
	}
	return p.Copy(), nil
}

func (s *InMemoryPriceStore) List(ctx context.Context) ([]*price.Price, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *price.Price, _ interface{}) bool {
		return p != nil && CheckAccountFilter(ctx, p.AccountID)
	}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*price.Price, len(items))
	for i, p := range items {
		out[i] = p.Copy()
	}
	return out, nil
}

func notFoundPrice(id string) error {
	return ierr.NewError("price not found").
		WithHintf("price %s does not exist", id).
		Mark(ierr.ErrNotFound)
}
