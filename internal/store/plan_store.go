package store

import (
	"context"

	"github.com/flexprice/billingsim/internal/domain/plan"
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// InMemoryPlanStore implements plan.Repository
type InMemoryPlanStore struct {
	*InMemoryStore[*plan.Plan]
}

// NewInMemoryPlanStore creates a new in-memory plan store
func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		InMemoryStore: NewInMemoryStore[*plan.Plan](),
	}
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return ierr.NewError("plan cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, p.Copy())
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFoundPlan(id)
	}
	if !CheckAccountFilter(ctx, p.AccountID) {
		return nil, notFoundPlan(id)
	}
	return p.Copy(), nil
}

func (s *InMemoryPlanStore) List(ctx context.Context) ([]*plan.Plan, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *plan.Plan, _ interface{}) bool {
		return p != nil && CheckAccountFilter(ctx, p.AccountID)
	}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*plan.Plan, len(items))
	for i, p := range items {
		out[i] = p.Copy()
	}
	return out, nil
}

func notFoundPlan(id string) error {
	return ierr.NewError("plan not found").
		WithHintf("plan %s does not exist", id).
		Mark(ierr.ErrNotFound)
}
