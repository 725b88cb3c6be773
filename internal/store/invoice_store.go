package store

import (
	"context"

	"github.com/flexprice/billingsim/internal/domain/invoice"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, inv.Copy())
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFoundInvoice(id)
	}
	if !CheckAccountFilter(ctx, inv.AccountID) {
		return nil, notFoundInvoice(id)
	}
	return inv.Copy(), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	// Single write of a fully assembled copy; readers never observe a
	// half-applied lifecycle transition.
	return s.InMemoryStore.Update(ctx, inv.ID, inv.Copy())
}

func notFoundInvoice(id string) error {
	return ierr.NewError("invoice not found").
		WithHintf("invoice %s does not exist", id).
		Mark(ierr.ErrNotFound)
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if inv == nil {
		return false
	}
	if !CheckAccountFilter(ctx, inv.AccountID) {
		return false
	}
	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}
	if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
		return false
	}
	return true
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*invoice.Invoice, len(items))
	for i, inv := range items {
		out[i] = inv.Copy()
	}
	return out, nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) All(ctx context.Context) ([]*invoice.Invoice, error) {
	return s.List(ctx, &types.InvoiceFilter{QueryFilter: types.NewNoLimitQueryFilter()})
}
