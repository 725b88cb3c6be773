package store

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/flexprice/billingsim/internal/domain/invoice"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/types"
)

type InvoiceStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemoryInvoiceStore
}

func TestInvoiceStore(t *testing.T) {
	suite.Run(t, new(InvoiceStoreSuite))
}

func (s *InvoiceStoreSuite) SetupTest() {
	s.ctx = types.SetAccountID(context.Background(), types.DefaultAccountID)
	s.store = NewInMemoryInvoiceStore()
}

func (s *InvoiceStoreSuite) newInvoice(customerID string) *invoice.Invoice {
	return &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:    customerID,
		InvoiceStatus: types.InvoiceStatusDraft,
		Currency:      "usd",
		AmountDue:     decimal.NewFromInt(1000),
		BaseModel:     types.GetDefaultBaseModel(types.DefaultAccountID),
	}
}

func (s *InvoiceStoreSuite) TestCreateGetUpdate() {
	inv := s.newInvoice("cus_1")
	s.NoError(s.store.Create(s.ctx, inv))

	err := s.store.Create(s.ctx, inv)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))

	got, err := s.store.Get(s.ctx, inv.ID)
	s.NoError(err)
	s.Equal(inv.ID, got.ID)

	got.InvoiceStatus = types.InvoiceStatusOpen
	s.NoError(s.store.Update(s.ctx, got))

	again, err := s.store.Get(s.ctx, inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOpen, again.InvoiceStatus)

	_, err = s.store.Get(s.ctx, "in_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceStoreSuite) TestCopyOnRead() {
	inv := s.newInvoice("cus_1")
	inv.LineItems = []*invoice.LineItem{{
		ID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		Amount:   decimal.NewFromInt(1000),
		Currency: "usd",
		Quantity: decimal.NewFromInt(1),
	}}
	s.NoError(s.store.Create(s.ctx, inv))

	// Mutating what Get returns must not touch stored state.
	got, err := s.store.Get(s.ctx, inv.ID)
	s.NoError(err)
	got.InvoiceStatus = types.InvoiceStatusPaid
	got.LineItems[0].Amount = decimal.NewFromInt(9999)

	clean, err := s.store.Get(s.ctx, inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, clean.InvoiceStatus)
	s.True(clean.LineItems[0].Amount.Equal(decimal.NewFromInt(1000)))
}

func (s *InvoiceStoreSuite) TestListInsertionOrderAndFilter() {
	first := s.newInvoice("cus_a")
	second := s.newInvoice("cus_b")
	third := s.newInvoice("cus_a")
	for _, inv := range []*invoice.Invoice{first, second, third} {
		s.NoError(s.store.Create(s.ctx, inv))
	}

	all, err := s.store.All(s.ctx)
	s.NoError(err)
	s.Len(all, 3)
	s.Equal(first.ID, all[0].ID)
	s.Equal(second.ID, all[1].ID)
	s.Equal(third.ID, all[2].ID)

	filtered, err := s.store.List(s.ctx, &types.InvoiceFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		CustomerID:  "cus_a",
	})
	s.NoError(err)
	s.Len(filtered, 2)

	paged, err := s.store.List(s.ctx, &types.InvoiceFilter{
		QueryFilter: &types.QueryFilter{Limit: lo.ToPtr(2), Offset: lo.ToPtr(1)},
	})
	s.NoError(err)
	s.Len(paged, 2)
	s.Equal(second.ID, paged[0].ID)
}

func (s *InvoiceStoreSuite) TestAccountIsolation() {
	inv := s.newInvoice("cus_1")
	s.NoError(s.store.Create(s.ctx, inv))

	otherCtx := types.SetAccountID(context.Background(), "acct_other")
	_, err := s.store.Get(otherCtx, inv.ID)
	s.True(ierr.IsNotFound(err))

	all, err := s.store.All(otherCtx)
	s.NoError(err)
	s.Len(all, 0)
}
