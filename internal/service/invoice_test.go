package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/domain/price"
	"github.com/flexprice/billingsim/internal/domain/proration"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/testutil"
	"github.com/flexprice/billingsim/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(s.serviceParams())
}

func (s *InvoiceServiceSuite) serviceParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		InvoiceRepo:         stores.InvoiceRepo,
		CustomerRepo:        stores.CustomerRepo,
		SubscriptionRepo:    stores.SubscriptionRepo,
		PlanRepo:            stores.PlanRepo,
		PriceRepo:           stores.PriceRepo,
		ChargeRepo:          stores.ChargeRepo,
		PaymentIntentRepo:   stores.PaymentIntentRepo,
		ProrationCalculator: proration.NewCalculator(),
	}
}

func (s *InvoiceServiceSuite) createCustomer(source *string) *customer.Customer {
	cust := &customer.Customer{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:           "Test Customer",
		Email:          "test@example.com",
		Currency:       "usd",
		AccountBalance: decimal.NewFromInt(250),
		Discount:       &customer.Discount{CouponID: "coupon_10", PercentOff: lo.ToPtr(decimal.NewFromInt(10))},
		DefaultSource:  source,
		BaseModel:      types.GetDefaultBaseModel(s.GetAccountID()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), cust))
	return cust
}

func (s *InvoiceServiceSuite) createInvoice(customerID string) *dto.InvoiceResponse {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		CustomerID: customerID,
	})
	s.NoError(err)
	return resp
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	cust := s.createCustomer(nil)

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		CustomerID:  cust.ID,
		Description: "march usage",
	})
	s.NoError(err)

	s.Contains(resp.ID, "in_")
	s.Equal(types.InvoiceStatusDraft, resp.Status)
	s.Equal("usd", resp.Currency)
	s.Equal(cust.ID, resp.Customer.ID)
	s.False(resp.Paid)
	s.False(resp.Attempted)

	// One default line item at the configured amount.
	s.Equal(1, resp.Lines.TotalCount)
	line := resp.Lines.Data[0]
	s.Contains(line.ID, "ii_")
	s.Equal("Invoice item", line.Description)
	s.True(line.Amount.Equal(decimal.NewFromInt(1000)))
	s.True(line.Quantity.Equal(decimal.NewFromInt(1)))
	s.True(line.Discountable)
	s.True(resp.AmountDue.Equal(decimal.NewFromInt(1000)))
	s.True(resp.Total.Equal(resp.AmountDue))

	// Balance and discount are copied from the customer at creation.
	s.True(resp.StartingBalance.Equal(decimal.NewFromInt(250)))
	s.NotNil(resp.Discount)
	s.Equal("coupon_10", resp.Discount.CouponID)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownCustomer() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		CustomerID: "cus_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoice() {
	cust := s.createCustomer(nil)
	created := s.createInvoice(cust.ID)

	resp, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Description: lo.ToPtr("updated"),
		Number:      lo.ToPtr("INV-0042"),
		Metadata:    types.Metadata{"source": "test"},
	})
	s.NoError(err)
	s.Equal("updated", resp.Description)
	s.Equal("INV-0042", *resp.Number)
	s.Equal("test", resp.Metadata["source"])

	// Line items are untouched by update.
	s.Equal(1, resp.Lines.TotalCount)
}

func (s *InvoiceServiceSuite) TestUpdatePaidInvoiceFails() {
	cust := s.createCustomer(lo.ToPtr("card_123"))
	created := s.createInvoice(cust.ID)

	_, err := s.service.PayInvoice(s.GetContext(), created.ID, types.Expand{})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Description: lo.ToPtr("too late"),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestUpdateUnknownInvoice() {
	_, err := s.service.UpdateInvoice(s.GetContext(), "in_missing", dto.UpdateInvoiceRequest{})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestAddInvoiceLines() {
	cust := s.createCustomer(nil)
	created := s.createInvoice(cust.ID)

	resp, err := s.service.AddInvoiceLines(s.GetContext(), created.ID, dto.AddInvoiceLinesRequest{
		Lines: []dto.CreateLineItemRequest{
			{Amount: lo.ToPtr(decimal.NewFromInt(500)), Description: lo.ToPtr("setup fee")},
			{Amount: lo.ToPtr(decimal.NewFromInt(-200)), Description: lo.ToPtr("credit")},
		},
	})
	s.NoError(err)

	// Order preserved: default line first, then the added ones.
	s.Equal(3, resp.Lines.TotalCount)
	s.Equal("Invoice item", resp.Lines.Data[0].Description)
	s.Equal("setup fee", resp.Lines.Data[1].Description)
	s.Equal("credit", resp.Lines.Data[2].Description)
	s.True(resp.AmountDue.Equal(decimal.NewFromInt(1300)))
}

func (s *InvoiceServiceSuite) TestAddLinesToNonDraftFails() {
	cust := s.createCustomer(nil)
	created := s.createInvoice(cust.ID)

	_, err := s.service.FinalizeInvoice(s.GetContext(), created.ID, types.Expand{})
	s.NoError(err)

	_, err = s.service.AddInvoiceLines(s.GetContext(), created.ID, dto.AddInvoiceLinesRequest{
		Lines: []dto.CreateLineItemRequest{{Amount: lo.ToPtr(decimal.NewFromInt(500))}},
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestFinalizeInvoice() {
	cust := s.createCustomer(nil)
	created := s.createInvoice(cust.ID)

	resp, err := s.service.FinalizeInvoice(s.GetContext(), created.ID, types.Expand{})
	s.NoError(err)
	s.Equal(types.InvoiceStatusOpen, resp.Status)
	s.NotEmpty(resp.PaymentIntent.ID)

	// The payment intent carries the invoice's amount due.
	pi, err := s.GetStores().PaymentIntentRepo.Get(s.GetContext(), resp.PaymentIntent.ID)
	s.NoError(err)
	s.True(pi.Amount.Equal(resp.AmountDue))
	s.Equal(cust.ID, pi.CustomerID)
	s.Equal(created.ID, *pi.InvoiceID)

	// Finalize is a one-way gate.
	_, err = s.service.FinalizeInvoice(s.GetContext(), created.ID, types.Expand{})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestPayInvoiceWithDefaultSource() {
	cust := s.createCustomer(lo.ToPtr("card_123"))
	created := s.createInvoice(cust.ID)

	resp, err := s.service.PayInvoice(s.GetContext(), created.ID, types.Expand{})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.Status)
	s.True(resp.Paid)
	s.True(resp.Attempted)
	s.NotEmpty(resp.Charge.ID)

	ch, err := s.GetStores().ChargeRepo.Get(s.GetContext(), resp.Charge.ID)
	s.NoError(err)
	s.Equal(cust.ID, *ch.CustomerID)
	s.True(ch.Paid)
	s.True(ch.Amount.Equal(resp.AmountDue))
}

func (s *InvoiceServiceSuite) TestPayInvoiceFallsBackToToken() {
	cust := s.createCustomer(nil)
	created := s.createInvoice(cust.ID)

	resp, err := s.service.PayInvoice(s.GetContext(), created.ID, types.Expand{})
	s.NoError(err)
	s.True(resp.Paid)

	// No default source: the charge ran against a generated token.
	ch, err := s.GetStores().ChargeRepo.Get(s.GetContext(), resp.Charge.ID)
	s.NoError(err)
	s.Nil(ch.CustomerID)
	s.NotNil(ch.Source)
	s.Contains(*ch.Source, "tok_")
}

func (s *InvoiceServiceSuite) createRecurringPrice(unitAmount int64) *price.Price {
	p := &price.Price{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICE),
		Currency:   "usd",
		UnitAmount: decimal.NewFromInt(unitAmount),
		Recurring:  &price.Recurring{Interval: types.BillingIntervalMonth, IntervalCount: 1},
		BaseModel:  types.GetDefaultBaseModel(s.GetAccountID()),
	}
	s.NoError(s.GetStores().PriceRepo.Create(s.GetContext(), p))
	return p
}

func (s *InvoiceServiceSuite) TestPayInvoiceMaterializesSubscription() {
	cust := s.createCustomer(lo.ToPtr("card_123"))
	first := s.createRecurringPrice(1500)
	second := s.createRecurringPrice(700)

	created := s.createInvoice(cust.ID)
	_, err := s.service.AddInvoiceLines(s.GetContext(), created.ID, dto.AddInvoiceLinesRequest{
		Lines: []dto.CreateLineItemRequest{
			{PriceID: &first.ID, Quantity: lo.ToPtr(decimal.NewFromInt(3))},
			{PriceID: &second.ID, Quantity: lo.ToPtr(decimal.NewFromInt(2))},
		},
	})
	s.NoError(err)

	resp, err := s.service.PayInvoice(s.GetContext(), created.ID, types.Expand{})
	s.NoError(err)
	s.NotEmpty(resp.Subscription.ID)

	sub, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), resp.Subscription.ID)
	s.NoError(err)
	s.Equal(cust.ID, sub.CustomerID)
	s.Equal(first.ID, sub.PlanID)
	s.True(sub.Quantity.Equal(decimal.NewFromInt(3)))
	s.True(sub.Plan.Amount.Equal(first.UnitAmount))

	// Every recurring line becomes a subscription item, in line order.
	s.Len(sub.Items, 2)
	s.Equal(first.ID, sub.Items[0].PriceID)
	s.True(sub.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
	s.Equal(second.ID, sub.Items[1].PriceID)
	s.True(sub.Items[1].Quantity.Equal(decimal.NewFromInt(2)))
}

func (s *InvoiceServiceSuite) TestPayInvoiceTwiceFails() {
	cust := s.createCustomer(lo.ToPtr("card_123"))
	created := s.createInvoice(cust.ID)

	_, err := s.service.PayInvoice(s.GetContext(), created.ID, types.Expand{})
	s.NoError(err)

	_, err = s.service.PayInvoice(s.GetContext(), created.ID, types.Expand{})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestPayUnknownInvoice() {
	_, err := s.service.PayInvoice(s.GetContext(), "in_missing", types.Expand{})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestGetInvoiceLineItems() {
	cust := s.createCustomer(nil)
	created := s.createInvoice(cust.ID)

	resp, err := s.service.GetInvoiceLineItems(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("list", resp.Object)
	s.Equal(1, resp.TotalCount)

	_, err = s.service.GetInvoiceLineItems(s.GetContext(), "in_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestExpansion() {
	cust := s.createCustomer(lo.ToPtr("card_123"))
	created := s.createInvoice(cust.ID)

	resp, err := s.service.GetInvoice(s.GetContext(), created.ID, types.NewExpand("customer"))
	s.NoError(err)
	s.NotNil(resp.Customer.Object)
	s.Equal(cust.Email, resp.Customer.Object.Email)
	// Unrequested references stay plain ids.
	s.Nil(resp.Subscription.Object)

	// After pay, the charge expands too.
	paid, err := s.service.PayInvoice(s.GetContext(), created.ID, types.NewExpand("charge"))
	s.NoError(err)
	s.NotNil(paid.Charge.Object)
	s.True(paid.Charge.Object.Paid)

	// Unknown expansion fields are rejected.
	_, err = s.service.GetInvoice(s.GetContext(), created.ID, types.NewExpand("plan"))
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	custA := s.createCustomer(nil)
	custB := s.createCustomer(nil)
	for i := 0; i < 3; i++ {
		s.createInvoice(custA.ID)
	}
	s.createInvoice(custB.ID)

	resp, err := s.service.ListInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 4)
	s.Equal(4, resp.Pagination.Total)
	s.Equal(types.FILTER_DEFAULT_LIMIT, resp.Pagination.Limit)

	// Customer filter.
	resp, err = s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		CustomerID:  custA.ID,
	})
	s.NoError(err)
	s.Len(resp.Items, 3)
	for _, item := range resp.Items {
		s.Equal(custA.ID, item.Customer.ID)
	}

	// Pagination.
	resp, err = s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		QueryFilter: &types.QueryFilter{
			Limit:  lo.ToPtr(2),
			Offset: lo.ToPtr(2),
		},
	})
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(4, resp.Pagination.Total)
}

func (s *InvoiceServiceSuite) TestSearchInvoices() {
	custA := s.createCustomer(nil)
	custB := s.createCustomer(nil)
	s.createInvoice(custA.ID)
	s.createInvoice(custA.ID)
	s.createInvoice(custB.ID)

	resp, err := s.service.SearchInvoices(s.GetContext(), dto.SearchInvoicesRequest{
		Query: `customer:"` + custA.ID + `"`,
	})
	s.NoError(err)
	s.Len(resp.Items, 2)

	resp, err = s.service.SearchInvoices(s.GetContext(), dto.SearchInvoicesRequest{
		Query: `customer:"` + custA.ID + `" AND currency:"usd"`,
	})
	s.NoError(err)
	s.Len(resp.Items, 2)

	resp, err = s.service.SearchInvoices(s.GetContext(), dto.SearchInvoicesRequest{
		Query: `customer:"` + custA.ID + `" AND currency:"eur"`,
	})
	s.NoError(err)
	s.Len(resp.Items, 0)

	// Missing query fails validation.
	_, err = s.service.SearchInvoices(s.GetContext(), dto.SearchInvoicesRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestAccountPartitioning() {
	cust := s.createCustomer(nil)
	created := s.createInvoice(cust.ID)

	otherCtx := types.SetAccountID(s.GetContext(), "acct_other")
	_, err := s.service.GetInvoice(otherCtx, created.ID, types.Expand{})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
