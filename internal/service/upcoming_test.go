package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/domain/proration"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/testutil"
	"github.com/flexprice/billingsim/internal/types"
)

type UpcomingInvoiceSuite struct {
	testutil.BaseServiceTestSuite
	service UpcomingInvoiceService
}

func TestUpcomingInvoiceService(t *testing.T) {
	suite.Run(t, new(UpcomingInvoiceSuite))
}

func (s *UpcomingInvoiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewUpcomingInvoiceService(ServiceParams{
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
	})
}

func (s *UpcomingInvoiceSuite) createCustomer() *customer.Customer {
	cust := &customer.Customer{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:           "Preview Customer",
		Currency:       "usd",
		AccountBalance: decimal.NewFromInt(100),
		BaseModel:      types.GetDefaultBaseModel(s.GetAccountID()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), cust))
	return cust
}

func (s *UpcomingInvoiceSuite) createPlan(id string, amount int64) *plan.Plan {
	p := &plan.Plan{
		ID:            id,
		Name:          id,
		Amount:        decimal.NewFromInt(amount),
		Currency:      "usd",
		Interval:      types.BillingIntervalMonth,
		IntervalCount: 1,
		BaseModel:     types.GetDefaultBaseModel(s.GetAccountID()),
	}
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), p))
	return p
}

// createSubscription anchors the billing period around now so a
// generated proration date falls inside it.
func (s *UpcomingInvoiceSuite) createSubscription(cust *customer.Customer, p *plan.Plan, periodStart, periodEnd int64) *subscription.Subscription {
	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         cust.ID,
		PlanID:             p.ID,
		Plan:               p.Copy(),
		Quantity:           decimal.NewFromInt(1),
		SubscriptionStatus: types.SubscriptionStatusActive,
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   periodEnd,
		BaseModel:          types.GetDefaultBaseModel(s.GetAccountID()),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func (s *UpcomingInvoiceSuite) TestRequiresCustomerOrSubscription() {
	_, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UpcomingInvoiceSuite) TestProrationDateRequiresSubscriptionChange() {
	cust := s.createCustomer()
	_, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		CustomerID:                cust.ID,
		SubscriptionProrationDate: lo.ToPtr(int64(2500)),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UpcomingInvoiceSuite) TestProrationDateRequiresSubscription() {
	cust := s.createCustomer()
	p := s.createPlan("plan_basic", 3000)
	newPlan := s.createPlan("plan_pro", 6000)
	s.createSubscription(cust, p, 1000, 4000)

	// Naming a candidate plan is not enough; a proration date demands the
	// subscription itself.
	_, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		CustomerID:                cust.ID,
		SubscriptionPlan:          newPlan.ID,
		SubscriptionProrationDate: lo.ToPtr(int64(2500)),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UpcomingInvoiceSuite) TestCustomerWithoutSubscriptions() {
	cust := s.createCustomer()
	_, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		CustomerID: cust.ID,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UpcomingInvoiceSuite) TestUnknownCustomer() {
	_, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		CustomerID: "cus_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *UpcomingInvoiceSuite) TestNoChangePreview() {
	cust := s.createCustomer()
	p := s.createPlan("plan_basic", 3000)
	sub := s.createSubscription(cust, p, 1000, 4000)

	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		CustomerID: cust.ID,
	})
	s.NoError(err)

	// One recurring line, no proration, dated at the next renewal.
	s.Equal(1, resp.Lines.TotalCount)
	line := resp.Lines.Data[0]
	s.True(line.Amount.Equal(decimal.NewFromInt(3000)))
	s.False(line.Proration)
	s.Equal(types.LineItemTypeSubscription, line.Type)
	s.Equal(sub.CurrentPeriodEnd, line.PeriodStart)

	s.Equal(sub.CurrentPeriodEnd, resp.PeriodEnd)
	s.Equal(sub.ID, resp.Subscription.ID)
	s.True(resp.StartingBalance.Equal(cust.AccountBalance))
	s.NotNil(resp.NextPaymentAttempt)
	s.Equal(resp.PeriodEnd+3600, *resp.NextPaymentAttempt)

	// Previews are never persisted.
	_, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), resp.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *UpcomingInvoiceSuite) TestPlanChangeProration() {
	now := time.Now().Unix()
	cust := s.createCustomer()
	oldPlan := s.createPlan("plan_basic", 3000)
	newPlan := s.createPlan("plan_pro", 6000)
	// Period shaped like the canonical example, anchored so that
	// prorationDate sits mid-period: [now-1500, now+1500], change at now.
	sub := s.createSubscription(cust, oldPlan, now-1500, now+1500)

	prorationDate := now
	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		SubscriptionID:            sub.ID,
		SubscriptionPlan:          newPlan.ID,
		SubscriptionProrationDate: &prorationDate,
	})
	s.NoError(err)

	// Credit, remaining charge, then the new recurring line.
	s.Equal(3, resp.Lines.TotalCount)

	credit := resp.Lines.Data[0]
	s.Equal("Unused time", credit.Description)
	s.True(credit.Proration)
	s.True(credit.Amount.Equal(decimal.NewFromInt(-1500)),
		"credit = %s", credit.Amount)

	charge := resp.Lines.Data[1]
	s.Equal("Remaining time", charge.Description)
	s.True(charge.Proration)
	s.True(charge.Amount.Equal(decimal.NewFromInt(3000)),
		"charge = %s", charge.Amount)

	recurring := resp.Lines.Data[2]
	s.Equal(types.LineItemTypeSubscription, recurring.Type)
	s.True(recurring.Amount.Equal(decimal.NewFromInt(6000)))
	s.NotNil(recurring.Plan)
	s.Equal(newPlan.ID, recurring.Plan.ID)

	s.True(resp.AmountDue.Equal(decimal.NewFromInt(7500)))
	// While prorating, both period bounds collapse to the invoice date.
	s.Equal(resp.PeriodStart, resp.PeriodEnd)
	s.Equal(sub.ID, resp.Subscription.ID)

	// The stored subscription is untouched by the preview.
	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(oldPlan.ID, stored.PlanID)
}

func (s *UpcomingInvoiceSuite) TestQuantityChangeProration() {
	now := time.Now().Unix()
	cust := s.createCustomer()
	p := s.createPlan("plan_basic", 3000)
	sub := s.createSubscription(cust, p, now-1500, now+1500)

	prorationDate := now
	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		SubscriptionID:            sub.ID,
		SubscriptionQuantity:      lo.ToPtr(decimal.NewFromInt(2)),
		SubscriptionProrationDate: &prorationDate,
	})
	s.NoError(err)
	s.Equal(3, resp.Lines.TotalCount)
	s.True(resp.Lines.Data[0].Amount.Equal(decimal.NewFromInt(-1500)))
	s.True(resp.Lines.Data[1].Amount.Equal(decimal.NewFromInt(3000)))
	s.True(resp.Lines.Data[2].Amount.Equal(decimal.NewFromInt(6000)))
}

func (s *UpcomingInvoiceSuite) TestTrialEndSuppressesRemainingCharge() {
	now := time.Now().Unix()
	cust := s.createCustomer()
	oldPlan := s.createPlan("plan_basic", 3000)
	newPlan := s.createPlan("plan_pro", 6000)
	sub := s.createSubscription(cust, oldPlan, now-1500, now+1500)

	prorationDate := now
	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		SubscriptionID:            sub.ID,
		SubscriptionPlan:          newPlan.ID,
		SubscriptionProrationDate: &prorationDate,
		SubscriptionTrialEnd:      lo.ToPtr(now + 86400),
	})
	s.NoError(err)

	// Credit plus the zero-amount trialing recurring line; no remaining
	// charge while a trial override is requested.
	s.Equal(2, resp.Lines.TotalCount)
	s.Equal("Unused time", resp.Lines.Data[0].Description)
	s.True(resp.Lines.Data[1].Amount.IsZero())
}

func (s *UpcomingInvoiceSuite) TestProrationDateOutsidePeriod() {
	cust := s.createCustomer()
	p := s.createPlan("plan_basic", 3000)
	newPlan := s.createPlan("plan_pro", 6000)
	sub := s.createSubscription(cust, p, 1000, 4000)

	for _, date := range []int64{999, 4000, 5000} {
		_, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
			SubscriptionID:            sub.ID,
			SubscriptionPlan:          newPlan.ID,
			SubscriptionProrationDate: lo.ToPtr(date),
		})
		s.Error(err, "proration date %d", date)
		s.True(ierr.IsValidation(err))
	}

	// Boundary: the period start itself is a valid proration date.
	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		SubscriptionID:            sub.ID,
		SubscriptionPlan:          newPlan.ID,
		SubscriptionProrationDate: lo.ToPtr(int64(1000)),
	})
	s.NoError(err)
	s.True(resp.Lines.Data[0].Amount.Equal(decimal.NewFromInt(-3000)))
}

func (s *UpcomingInvoiceSuite) TestDefaultedProrationDateSkipsRangeCheck() {
	cust := s.createCustomer()
	oldPlan := s.createPlan("plan_basic", 3000)
	newPlan := s.createPlan("plan_pro", 6000)
	sub := s.createSubscription(cust, oldPlan, 1000, 4000)

	// No proration date supplied: it defaults to now, which lies outside
	// the stored period, and the preview still computes.
	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		SubscriptionID:   sub.ID,
		SubscriptionPlan: newPlan.ID,
	})
	s.NoError(err)
	s.Equal(3, resp.Lines.TotalCount)
	s.Equal("Unused time", resp.Lines.Data[0].Description)
	s.True(resp.Lines.Data[0].Proration)
	s.Equal("Remaining time", resp.Lines.Data[1].Description)
	s.True(resp.Lines.Data[2].Amount.Equal(decimal.NewFromInt(6000)))
}

func (s *UpcomingInvoiceSuite) TestEarliestRenewalWins() {
	cust := s.createCustomer()
	p := s.createPlan("plan_basic", 3000)
	s.createSubscription(cust, p, 1000, 9000)
	early := s.createSubscription(cust, p, 1000, 4000)
	s.createSubscription(cust, p, 1000, 7000)

	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		CustomerID: cust.ID,
	})
	s.NoError(err)
	s.Equal(early.ID, resp.Subscription.ID)
	s.Equal(early.CurrentPeriodEnd, resp.PeriodEnd)
}

func (s *UpcomingInvoiceSuite) TestExplicitSubscriptionTarget() {
	cust := s.createCustomer()
	p := s.createPlan("plan_basic", 3000)
	s.createSubscription(cust, p, 1000, 4000)
	late := s.createSubscription(cust, p, 1000, 9000)

	resp, err := s.service.GetUpcomingInvoice(s.GetContext(), dto.UpcomingInvoiceRequest{
		SubscriptionID: late.ID,
	})
	s.NoError(err)
	s.Equal(late.ID, resp.Subscription.ID)
}
