package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/domain/proration"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/types"
)

// UpcomingInvoiceService previews the next invoice for a subscription.
// The preview is a pure function of stored state; nothing it assembles
// is ever persisted.
type UpcomingInvoiceService interface {
	GetUpcomingInvoice(ctx context.Context, req dto.UpcomingInvoiceRequest) (*dto.InvoiceResponse, error)
}

type upcomingInvoiceService struct {
	ServiceParams
}

func NewUpcomingInvoiceService(params ServiceParams) UpcomingInvoiceService {
	return &upcomingInvoiceService{ServiceParams: params}
}

func (s *upcomingInvoiceService) GetUpcomingInvoice(ctx context.Context, req dto.UpcomingInvoiceRequest) (*dto.InvoiceResponse, error) {
	if req.CustomerID == "" && req.SubscriptionID == "" {
		return nil, ierr.NewError("missing customer and subscription").
			WithHint("Missing required param: customer").
			Mark(ierr.ErrValidation)
	}
	if req.SubscriptionProrationDate != nil && req.SubscriptionID == "" && req.SubscriptionPlan == "" {
		return nil, ierr.NewError("proration date without subscription change").
			WithHint("When previewing changes to a subscription, you must specify either subscription or subscription_plan").
			Mark(ierr.ErrValidation)
	}
	if req.SubscriptionProrationDate != nil && req.SubscriptionID == "" {
		return nil, ierr.NewError("proration date without subscription").
			WithHint("Cannot specify proration date without specifying a subscription").
			Mark(ierr.ErrValidation)
	}

	cust, sub, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	// An explicit proration date must fall inside the target's current
	// period. A defaulted date carries no range requirement.
	if pd := req.SubscriptionProrationDate; pd != nil &&
		(*pd < sub.CurrentPeriodStart || *pd >= sub.CurrentPeriodEnd) {
		return nil, ierr.NewError("proration date outside billing period").
			WithHint("Cannot specify proration date outside of current subscription period").
			Mark(ierr.ErrValidation)
	}

	newPlan, newQuantity, changed, err := s.resolveChange(ctx, req, sub)
	if err != nil {
		return nil, err
	}

	currency := sub.Plan.Currency
	if currency == "" {
		currency = cust.Currency
	}
	if currency == "" {
		currency = s.Config.Simulator.DefaultCurrency
	}

	var lines []*invoice.LineItem
	var invoiceDate int64
	previewSub := sub

	if changed {
		invoiceDate = time.Now().Unix()
		prorationDate := invoiceDate
		if req.SubscriptionProrationDate != nil {
			prorationDate = *req.SubscriptionProrationDate
		}

		result, err := s.ProrationCalculator.Calculate(proration.Params{
			OldPlan:            sub.Plan,
			NewPlan:            newPlan,
			OldQuantity:        sub.Quantity,
			NewQuantity:        newQuantity,
			CurrentPeriodStart: sub.CurrentPeriodStart,
			CurrentPeriodEnd:   sub.CurrentPeriodEnd,
			ProrationDate:      prorationDate,
			TrialEndRequested:  req.SubscriptionTrialEnd != nil,
			Currency:           currency,
		})
		if err != nil {
			return nil, err
		}
		lines = result.LineItems()

		// A synthetic subscription reflecting the requested change keeps
		// the recurring line consistent with the lifecycle engine's
		// formula. It reuses the real subscription's id and is discarded
		// with the preview.
		previewSub = s.previewSubscription(sub, newPlan, newQuantity, req.SubscriptionTrialEnd)
	} else {
		invoiceDate = sub.CurrentPeriodEnd
	}

	lines = append(lines, s.subscriptionLineItem(previewSub, currency))

	inv := s.assemblePreview(ctx, cust, previewSub, lines, currency, invoiceDate, changed)
	resp := dto.NewInvoiceResponse(inv)
	if err := expandInvoiceResponse(ctx, s.ServiceParams, resp, types.NewExpandFromFields(req.Expand)); err != nil {
		return nil, err
	}
	return resp, nil
}

// resolveTarget loads the customer and selects the subscription the
// preview bills: the explicitly named one, or the customer's
// subscription with the earliest current_period_end.
func (s *upcomingInvoiceService) resolveTarget(ctx context.Context, req dto.UpcomingInvoiceRequest) (*customer.Customer, *subscription.Subscription, error) {
	if req.SubscriptionID != "" {
		sub, err := s.SubscriptionRepo.Get(ctx, req.SubscriptionID)
		if err != nil {
			return nil, nil, err
		}
		cust, err := s.CustomerRepo.Get(ctx, sub.CustomerID)
		if err != nil {
			return nil, nil, err
		}
		return cust, sub, nil
	}

	cust, err := s.CustomerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	subs, err := s.SubscriptionRepo.ListByCustomer(ctx, cust.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(subs) == 0 {
		return nil, nil, ierr.NewError("customer has no subscriptions").
			WithHintf("No upcoming invoices for customer: %s", cust.ID).
			Mark(ierr.ErrValidation)
	}

	// Earliest renewal wins; insertion order breaks ties.
	target := subs[0]
	for _, candidate := range subs[1:] {
		if candidate.CurrentPeriodEnd < target.CurrentPeriodEnd {
			target = candidate
		}
	}
	return cust, target, nil
}

// resolveChange decides whether the request describes a plan or quantity
// change against the subscription's current values.
func (s *upcomingInvoiceService) resolveChange(ctx context.Context, req dto.UpcomingInvoiceRequest, sub *subscription.Subscription) (*plan.Plan, decimal.Decimal, bool, error) {
	newPlan := sub.Plan
	if req.SubscriptionPlan != "" {
		p, err := s.PlanRepo.Get(ctx, req.SubscriptionPlan)
		if err != nil {
			return nil, decimal.Zero, false, err
		}
		newPlan = p
	}
	newQuantity := sub.Quantity
	if req.SubscriptionQuantity != nil {
		newQuantity = *req.SubscriptionQuantity
	}

	changed := newPlan.ID != sub.PlanID || !newQuantity.Equal(sub.Quantity)
	return newPlan, newQuantity, changed, nil
}

func (s *upcomingInvoiceService) previewSubscription(sub *subscription.Subscription, newPlan *plan.Plan, newQuantity decimal.Decimal, trialEnd *int64) *subscription.Subscription {
	preview := sub.Copy()
	preview.PlanID = newPlan.ID
	preview.Plan = newPlan.Copy()
	preview.Quantity = newQuantity
	if trialEnd != nil {
		preview.TrialEnd = trialEnd
		if *trialEnd > time.Now().Unix() {
			preview.SubscriptionStatus = types.SubscriptionStatusTrialing
		}
	}
	return preview
}

// subscriptionLineItem builds the recurring line for the subscription's
// next cycle: zero while trialing, otherwise plan amount times quantity,
// with the display period running two billing cycles out.
func (s *upcomingInvoiceService) subscriptionLineItem(sub *subscription.Subscription, currency string) *invoice.LineItem {
	amount := sub.Plan.Amount.Mul(sub.Quantity)
	if sub.IsTrialing() {
		amount = decimal.Zero
	}
	description := sub.Plan.Name
	if description == "" {
		description = "Subscription"
	}
	return invoice.NewLineItem(invoice.LineItemParams{
		Amount:      lo.ToPtr(amount),
		Currency:    currency,
		Description: lo.ToPtr(description),
		Plan:        sub.Plan,
		Quantity:    lo.ToPtr(sub.Quantity),
		PeriodStart: lo.ToPtr(sub.CurrentPeriodEnd),
		PeriodEnd:   lo.ToPtr(sub.Plan.Interval.NextBillingTime(sub.CurrentPeriodStart, sub.Plan.IntervalCount, 2)),
		Type:        types.LineItemTypeSubscription,
	}, invoice.LineItemDefaults{Amount: decimal.Zero, Currency: currency})
}

func (s *upcomingInvoiceService) assemblePreview(ctx context.Context, cust *customer.Customer, sub *subscription.Subscription, lines []*invoice.LineItem, currency string, invoiceDate int64, prorating bool) *invoice.Invoice {
	periodStart := sub.CurrentPeriodStart
	periodEnd := sub.CurrentPeriodEnd
	if prorating {
		periodStart = invoiceDate
		periodEnd = invoiceDate
	}

	inv := &invoice.Invoice{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:         cust.ID,
		InvoiceStatus:      types.InvoiceStatusDraft,
		Currency:           currency,
		LineItems:          lines,
		StartingBalance:    cust.AccountBalance,
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		SubscriptionID:     &sub.ID,
		Discount:           cust.Discount.Copy(),
		NextPaymentAttempt: lo.ToPtr(periodEnd + int64(time.Hour/time.Second)),
		BaseModel:          types.GetDefaultBaseModel(types.GetAccountID(ctx)),
	}
	inv.RecalculateAmountDue()
	return inv
}
