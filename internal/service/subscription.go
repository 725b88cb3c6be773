package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/domain/price"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/types"
)

// SubscriptionService manages subscriptions, both caller-created ones
// and the ones the invoice engine materializes when a paid invoice
// resolves to recurring prices.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	UpdateSubscription(ctx context.Context, id string, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	ListSubscriptions(ctx context.Context, customerID string) (*dto.ListSubscriptionsResponse, error)

	// CreateFromPrices materializes one subscription from recurring
	// prices, anchoring the first billing period at now. The first pair
	// supplies the plan snapshot; every pair is recorded as an item.
	CreateFromPrices(ctx context.Context, customerID string, pairs []PriceQuantity) (*subscription.Subscription, error)
}

// PriceQuantity pairs a resolved recurring price with the quantity a
// line bills it at.
type PriceQuantity struct {
	Price    *price.Price
	Quantity decimal.Decimal
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	p, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	quantity := decimal.NewFromInt(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	periodStart := time.Now().Unix()
	if req.CurrentPeriodStart != nil {
		periodStart = *req.CurrentPeriodStart
	}

	sub := s.newSubscription(ctx, req.CustomerID, p, quantity, periodStart, req.TrialEnd)
	if err := s.SubscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"customer_id", sub.CustomerID,
		"plan_id", sub.PlanID)
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, id string, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PlanID != nil {
		p, err := s.PlanRepo.Get(ctx, *req.PlanID)
		if err != nil {
			return nil, err
		}
		sub.PlanID = p.ID
		sub.Plan = p.Copy()
	}
	if req.Quantity != nil {
		sub.Quantity = *req.Quantity
	}
	if req.TrialEnd != nil {
		sub.TrialEnd = req.TrialEnd
		if *req.TrialEnd > time.Now().Unix() {
			sub.SubscriptionStatus = types.SubscriptionStatusTrialing
		} else {
			sub.SubscriptionStatus = types.SubscriptionStatusActive
		}
	}

	if err := s.SubscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, customerID string) (*dto.ListSubscriptionsResponse, error) {
	subs, err := s.SubscriptionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListSubscriptionsResponse{
		Items:      make([]*dto.SubscriptionResponse, len(subs)),
		Pagination: types.NewPaginationResponse(len(subs), len(subs), 0),
	}
	for i, sub := range subs {
		resp.Items[i] = dto.NewSubscriptionResponse(sub)
	}
	return resp, nil
}

func (s *subscriptionService) CreateFromPrices(ctx context.Context, customerID string, pairs []PriceQuantity) (*subscription.Subscription, error) {
	if len(pairs) == 0 {
		return nil, ierr.NewError("no recurring prices").
			WithHint("a subscription requires at least one recurring price").
			Mark(ierr.ErrValidation)
	}

	// The plan snapshot is synthesized from the first price so downstream
	// proration math works the same for both pricing generations.
	anchor := pairs[0]
	planSnapshot := &plan.Plan{
		ID:            anchor.Price.ID,
		Amount:        anchor.Price.UnitAmount,
		Currency:      anchor.Price.Currency,
		Interval:      anchor.Price.Recurring.Interval,
		IntervalCount: anchor.Price.Recurring.IntervalCount,
		BaseModel:     types.GetDefaultBaseModel(types.GetAccountID(ctx)),
	}

	sub := s.newSubscription(ctx, customerID, planSnapshot, anchor.Quantity, time.Now().Unix(), nil)
	sub.Items = lo.Map(pairs, func(pq PriceQuantity, _ int) *subscription.SubscriptionItem {
		return &subscription.SubscriptionItem{PriceID: pq.Price.ID, Quantity: pq.Quantity}
	})
	if err := s.SubscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("materialized subscription from prices",
		"subscription_id", sub.ID,
		"item_count", len(pairs),
		"customer_id", customerID)
	return sub, nil
}

func (s *subscriptionService) newSubscription(ctx context.Context, customerID string, p *plan.Plan, quantity decimal.Decimal, periodStart int64, trialEnd *int64) *subscription.Subscription {
	status := types.SubscriptionStatusActive
	if trialEnd != nil && *trialEnd > time.Now().Unix() {
		status = types.SubscriptionStatusTrialing
	}
	return &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         customerID,
		PlanID:             p.ID,
		Plan:               p.Copy(),
		Quantity:           quantity,
		SubscriptionStatus: status,
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   p.Interval.NextBillingTime(periodStart, p.IntervalCount, 1),
		TrialEnd:           trialEnd,
		BaseModel:          types.GetDefaultBaseModel(types.GetAccountID(ctx)),
	}
}
