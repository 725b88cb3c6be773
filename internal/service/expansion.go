package service

import (
	"context"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/types"
)

// expandInvoiceResponse resolves the requested reference fields of an
// invoice response against current store contents. The stored invoice is
// never touched; only the response copy carries resolved objects.
func expandInvoiceResponse(ctx context.Context, params ServiceParams, resp *dto.InvoiceResponse, expand types.Expand) error {
	if expand.IsEmpty() {
		return nil
	}
	if err := expand.Validate(types.InvoiceExpandConfig); err != nil {
		return err
	}

	if expand.Has(types.ExpandCustomer) && resp.Customer.ID != "" {
		cust, err := params.CustomerRepo.Get(ctx, resp.Customer.ID)
		if err != nil {
			return err
		}
		resp.Customer.Resolve(cust)
	}
	if expand.Has(types.ExpandSubscription) && resp.Subscription.ID != "" {
		sub, err := params.SubscriptionRepo.Get(ctx, resp.Subscription.ID)
		if err != nil {
			return err
		}
		resp.Subscription.Resolve(sub)
	}
	if expand.Has(types.ExpandCharge) && resp.Charge.ID != "" {
		ch, err := params.ChargeRepo.Get(ctx, resp.Charge.ID)
		if err != nil {
			return err
		}
		resp.Charge.Resolve(ch)
	}
	if expand.Has(types.ExpandPaymentIntent) && resp.PaymentIntent.ID != "" {
		pi, err := params.PaymentIntentRepo.Get(ctx, resp.PaymentIntent.ID)
		if err != nil {
			return err
		}
		resp.PaymentIntent.Resolve(pi)
	}
	return nil
}
