package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/domain/charge"
	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/search"
	"github.com/flexprice/billingsim/internal/types"
)

// InvoiceService is the invoice lifecycle engine. State moves strictly
// draft -> open -> paid; every transition validates before it mutates so
// a failed call never leaves partial state.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string, expand types.Expand) (*dto.InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	AddInvoiceLines(ctx context.Context, id string, req dto.AddInvoiceLinesRequest) (*dto.InvoiceResponse, error)
	FinalizeInvoice(ctx context.Context, id string, expand types.Expand) (*dto.InvoiceResponse, error)
	PayInvoice(ctx context.Context, id string, expand types.Expand) (*dto.InvoiceResponse, error)
	GetInvoiceLineItems(ctx context.Context, id string) (*dto.InvoiceLinesResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	SearchInvoices(ctx context.Context, req dto.SearchInvoicesRequest) (*dto.ListInvoicesResponse, error)
}

type invoiceService struct {
	ServiceParams

	chargeService       ChargeService
	paymentIntentSvc    PaymentIntentService
	subscriptionService SubscriptionService
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams:       params,
		chargeService:       NewChargeService(params),
		paymentIntentSvc:    NewPaymentIntentService(params),
		subscriptionService: NewSubscriptionService(params),
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = cust.Currency
	}
	if currency == "" {
		currency = s.Config.Simulator.DefaultCurrency
	}

	inv := &invoice.Invoice{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:      cust.ID,
		InvoiceStatus:   types.InvoiceStatusDraft,
		Currency:        currency,
		StartingBalance: cust.AccountBalance,
		Discount:        cust.Discount.Copy(),
		SubscriptionID:  req.SubscriptionID,
		Description:     req.Description,
		Metadata:        req.Metadata,
		BaseModel:       types.GetDefaultBaseModel(types.GetAccountID(ctx)),
	}
	if req.PeriodStart != nil {
		inv.PeriodStart = *req.PeriodStart
	}
	if req.PeriodEnd != nil {
		inv.PeriodEnd = *req.PeriodEnd
	}

	// Every new invoice starts with one default line item.
	item := invoice.NewLineItem(invoice.LineItemParams{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	}, s.lineItemDefaults(currency))
	item.InvoiceID = inv.ID
	inv.LineItems = []*invoice.LineItem{item}
	inv.RecalculateAmountDue()

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"customer_id", inv.CustomerID,
		"amount_due", inv.AmountDue)
	return s.toInvoiceResponse(ctx, inv, types.NewExpandFromFields(req.Expand))
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string, expand types.Expand) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toInvoiceResponse(ctx, inv, expand)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.InvoiceStatus == types.InvoiceStatusPaid {
		return nil, ierr.NewError("invoice is paid").
			WithHint("a paid invoice cannot be updated").
			Mark(ierr.ErrInvalidOperation)
	}

	if req.Description != nil {
		inv.Description = *req.Description
	}
	if req.Number != nil {
		inv.Number = req.Number
	}
	if req.ReceiptNumber != nil {
		inv.ReceiptNumber = req.ReceiptNumber
	}
	if req.PeriodStart != nil {
		inv.PeriodStart = *req.PeriodStart
	}
	if req.PeriodEnd != nil {
		inv.PeriodEnd = *req.PeriodEnd
	}
	if req.Metadata != nil {
		inv.Metadata = inv.Metadata.Merge(req.Metadata)
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return s.toInvoiceResponse(ctx, inv, types.NewExpandFromFields(req.Expand))
}

func (s *invoiceService) AddInvoiceLines(ctx context.Context, id string, req dto.AddInvoiceLinesRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.IsDraft() {
		return nil, ierr.NewError("invoice is not a draft").
			WithHintf("lines cannot be added to a %s invoice", inv.InvoiceStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	for _, line := range req.Lines {
		params, err := s.toLineItemParams(ctx, line)
		if err != nil {
			return nil, err
		}
		item := invoice.NewLineItem(params, s.lineItemDefaults(inv.Currency))
		item.InvoiceID = inv.ID
		inv.LineItems = append(inv.LineItems, item)
	}
	inv.RecalculateAmountDue()

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("added invoice lines",
		"invoice_id", inv.ID,
		"line_count", len(req.Lines),
		"amount_due", inv.AmountDue)
	return s.toInvoiceResponse(ctx, inv, types.NewExpandFromFields(req.Expand))
}

func (s *invoiceService) FinalizeInvoice(ctx context.Context, id string, expand types.Expand) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.IsDraft() {
		return nil, ierr.NewError("invoice is not a draft").
			WithHintf("a %s invoice cannot be finalized", inv.InvoiceStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	pi, err := s.paymentIntentSvc.CreateForInvoice(ctx, inv)
	if err != nil {
		return nil, err
	}

	inv.InvoiceStatus = types.InvoiceStatusOpen
	inv.PaymentIntentID = &pi.ID
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("finalized invoice",
		"invoice_id", inv.ID,
		"payment_intent_id", pi.ID)
	return s.toInvoiceResponse(ctx, inv, expand)
}

func (s *invoiceService) PayInvoice(ctx context.Context, id string, expand types.Expand) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Paid {
		return nil, ierr.NewError("invoice is already paid").
			WithHintf("invoice %s has already been paid", inv.ID).
			Mark(ierr.ErrInvalidOperation)
	}

	cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	// Charge the customer's default source; a customer without one gets
	// charged through a freshly minted token instead of failing the call.
	ch, err := s.chargeService.ChargeCustomer(ctx, cust, inv.AmountDue, inv.Currency)
	if errors.Is(err, charge.ErrNoSource) {
		ch, err = s.chargeService.ChargeSource(ctx, s.chargeService.GenerateCardToken(), inv.AmountDue, inv.Currency)
	}
	if err != nil {
		return nil, err
	}

	// Lines that resolve to recurring prices materialize a subscription
	// before the invoice is stamped paid. If this fails the invoice stays
	// unpaid and the settled charge is surfaced for reconciliation.
	sub, err := s.materializeSubscription(ctx, inv)
	if err != nil {
		s.Logger.Errorw("charge settled but subscription creation failed; invoice left unpaid",
			"invoice_id", inv.ID,
			"charge_id", ch.ID,
			"error", err)
		return nil, err
	}

	inv.Paid = true
	inv.Attempted = true
	inv.InvoiceStatus = types.InvoiceStatusPaid
	inv.ChargeID = &ch.ID
	if sub != nil {
		inv.SubscriptionID = &sub.ID
	}
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("paid invoice",
		"invoice_id", inv.ID,
		"charge_id", ch.ID,
		"amount", inv.AmountDue)
	return s.toInvoiceResponse(ctx, inv, expand)
}

// materializeSubscription creates one subscription carrying every
// invoice line that references a recurring price, when the invoice is
// not already tied to one.
func (s *invoiceService) materializeSubscription(ctx context.Context, inv *invoice.Invoice) (*subscription.Subscription, error) {
	if inv.SubscriptionID != nil {
		return nil, nil
	}
	var pairs []PriceQuantity
	for _, item := range inv.LineItems {
		if item.PriceID == nil {
			continue
		}
		p, err := s.PriceRepo.Get(ctx, *item.PriceID)
		if err != nil {
			return nil, err
		}
		if !p.IsRecurring() {
			continue
		}
		pairs = append(pairs, PriceQuantity{Price: p, Quantity: item.Quantity})
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	return s.subscriptionService.CreateFromPrices(ctx, inv.CustomerID, pairs)
}

func (s *invoiceService) GetInvoiceLineItems(ctx context.Context, id string) (*dto.InvoiceLinesResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceLinesResponse(inv.LineItems), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	expand := types.Expand{}
	if filter.QueryFilter != nil {
		expand = filter.QueryFilter.GetExpand()
	}

	resp := &dto.ListInvoicesResponse{
		Items:      make([]*dto.InvoiceResponse, len(invoices)),
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}
	for i, inv := range invoices {
		item, err := s.toInvoiceResponse(ctx, inv, expand)
		if err != nil {
			return nil, err
		}
		resp.Items[i] = item
	}
	return resp, nil
}

func (s *invoiceService) SearchInvoices(ctx context.Context, req dto.SearchInvoicesRequest) (*dto.ListInvoicesResponse, error) {
	query, err := search.Parse(req.Query, types.InvoiceSearchFields)
	if err != nil {
		return nil, err
	}

	all, err := s.InvoiceRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*invoice.Invoice
	for _, inv := range all {
		if query.Matches(invoiceSearchDocument(inv)) {
			matched = append(matched, inv)
		}
	}

	limit := types.FILTER_DEFAULT_LIMIT
	if req.Limit != nil {
		limit = *req.Limit
	}
	offset := types.FILTER_DEFAULT_OFFSET
	if req.Offset != nil {
		offset = *req.Offset
	}

	total := len(matched)
	page := paginate(matched, offset, limit)

	resp := &dto.ListInvoicesResponse{
		Items:      make([]*dto.InvoiceResponse, len(page)),
		Pagination: types.NewPaginationResponse(total, limit, offset),
	}
	for i, inv := range page {
		item, err := s.toInvoiceResponse(ctx, inv, types.Expand{})
		if err != nil {
			return nil, err
		}
		resp.Items[i] = item
	}
	return resp, nil
}

// invoiceSearchDocument flattens an invoice into the allow-listed
// searchable field set.
func invoiceSearchDocument(inv *invoice.Invoice) map[string]string {
	doc := map[string]string{
		"currency": inv.Currency,
		"customer": inv.CustomerID,
		"total":    inv.Total().String(),
	}
	if inv.Number != nil {
		doc["number"] = *inv.Number
	}
	if inv.ReceiptNumber != nil {
		doc["receipt_number"] = *inv.ReceiptNumber
	}
	if inv.SubscriptionID != nil {
		doc["subscription"] = *inv.SubscriptionID
	}
	return doc
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// toLineItemParams resolves the plan and price references of a partial
// line spec into builder params.
func (s *invoiceService) toLineItemParams(ctx context.Context, req dto.CreateLineItemRequest) (invoice.LineItemParams, error) {
	params := invoice.LineItemParams{
		Amount:       req.Amount,
		Currency:     req.Currency,
		Description:  req.Description,
		Quantity:     req.Quantity,
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		Proration:    req.Proration,
		Discountable: req.Discountable,
	}
	if req.PlanID != nil {
		p, err := s.PlanRepo.Get(ctx, *req.PlanID)
		if err != nil {
			return params, err
		}
		params.Plan = p
	}
	if req.PriceID != nil {
		p, err := s.PriceRepo.Get(ctx, *req.PriceID)
		if err != nil {
			return params, err
		}
		params.PriceID = &p.ID
		if params.Amount == nil {
			quantity := decimal.NewFromInt(1)
			if req.Quantity != nil {
				quantity = *req.Quantity
			}
			amount := p.UnitAmount.Mul(quantity)
			params.Amount = &amount
		}
		if params.Currency == "" {
			params.Currency = p.Currency
		}
	}
	return params, nil
}

func (s *invoiceService) lineItemDefaults(currency string) invoice.LineItemDefaults {
	return invoice.LineItemDefaults{
		Amount:   s.Config.Simulator.LineItemAmount(),
		Currency: currency,
	}
}

// toInvoiceResponse assembles the API shape and resolves requested
// expansions against current store contents.
func (s *invoiceService) toInvoiceResponse(ctx context.Context, inv *invoice.Invoice, expand types.Expand) (*dto.InvoiceResponse, error) {
	resp := dto.NewInvoiceResponse(inv)
	if err := expandInvoiceResponse(ctx, s.ServiceParams, resp, expand); err != nil {
		return nil, err
	}
	return resp, nil
}
