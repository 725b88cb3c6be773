package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/domain/charge"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/types"
)

// ChargeService records simulated payments. Every accepted charge
// settles immediately; there is no asynchronous capture.
type ChargeService interface {
	// ChargeCustomer charges a stored customer through their default
	// source. Returns charge.ErrNoSource when none is on file.
	ChargeCustomer(ctx context.Context, cust *customer.Customer, amount decimal.Decimal, currency string) (*charge.Charge, error)

	// ChargeSource charges a raw payment source token.
	ChargeSource(ctx context.Context, source string, amount decimal.Decimal, currency string) (*charge.Charge, error)

	// GenerateCardToken mints a throwaway card token.
	GenerateCardToken() string

	GetCharge(ctx context.Context, id string) (*dto.ChargeResponse, error)
}

type chargeService struct {
	ServiceParams
}

func NewChargeService(params ServiceParams) ChargeService {
	return &chargeService{ServiceParams: params}
}

func (s *chargeService) ChargeCustomer(ctx context.Context, cust *customer.Customer, amount decimal.Decimal, currency string) (*charge.Charge, error) {
	if cust.DefaultSource == nil || *cust.DefaultSource == "" {
		return nil, charge.ErrNoSource
	}

	ch := &charge.Charge{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE),
		CustomerID:   &cust.ID,
		Amount:       amount,
		Currency:     currency,
		Paid:         true,
		ChargeStatus: charge.ChargeStatusSucceeded,
		BaseModel:    types.GetDefaultBaseModel(types.GetAccountID(ctx)),
	}
	if err := s.ChargeRepo.Create(ctx, ch); err != nil {
		return nil, err
	}

	s.Logger.Infow("charged customer",
		"charge_id", ch.ID,
		"customer_id", cust.ID,
		"amount", amount)
	return ch, nil
}

func (s *chargeService) ChargeSource(ctx context.Context, source string, amount decimal.Decimal, currency string) (*charge.Charge, error) {
	ch := &charge.Charge{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE),
		Source:       &source,
		Amount:       amount,
		Currency:     currency,
		Paid:         true,
		ChargeStatus: charge.ChargeStatusSucceeded,
		BaseModel:    types.GetDefaultBaseModel(types.GetAccountID(ctx)),
	}
	if err := s.ChargeRepo.Create(ctx, ch); err != nil {
		return nil, err
	}

	s.Logger.Infow("charged source",
		"charge_id", ch.ID,
		"amount", amount)
	return ch, nil
}

func (s *chargeService) GenerateCardToken() string {
	return types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CARD_TOKEN)
}

func (s *chargeService) GetCharge(ctx context.Context, id string) (*dto.ChargeResponse, error) {
	ch, err := s.ChargeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewChargeResponse(ch), nil
}
