package service

import (
	"context"

	"github.com/flexprice/billingsim/internal/api/dto"
	"github.com/flexprice/billingsim/internal/types"
)

// PriceService manages price objects.
type PriceService interface {
	CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*dto.PriceResponse, error)
	GetPrice(ctx context.Context, id string) (*dto.PriceResponse, error)
}

type priceService struct {
	ServiceParams
}

func NewPriceService(params ServiceParams) PriceService {
	return &priceService{ServiceParams: params}
}

func (s *priceService) CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPrice(types.GetAccountID(ctx), s.Config.Simulator.DefaultCurrency)
	if err := s.PriceRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created price", "price_id", p.ID, "recurring", p.IsRecurring())
	return dto.NewPriceResponse(p), nil
}

func (s *priceService) GetPrice(ctx context.Context, id string) (*dto.PriceResponse, error) {
	p, err := s.PriceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPriceResponse(p), nil
}
