package service

import (
	"context"

	"github.com/flexprice/billingsim/internal/api/dto"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/types"
)

// CustomerService manages simulated customers.
type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) (*dto.ListCustomersResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust := req.ToCustomer(types.GetAccountID(ctx))
	if cust.Currency == "" {
		cust.Currency = s.Config.Simulator.DefaultCurrency
	}
	if err := s.CustomerRepo.Create(ctx, cust); err != nil {
		return nil, err
	}

	s.Logger.Infow("created customer", "customer_id", cust.ID)
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	if id == "" {
		return nil, ierr.NewError("customer id is required").
			WithHint("Missing required param: customer").
			Mark(ierr.ErrValidation)
	}
	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cust.Name = *req.Name
	}
	if req.Email != nil {
		cust.Email = *req.Email
	}
	if req.AccountBalance != nil {
		cust.AccountBalance = *req.AccountBalance
	}
	if req.Source != nil {
		cust.DefaultSource = req.Source
	}
	if req.Discount != nil {
		cust.Discount = req.Discount.Copy()
	}
	if req.Metadata != nil {
		cust.Metadata = cust.Metadata.Merge(req.Metadata)
	}

	if err := s.CustomerRepo.Update(ctx, cust); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) ListCustomers(ctx context.Context) (*dto.ListCustomersResponse, error) {
	customers, err := s.CustomerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListCustomersResponse{
		Items: make([]*dto.CustomerResponse, len(customers)),
		Pagination: types.NewPaginationResponse(
			len(customers), len(customers), 0),
	}
	for i, c := range customers {
		resp.Items[i] = dto.NewCustomerResponse(c)
	}
	return resp, nil
}
