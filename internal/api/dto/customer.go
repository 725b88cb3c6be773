package dto

import (
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/types"
	"github.com/flexprice/billingsim/internal/validator"
)

// CreateCustomerRequest represents the request payload for creating a
// customer.
type CreateCustomerRequest struct {
	// name is the customer's display name
	Name string `json:"name,omitempty"`

	// email is the customer's email address
	Email string `json:"email,omitempty" validate:"omitempty,email"`

	// currency is the customer's default currency
	Currency string `json:"currency,omitempty"`

	// account_balance is a starting credit (negative) or debit (positive)
	// applied to the next invoice
	AccountBalance *decimal.Decimal `json:"account_balance,omitempty"`

	// source is a default payment source token
	Source *string `json:"source,omitempty"`

	// metadata contains additional custom key-value pairs
	Metadata types.Metadata `json:"metadata,omitempty"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToCustomer converts the request to a domain customer.
func (r *CreateCustomerRequest) ToCustomer(accountID string) *customer.Customer {
	c := &customer.Customer{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:          r.Name,
		Email:         r.Email,
		Currency:      r.Currency,
		DefaultSource: r.Source,
		Metadata:      r.Metadata,
		BaseModel:     types.GetDefaultBaseModel(accountID),
	}
	if r.AccountBalance != nil {
		c.AccountBalance = *r.AccountBalance
	}
	return c
}

// UpdateCustomerRequest carries the mutable customer fields.
type UpdateCustomerRequest struct {
	Name           *string            `json:"name,omitempty"`
	Email          *string            `json:"email,omitempty" validate:"omitempty,email"`
	AccountBalance *decimal.Decimal   `json:"account_balance,omitempty"`
	Source         *string            `json:"source,omitempty"`
	Discount       *customer.Discount `json:"discount,omitempty"`
	Metadata       types.Metadata     `json:"metadata,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CustomerResponse is the API shape of a customer.
type CustomerResponse struct {
	Object string `json:"object"`
	*customer.Customer
}

// NewCustomerResponse converts a domain customer to its API shape.
func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{Object: "customer", Customer: c}
}

// ListCustomersResponse is the paginated list envelope.
type ListCustomersResponse struct {
	Items      []*CustomerResponse      `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
