package types

import (
	"github.com/samber/lo"

	ierr "github.com/flexprice/billingsim/internal/errors"
)

const (
	// FILTER_DEFAULT_LIMIT matches the provider's default page size for
	// list endpoints.
	FILTER_DEFAULT_LIMIT  = 10
	FILTER_DEFAULT_OFFSET = 0
)

// BaseFilter defines common filtering capabilities
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	Validate() error
	IsUnlimited() bool
}

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Expand *string `json:"expand,omitempty" form:"expand"`
}

// NewDefaultQueryFilter defines default values for query filters
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(FILTER_DEFAULT_OFFSET),
	}
}

// NewNoLimitQueryFilter returns a filter with no pagination limits
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Offset: lo.ToPtr(FILTER_DEFAULT_OFFSET),
	}
}

// IsUnlimited returns true if this is an unlimited query
func (f QueryFilter) IsUnlimited() bool {
	return f.Limit == nil
}

// GetLimit returns the limit value or the default if not set
func (f QueryFilter) GetLimit() int {
	if f.Limit == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return *f.Limit
}

// GetOffset returns the offset value or the default if not set
func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return FILTER_DEFAULT_OFFSET
	}
	return *f.Offset
}

// GetExpand returns the parsed Expand object from the filter
func (f QueryFilter) GetExpand() Expand {
	if f.Expand == nil {
		return NewExpand("")
	}
	return NewExpand(*f.Expand)
}

// PaginationResponse represents the pagination metadata of a list
// response.
type PaginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPaginationResponse creates a new pagination response
func NewPaginationResponse(total, limit, offset int) PaginationResponse {
	return PaginationResponse{Total: total, Limit: limit, Offset: offset}
}

func (f QueryFilter) Validate() error {
	if f.Limit != nil && *f.Limit < 1 {
		return ierr.NewError("invalid limit").
			WithHint("limit must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("invalid offset").
			WithHint("offset must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
