package price

import (
	"context"
)

// Repository defines the persistence operations for prices.
type Repository interface {
	Create(ctx context.Context, p *Price) error
	Get(ctx context.Context, id string) (*Price, error)
	List(ctx context.Context) ([]*Price, error)
}
