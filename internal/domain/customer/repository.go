package customer

import (
	"context"
)

// Repository defines the persistence operations the engine needs on
// customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	List(ctx context.Context) ([]*Customer, error)
}
