package charge

import (
	"context"
)

// Repository defines the persistence operations for charges.
type Repository interface {
	Create(ctx context.Context, c *Charge) error
	Get(ctx context.Context, id string) (*Charge, error)
}
