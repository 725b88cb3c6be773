package plan

import (
	"context"
)

// Repository defines the persistence operations for plans.
type Repository interface {
	Create(ctx context.Context, p *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}
