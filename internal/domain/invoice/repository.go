package invoice

import (
	"context"

	"github.com/flexprice/billingsim/internal/types"
)

// Repository defines the interface for invoice persistence operations.
// Implementations must hand out deep copies and apply multi-field
// updates atomically per invoice id.
type Repository interface {
	// Create stores a new invoice
	Create(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update replaces the stored invoice in a single write
	Update(ctx context.Context, inv *Invoice) error

	// List retrieves invoices based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total count of invoices matching the filter
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)

	// All returns every invoice in the account, for search
	All(ctx context.Context) ([]*Invoice, error)
}
