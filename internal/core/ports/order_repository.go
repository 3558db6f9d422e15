package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for shipping order
// aggregates. Provides methods for storing, retrieving, and querying orders
// with their goods lines, surcharges, insurance detail and history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.ShippingOrder) error

	// Update persists changes to an existing order aggregate.
	// The stored version must match the aggregate's version; a mismatch
	// means a concurrent transition won and yields errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *order.ShippingOrder) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all child records rehydrated.
	Get(ctx context.Context, id kernel.UUID) (*order.ShippingOrder, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	// Used by the kanban board projection and the background jobs.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.ShippingOrder, error)

	// GetAllDraftsOlderThan retrieves Draft orders created before the
	// cutoff instant. Used by the stale-draft cancellation job.
	GetAllDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.ShippingOrder, error)
}
