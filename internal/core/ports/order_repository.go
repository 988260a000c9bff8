package ports

import (
	"context"
	"time"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including the locker binding fields that drive allocation and pickup.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current binding state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllExpired retrieves all orders whose reservation deadline has
	// passed. Used by the expiry sweep to reclaim compartments.
	GetAllExpired(ctx context.Context, now time.Time) ([]*order.Order, error)
}
