package ports

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their item snapshots and optional delivery leg.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByService retrieves every order attached to a service period.
	// Used when closing a period to sweep live orders and compute its
	// frozen closing stats.
	GetAllByService(ctx context.Context, serviceID kernel.UUID) ([]*order.Order, error)

	// GetAllUnattachedSince retrieves orders created at or after the given
	// instant that are not attached to any service period. Used when
	// opening a period to adopt same-day orphans.
	GetAllUnattachedSince(ctx context.Context, since time.Time) ([]*order.Order, error)
}
