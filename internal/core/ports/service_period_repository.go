package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/serviceperiod"
)

// ServicePeriodRepository defines the persistence contract for service
// period aggregates. At most one period is open at any time; the store
// additionally enforces this with a partial unique index on the open
// status.
type ServicePeriodRepository interface {
	// Add persists a new service period.
	// Returns serviceperiod.ErrServiceAlreadyOpen when an open period
	// already exists.
	Add(ctx context.Context, aggregate *serviceperiod.ServicePeriod) error

	// Update persists changes to an existing service period.
	Update(ctx context.Context, aggregate *serviceperiod.ServicePeriod) error

	// Get retrieves a service period by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*serviceperiod.ServicePeriod, error)

	// GetOpen retrieves the currently open service period.
	// Returns errs.ErrObjectNotFound when no period is open.
	GetOpen(ctx context.Context) (*serviceperiod.ServicePeriod, error)
}
