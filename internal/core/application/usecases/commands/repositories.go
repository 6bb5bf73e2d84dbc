// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"pizzeria/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CustomerRepoFactory provides access to the customer repository
	// within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// ServicePeriodRepoFactory provides access to the service period
	// repository within a transaction.
	ServicePeriodRepoFactory interface {
		ServicePeriodRepository() ports.ServicePeriodRepository
	}

	// OrderUoW manages transactions for order-only operations
	// (driver assignment, status overrides, delivery progress).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages the checkout transaction, which spans the
	// customer aggregate (balance, stamps, addresses), the new order,
	// and the open service period lookup.
	CheckoutUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		ServicePeriodRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// ServiceUoW manages transactions spanning service periods and the
	// orders attached to them (opening with orphan adoption, closing
	// with the live-order sweep).
	ServiceUoW interface {
		TxManager
		OrderRepoFactory
		ServicePeriodRepoFactory
	}

	// ServiceUoWFactory creates new service unit of work instances.
	ServiceUoWFactory interface {
		Create() ServiceUoW
	}
)
