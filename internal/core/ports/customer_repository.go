// Package ports defines the persistence and lookup contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer
// aggregates and their saved addresses. The phone number is the natural
// key used to resolve returning customers at checkout.
type CustomerRepository interface {
	// Add persists a new customer aggregate to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer aggregate.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByPhone retrieves a customer aggregate by phone number.
	// Returns errs.ErrObjectNotFound when no customer has that phone.
	GetByPhone(ctx context.Context, phone string) (*customer.Customer, error)

	// AddAddress persists a new saved address for a customer.
	AddAddress(ctx context.Context, address *customer.Address) error

	// UpdateAddress persists changes to an existing saved address.
	UpdateAddress(ctx context.Context, address *customer.Address) error

	// GetAddress retrieves a saved address by its unique identifier.
	GetAddress(ctx context.Context, id kernel.UUID) (*customer.Address, error)

	// FindAddress retrieves a customer's saved address by its natural key
	// (street, postal code and city). Returns errs.ErrObjectNotFound when
	// the customer has no such address.
	FindAddress(ctx context.Context, customerID kernel.UUID, street, postalCode, city string) (*customer.Address, error)
}
