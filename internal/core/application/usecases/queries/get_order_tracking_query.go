// Package queries contains read-only operations over the storage layer.
// Handlers go straight to SQL and return flat read models, bypassing the
// aggregates, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the public tracking view of one order:
// just enough for a customer to follow their pizza, nothing more.
type GetOrderTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a query for an order's tracking view.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return GetOrderTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the tracked order's identifier.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTrackingQueryResponse is the public tracking read model.
// DeliveryStatus carries the delivery leg's own status once a driver is
// assigned; MinutesEnRoute is only set while the order is en route.
type GetOrderTrackingQueryResponse struct {
	ID             kernel.UUID
	Status         string
	Mode           string
	TotalAmount    kernel.Money
	CreatedAt      time.Time
	DeliveryStatus *string
	MinutesEnRoute *int
}
