package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetOrderDetailQueryIsNotConstructed = errors.New(
	"GetOrderDetailQuery must be created via NewGetOrderDetailQuery constructor",
)

// GetOrderDetailQuery retrieves the staff-facing view of one order:
// customer contact, destination, every line with its pricing, and the
// delivery timeline.
type GetOrderDetailQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderDetailQuery creates a query for an order's full detail.
func NewGetOrderDetailQuery(orderID kernel.UUID) (GetOrderDetailQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailQuery{}, err
	}

	return GetOrderDetailQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

// OrderID returns the order's identifier.
func (q GetOrderDetailQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemView is one order line in the detail read model.
type OrderItemView struct {
	Name      string
	Category  string
	UnitPrice kernel.Money
	Quantity  int
	Notes     string
	Kind      string
}

// DeliveryView is the delivery leg of the detail read model.
type DeliveryView struct {
	DriverID    kernel.UUID
	Status      string
	AssignedAt  time.Time
	DepartedAt  *time.Time
	DeliveredAt *time.Time
}

// AddressView is the destination of a delivery order.
type AddressView struct {
	Street         string
	PostalCode     string
	City           string
	Label          string
	AdditionalInfo string
}

// GetOrderDetailQueryResponse is the staff-facing order read model.
// Address and Delivery are nil for pickup orders; Delivery is also nil
// before a driver is assigned.
type GetOrderDetailQueryResponse struct {
	ID            kernel.UUID
	Status        string
	Mode          string
	CustomerPhone string
	CustomerName  string
	Address       *AddressView
	Items         []OrderItemView
	DeliveryFee   kernel.Money
	TotalAmount   kernel.Money
	Comment       string
	CreatedAt     time.Time
	Delivery      *DeliveryView
}
