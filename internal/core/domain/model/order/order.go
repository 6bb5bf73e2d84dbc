package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrServicePeriodAlreadyAttached is returned when attaching an order to
	// a service period while its service id is already set. The service id
	// is write-once: an order never migrates between periods.
	ErrServicePeriodAlreadyAttached = errors.New("order is already attached to a service period")

	// ErrNoDeliveryForOrder is returned for driver actions on an order that
	// has no delivery companion yet.
	ErrNoDeliveryForOrder = errors.New("order has no delivery")

	// ErrNotDeliveryOrder is returned when assigning a driver to a pickup
	// order.
	ErrNotDeliveryOrder = errors.New("order is not a delivery order")
)

// Order is the aggregate root for one customer transaction. It owns the
// immutable item snapshots, the optional Delivery companion and the status
// state machine bounded by the service period lifecycle.
//
// Order follows these invariants:
//   - total amount = Σ(item unit price × quantity) + delivery fee
//   - the delivery fee is zero for pickup orders
//   - the service period id, once set, is never reassigned
//   - items are immutable after creation
//   - all status changes go through the Status transition rules
type Order struct {
	id          kernel.UUID
	customerID  kernel.UUID
	addressID   *kernel.UUID
	mode        Mode
	status      Status
	items       []Item
	deliveryFee kernel.Money
	totalAmount kernel.Money
	serviceID   *kernel.UUID
	comment     string
	createdAt   time.Time
	delivery    *Delivery

	isConstructed bool
}

// NewOrder creates a pending order from secured line items.
//
// The items must already carry authoritative prices (see the pricing
// engine); the total is computed here, never accepted from outside.
// Delivery orders require an address id and may carry a fee; pickup orders
// must not carry either.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	addressID *kernel.UUID,
	mode Mode,
	items []Item,
	deliveryFee kernel.Money,
	comment string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setMode(mode, addressID, deliveryFee),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.totalAmount = o.subtotal().Add(o.deliveryFee)
	return o, nil
}

// RestoreOrder rehydrates an order from persistence, including its status,
// service attachment and delivery companion.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	addressID *kernel.UUID,
	mode Mode,
	status Status,
	items []Item,
	deliveryFee kernel.Money,
	totalAmount kernel.Money,
	serviceID *kernel.UUID,
	comment string,
	createdAt time.Time,
	delivery *Delivery,
) (*Order, error) {
	o, err := NewOrder(id, customerID, addressID, mode, items, deliveryFee, comment, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if delivery != nil {
		if err = delivery.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.totalAmount = totalAmount
	o.serviceID = serviceID
	o.delivery = delivery
	return o, nil
}

// Validate ensures the Order was created via a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AddressID returns the delivery address id, nil for pickup orders.
func (o *Order) AddressID() *kernel.UUID {
	return o.addressID
}

// Mode returns pickup or delivery.
func (o *Order) Mode() Mode {
	return o.mode
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the immutable line snapshots.
func (o *Order) Items() []Item {
	return o.items
}

// DeliveryFee returns the fee included in the total (zero for pickups and
// above the free-delivery threshold).
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// TotalAmount returns Σ(line totals) + delivery fee.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// ServiceID returns the owning service period id, nil while no service was
// open at checkout and none has adopted the order since.
func (o *Order) ServiceID() *kernel.UUID {
	return o.serviceID
}

// Comment returns the customer's order-level comment.
func (o *Order) Comment() string {
	return o.comment
}

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Delivery returns the companion record, nil until a driver is assigned.
func (o *Order) Delivery() *Delivery {
	return o.delivery
}

// AttachToService binds the order to a service period. The binding is
// write-once; attaching an already attached order fails.
func (o *Order) AttachToService(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	if o.serviceID != nil {
		return ErrServicePeriodAlreadyAttached
	}

	o.serviceID = &serviceID
	return nil
}

// AssignDriver attaches a driver to a delivery order, creating the Delivery
// companion on first assignment or re-pointing it on admin reassignment,
// and flips the order status to assigned. This is the moment the order
// becomes visible to the driver.
func (o *Order) AssignDriver(driverID kernel.UUID, assignedAt time.Time) error {
	if o.mode != ModeDelivery {
		return ErrNotDeliveryOrder
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	if o.delivery == nil {
		delivery, deliveryErr := newDelivery(driverID, assignedAt)
		if deliveryErr != nil {
			return deliveryErr
		}
		o.delivery = delivery
	} else if err = o.delivery.reassign(driverID, assignedAt); err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Depart records the driver leaving with the order. The acting driver must
// own the delivery; on a mismatch ErrNotAuthorizedForDelivery is returned
// and nothing is mutated.
func (o *Order) Depart(driverID kernel.UUID, departedAt time.Time) error {
	if o.delivery == nil {
		return ErrNoDeliveryForOrder
	}
	if err := o.delivery.ownedBy(driverID); err != nil {
		return err
	}

	newStatus, err := o.status.Depart()
	if err != nil {
		return err
	}
	if err = o.delivery.depart(departedAt); err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// CompleteDelivery records the order as delivered. Ownership is checked the
// same way as Depart.
func (o *Order) CompleteDelivery(driverID kernel.UUID, deliveredAt time.Time) error {
	if o.delivery == nil {
		return ErrNoDeliveryForOrder
	}
	if err := o.delivery.ownedBy(driverID); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	if err = o.delivery.complete(deliveredAt); err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// OverrideStatus is the kitchen/admin direct status write. The target must
// be in the recognized enumeration and the current status non-terminal;
// beyond that there is deliberately no kitchen-side validation.
// Cancelling an order with an assigned delivery cancels the delivery too.
func (o *Order) OverrideStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is terminal and cannot be overridden", o.status))
	}

	if status == StatusCancelled && o.delivery != nil {
		o.delivery.cancel()
	}

	o.status = status
	return nil
}

// ForceNotDelivered applies the service close sweep to this order.
func (o *Order) ForceNotDelivered() error {
	newStatus, err := o.status.ForceNotDelivered()
	if err != nil {
		return err
	}

	if o.delivery != nil && o.delivery.status != DeliveryDelivered {
		o.delivery.cancel()
	}

	o.status = newStatus
	return nil
}

func (o *Order) subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setMode(mode Mode, addressID *kernel.UUID, deliveryFee kernel.Money) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	if mode == ModePickup {
		if !deliveryFee.IsZero() {
			return errs.NewValueIsInvalidError("deliveryFee must be zero for pickup orders")
		}
		if addressID != nil {
			return errs.NewValueIsInvalidError("addressID must be empty for pickup orders")
		}
	} else {
		if addressID == nil {
			return errs.NewValueIsRequiredError("addressID")
		}
		if err := addressID.Validate(); err != nil {
			return err
		}
	}

	o.mode = mode
	o.addressID = addressID
	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = items
	return nil
}
